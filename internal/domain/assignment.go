package domain

import "time"

type Book struct {
	Id    int64
	Name  string
	Price float64
}

// Assignment records custody of a book by a student between two dates.
// Records are append-only: custody "ends" by the window expiring, never by a
// mutation.
type Assignment struct {
	Id           string
	BookId       int64
	StudentEmail string
	ValidFrom    time.Time
	ValidUntil   time.Time
	Created      time.Time

	// Book is the resolved catalog entry, populated on reads. Nil if the
	// referenced book no longer resolves.
	Book *Book
}
