package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avdeyev/liblend/internal/domain"
	internal_errors "github.com/avdeyev/liblend/internal/errors"
)

// SaveBook inserts a new catalog entry and returns it with its generated id.
func (s *Storage) SaveBook(book domain.Book) (domain.Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRow(
			"INSERT INTO books(name, price) VALUES($1, $2) RETURNING id",
			book.Name, book.Price,
		).Scan(&book.Id)
	})
	if err != nil {
		return domain.Book{}, internal_errors.Wrap(internal_errors.Unavailable, "failed to insert book", err)
	}
	return book, nil
}

// Book fetches a single catalog entry by id.
func (s *Storage) Book(id int64) (domain.Book, error) {
	var book domain.Book
	err := s.db.QueryRow("SELECT id, name, price FROM books WHERE id = $1", id).
		Scan(&book.Id, &book.Name, &book.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Book{}, internal_errors.New(internal_errors.NotFound, "Book not found")
		}
		return domain.Book{}, internal_errors.Wrap(internal_errors.Unavailable, "failed to query book", err)
	}
	return book, nil
}

// Books lists the catalog in creation order.
func (s *Storage) Books() ([]domain.Book, error) {
	rows, err := s.db.Query("SELECT id, name, price FROM books ORDER BY id")
	if err != nil {
		return nil, internal_errors.Wrap(internal_errors.Unavailable, "failed to query books", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(&book.Id, &book.Name, &book.Price); err != nil {
			return nil, internal_errors.Wrap(internal_errors.Unavailable, "failed to scan book", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, internal_errors.Wrap(internal_errors.Unavailable, "failed to iterate books", err)
	}
	return books, nil
}
