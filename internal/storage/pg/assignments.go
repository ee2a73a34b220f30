package pg

import (
	"context"
	"database/sql"

	"github.com/avdeyev/liblend/internal/domain"
	internal_errors "github.com/avdeyev/liblend/internal/errors"
)

// SaveAssignment appends a custody record. Records are immutable once
// written; there is no update or delete.
func (s *Storage) SaveAssignment(assignment domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
            INSERT INTO assignments(id, book_id, student_email, valid_from, valid_until, created)
            VALUES($1, $2, $3, $4, $5, $6)`,
			assignment.Id, assignment.BookId, assignment.StudentEmail,
			assignment.ValidFrom, assignment.ValidUntil, assignment.Created,
		)
		return err
	})
	if err != nil {
		return internal_errors.Wrap(internal_errors.Unavailable, "failed to insert assignment", err)
	}
	return nil
}

// Assignments lists every custody record with its resolved book, in
// insertion order.
func (s *Storage) Assignments() ([]domain.Assignment, error) {
	return s.queryAssignments(`
        SELECT a.id, a.book_id, a.student_email, a.valid_from, a.valid_until, a.created,
               b.id, b.name, b.price
        FROM assignments a
        LEFT JOIN books b ON b.id = a.book_id
        ORDER BY a.seq`)
}

// AssignmentsByStudent lists custody records for one normalized email, in
// insertion order.
func (s *Storage) AssignmentsByStudent(email string) ([]domain.Assignment, error) {
	return s.queryAssignments(`
        SELECT a.id, a.book_id, a.student_email, a.valid_from, a.valid_until, a.created,
               b.id, b.name, b.price
        FROM assignments a
        LEFT JOIN books b ON b.id = a.book_id
        WHERE a.student_email = $1
        ORDER BY a.seq`, email)
}

func (s *Storage) queryAssignments(query string, args ...any) ([]domain.Assignment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, internal_errors.Wrap(internal_errors.Unavailable, "failed to query assignments", err)
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var bookId sql.NullInt64
		var bookName sql.NullString
		var bookPrice sql.NullFloat64
		err := rows.Scan(&a.Id, &a.BookId, &a.StudentEmail, &a.ValidFrom, &a.ValidUntil, &a.Created,
			&bookId, &bookName, &bookPrice)
		if err != nil {
			return nil, internal_errors.Wrap(internal_errors.Unavailable, "failed to scan assignment", err)
		}
		if bookId.Valid {
			a.Book = &domain.Book{Id: bookId.Int64, Name: bookName.String, Price: bookPrice.Float64}
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, internal_errors.Wrap(internal_errors.Unavailable, "failed to iterate assignments", err)
	}
	return assignments, nil
}
