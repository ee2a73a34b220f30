package service

import (
	"time"

	"github.com/avdeyev/liblend/internal/domain"
	"github.com/avdeyev/liblend/internal/errors"

	"github.com/google/uuid"
)

// to mock service in tests
type AssignmentService interface {
	Create(bookId int64, studentEmail string, validFrom, validUntil time.Time) (domain.Assignment, error)
	All() ([]domain.Assignment, error)
	ForStudent(email string) ([]domain.Assignment, error)
}

type AssignmentStorage interface {
	SaveAssignment(assignment domain.Assignment) error
	Assignments() ([]domain.Assignment, error)
	AssignmentsByStudent(email string) ([]domain.Assignment, error)
}

// AccountResolver is the slice of the registry the ledger needs: it only ever
// reads the holder account, never writes it.
type AccountResolver interface {
	Account(email string) (domain.Account, error)
}

type Assignments struct {
	storage  AssignmentStorage
	accounts AccountResolver
}

func NewAssignments(storage AssignmentStorage, accounts AccountResolver) *Assignments {
	return &Assignments{storage, accounts}
}

// Create appends a custody record. The caller must already have passed the
// admin gate; routing makes this operation unreachable without it.
// Overlapping windows for the same book are intentionally not rejected: the
// ledger is permissive and window interpretation belongs to consumers.
func (a *Assignments) Create(bookId int64, studentEmail string, validFrom, validUntil time.Time) (domain.Assignment, error) {
	if bookId == 0 {
		return domain.Assignment{}, errors.New(errors.InvalidInput, "Book is required")
	}
	email := domain.NormalizeEmail(studentEmail)
	if email == "" {
		return domain.Assignment{}, errors.New(errors.InvalidInput, "Student email is required")
	}
	if validFrom.IsZero() || validUntil.IsZero() {
		return domain.Assignment{}, errors.New(errors.InvalidInput, "Start and end dates are required")
	}
	if validFrom.After(validUntil) {
		return domain.Assignment{}, errors.New(errors.InvalidInput, "Start date must not be after end date")
	}

	holder, err := a.accounts.Account(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.Assignment{}, errors.New(errors.NotFound, "Student not found")
		}
		return domain.Assignment{}, err
	}
	if holder.Role != domain.RoleStudent {
		return domain.Assignment{}, errors.New(errors.InvalidInput, "Holder must be a student")
	}

	assignment := domain.Assignment{
		Id:           uuid.NewString(),
		BookId:       bookId,
		StudentEmail: email,
		ValidFrom:    validFrom,
		ValidUntil:   validUntil,
		Created:      time.Now().UTC(),
	}
	if err := a.storage.SaveAssignment(assignment); err != nil {
		return domain.Assignment{}, err
	}
	return assignment, nil
}

// All lists every custody record with its resolved book.
func (a *Assignments) All() ([]domain.Assignment, error) {
	return a.storage.Assignments()
}

// ForStudent lists custody records for one holder, in creation order.
func (a *Assignments) ForStudent(email string) ([]domain.Assignment, error) {
	return a.storage.AssignmentsByStudent(domain.NormalizeEmail(email))
}
