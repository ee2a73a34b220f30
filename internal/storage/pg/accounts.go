package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avdeyev/liblend/internal/domain"
	internal_errors "github.com/avdeyev/liblend/internal/errors"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// =========================================================================
// Public methods (satisfy the service.AccountStorage interface)
// =========================================================================

// SaveAccount inserts a new account. The unique index on email makes the
// duplicate check and the insert a single atomic compare-and-insert, so two
// concurrent registrations of the same normalized email cannot both succeed.
func (s *Storage) SaveAccount(account domain.Account) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveAccount(tx, account)
		return err
	})
	return id, err
}

// Account fetches a single account by normalized email.
func (s *Storage) Account(email string) (domain.Account, error) {
	return s.account(s.db, email)
}

// AccountsByRole lists accounts holding the given role, in creation order.
func (s *Storage) AccountsByRole(role domain.Role) ([]domain.Account, error) {
	return s.accountsByRole(s.db, role)
}

// =========================================================================
// Internal methods (core database logic, transaction-agnostic)
// =========================================================================

func (s *Storage) saveAccount(q Querier, account domain.Account) (int64, error) {
	var id int64
	err := q.QueryRow(`
        INSERT INTO accounts(name, email, password_hash, role, enrollment)
        VALUES($1, $2, $3, $4, $5) RETURNING id`,
		account.Name, account.Email, account.PassHash, account.Role, account.Enrollment,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return -1, internal_errors.New(internal_errors.Conflict, "Account already exists")
		}
		return -1, internal_errors.Wrap(internal_errors.Unavailable, "failed to insert account", err)
	}
	return id, nil
}

func (s *Storage) account(q Querier, email string) (domain.Account, error) {
	var account domain.Account
	err := q.QueryRow(`
        SELECT id, name, email, password_hash, role, enrollment
        FROM accounts WHERE email = $1`,
		email,
	).Scan(&account.Id, &account.Name, &account.Email, &account.PassHash, &account.Role, &account.Enrollment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, internal_errors.New(internal_errors.NotFound, "Account not found")
		}
		return domain.Account{}, internal_errors.Wrap(internal_errors.Unavailable, "failed to query account", err)
	}
	return account, nil
}

func (s *Storage) accountsByRole(q Querier, role domain.Role) ([]domain.Account, error) {
	rows, err := q.Query(`
        SELECT id, name, email, role, enrollment
        FROM accounts WHERE role = $1 ORDER BY id`,
		role,
	)
	if err != nil {
		return nil, internal_errors.Wrap(internal_errors.Unavailable, "failed to query accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.Id, &account.Name, &account.Email, &account.Role, &account.Enrollment); err != nil {
			return nil, internal_errors.Wrap(internal_errors.Unavailable, "failed to scan account", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, internal_errors.Wrap(internal_errors.Unavailable, "failed to iterate accounts", err)
	}
	return accounts, nil
}
