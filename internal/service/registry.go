package service

import (
	"crypto/subtle"
	"net/mail"

	"github.com/avdeyev/liblend/internal/domain"
	"github.com/avdeyev/liblend/internal/errors"
	"github.com/avdeyev/liblend/internal/logger"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"
)

// to mock service in tests
type RegistryService interface {
	Register(req Registration) (domain.Account, error)
	LoginPassword(email, password string, role domain.Role) (domain.Account, error)
	LoginExternal(identity domain.ExternalIdentity) (domain.Account, error)
	FindByEmail(email string) (domain.Account, error)
	ListStudents() ([]domain.AccountSummary, error)
}

type Registration struct {
	Name       string
	Email      string
	Password   string
	Role       domain.Role
	Enrollment string
	AdminCode  string
}

type AccountStorage interface {
	SaveAccount(account domain.Account) (int64, error)
	Account(email string) (domain.Account, error)
	AccountsByRole(role domain.Role) ([]domain.Account, error)
}

type Registry struct {
	storage   AccountStorage
	adminCode string
	sanitizer *bluemonday.Policy
}

func NewRegistry(storage AccountStorage, adminCode string) *Registry {
	return &Registry{
		storage:   storage,
		adminCode: adminCode,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Register creates an account. The email is normalized before the uniqueness
// check; the storage layer makes check-and-insert atomic, so a duplicate
// normalized email always fails with Conflict regardless of casing or
// whitespace. The admin role is granted only when the submitted code matches
// the server-held secret; the request body's role claim alone is never
// trusted.
func (reg *Registry) Register(req Registration) (domain.Account, error) {
	email := domain.NormalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		return domain.Account{}, err
	}

	if req.Role == domain.RoleAdmin {
		if subtle.ConstantTimeCompare([]byte(req.AdminCode), []byte(reg.adminCode)) != 1 {
			return domain.Account{}, errors.New(errors.Forbidden, "Invalid admin code")
		}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.Account{}, err
	}

	account := domain.Account{
		Name:     reg.sanitizer.Sanitize(req.Name),
		Email:    email,
		PassHash: string(passHash),
		Role:     req.Role,
	}
	if req.Role == domain.RoleStudent {
		account.Enrollment = reg.sanitizer.Sanitize(req.Enrollment)
	}

	id, err := reg.storage.SaveAccount(account)
	if err != nil {
		return domain.Account{}, err
	}
	account.Id = id
	return account, nil
}

// LoginPassword checks an email+role+password triple.
// No account with that email and role fails with NotFound; an account created
// through Google sign-in fails with NoCredential; a hash mismatch fails with
// InvalidCredential.
func (reg *Registry) LoginPassword(email, password string, role domain.Role) (domain.Account, error) {
	email = domain.NormalizeEmail(email)

	account, err := reg.storage.Account(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.Account{}, errors.New(errors.NotFound, "User not found")
		}
		return domain.Account{}, err
	}
	// the original looks accounts up by email AND role, so a role mismatch
	// reads the same as no account
	if account.Role != role {
		return domain.Account{}, errors.New(errors.NotFound, "User not found")
	}

	if !account.HasCredential() {
		return domain.Account{}, errors.New(errors.NoCredential, "Please login using Google")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PassHash), []byte(password)); err != nil {
		logger.Log.Error("password verification failed", "error", err)
		return domain.Account{}, errors.New(errors.InvalidCredential, "Invalid credentials")
	}

	return account, nil
}

// LoginExternal resolves an already-verified identity to an account, creating
// a credential-less student account on first sight. Signature checking is the
// verifier collaborator's job; this method trusts its input.
func (reg *Registry) LoginExternal(identity domain.ExternalIdentity) (domain.Account, error) {
	email := domain.NormalizeEmail(identity.Email)
	if err := validateEmail(email); err != nil {
		return domain.Account{}, err
	}

	account, err := reg.storage.Account(email)
	if err == nil {
		return account, nil
	}
	if !errors.IsNotFound(err) {
		return domain.Account{}, err
	}

	account = domain.Account{
		Name:  reg.sanitizer.Sanitize(identity.Name),
		Email: email,
		Role:  domain.RoleStudent,
	}
	id, err := reg.storage.SaveAccount(account)
	if err != nil {
		return domain.Account{}, err
	}
	account.Id = id
	return account, nil
}

func (reg *Registry) FindByEmail(email string) (domain.Account, error) {
	return reg.storage.Account(domain.NormalizeEmail(email))
}

// ListStudents returns the student directory: names and emails only, no
// credential material.
func (reg *Registry) ListStudents() ([]domain.AccountSummary, error) {
	accounts, err := reg.storage.AccountsByRole(domain.RoleStudent)
	if err != nil {
		return nil, err
	}

	students := make([]domain.AccountSummary, len(accounts))
	for i, account := range accounts {
		students[i] = domain.AccountSummary{Name: account.Name, Email: account.Email}
	}
	return students, nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New(errors.InvalidInput, "Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New(errors.InvalidInput, "Email is invalid")
	}
	return nil
}
