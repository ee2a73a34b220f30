package handler

import (
	"context"
	"time"

	"github.com/avdeyev/liblend/internal/domain"
	"github.com/avdeyev/liblend/internal/service"
)

// MockRegistryService mocks service.RegistryService.
type MockRegistryService struct {
	registerFunc      func(req service.Registration) (domain.Account, error)
	loginPasswordFunc func(email, password string, role domain.Role) (domain.Account, error)
	loginExternalFunc func(identity domain.ExternalIdentity) (domain.Account, error)
	findByEmailFunc   func(email string) (domain.Account, error)
	listStudentsFunc  func() ([]domain.AccountSummary, error)
}

func (m *MockRegistryService) Register(req service.Registration) (domain.Account, error) {
	if m.registerFunc != nil {
		return m.registerFunc(req)
	}
	return domain.Account{}, nil
}

func (m *MockRegistryService) LoginPassword(email, password string, role domain.Role) (domain.Account, error) {
	if m.loginPasswordFunc != nil {
		return m.loginPasswordFunc(email, password, role)
	}
	return domain.Account{}, nil
}

func (m *MockRegistryService) LoginExternal(identity domain.ExternalIdentity) (domain.Account, error) {
	if m.loginExternalFunc != nil {
		return m.loginExternalFunc(identity)
	}
	return domain.Account{}, nil
}

func (m *MockRegistryService) FindByEmail(email string) (domain.Account, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(email)
	}
	return domain.Account{}, nil
}

func (m *MockRegistryService) ListStudents() ([]domain.AccountSummary, error) {
	if m.listStudentsFunc != nil {
		return m.listStudentsFunc()
	}
	return nil, nil
}

// MockAssignmentService mocks service.AssignmentService and counts Create
// calls.
type MockAssignmentService struct {
	createFunc     func(bookId int64, studentEmail string, validFrom, validUntil time.Time) (domain.Assignment, error)
	allFunc        func() ([]domain.Assignment, error)
	forStudentFunc func(email string) ([]domain.Assignment, error)
	createCalls    int
}

func (m *MockAssignmentService) Create(bookId int64, studentEmail string, validFrom, validUntil time.Time) (domain.Assignment, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(bookId, studentEmail, validFrom, validUntil)
	}
	return domain.Assignment{}, nil
}

func (m *MockAssignmentService) All() ([]domain.Assignment, error) {
	if m.allFunc != nil {
		return m.allFunc()
	}
	return nil, nil
}

func (m *MockAssignmentService) ForStudent(email string) ([]domain.Assignment, error) {
	if m.forStudentFunc != nil {
		return m.forStudentFunc(email)
	}
	return nil, nil
}

// MockCatalogService mocks service.CatalogService.
type MockCatalogService struct {
	addFunc  func(name string, price float64) (domain.Book, error)
	listFunc func() ([]domain.Book, error)
}

func (m *MockCatalogService) Add(name string, price float64) (domain.Book, error) {
	if m.addFunc != nil {
		return m.addFunc(name, price)
	}
	return domain.Book{}, nil
}

func (m *MockCatalogService) List() ([]domain.Book, error) {
	if m.listFunc != nil {
		return m.listFunc()
	}
	return nil, nil
}

// MockVerifier mocks the IdentityVerifier interface.
type MockVerifier struct {
	verifyFunc func(ctx context.Context, rawToken string) (domain.ExternalIdentity, error)
}

func (m *MockVerifier) Verify(ctx context.Context, rawToken string) (domain.ExternalIdentity, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, rawToken)
	}
	return domain.ExternalIdentity{}, nil
}
