package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avdeyev/liblend/internal/domain"
	internal_errors "github.com/avdeyev/liblend/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// MockAccountResolver mocks the AccountResolver interface and counts lookups.
type MockAccountResolver struct {
	accountFunc func(email string) (domain.Account, error)
	calls       int
}

func (m *MockAccountResolver) Account(email string) (domain.Account, error) {
	m.calls++
	if m.accountFunc != nil {
		return m.accountFunc(email)
	}
	return domain.Account{}, internal_errors.New(internal_errors.NotFound, "Account not found")
}

func adminResolver(adminEmail string) *MockAccountResolver {
	return &MockAccountResolver{
		accountFunc: func(email string) (domain.Account, error) {
			if email == adminEmail {
				return domain.Account{Email: email, Role: domain.RoleAdmin}, nil
			}
			if email == "s@x.com" {
				return domain.Account{Email: email, Role: domain.RoleStudent}, nil
			}
			return domain.Account{}, internal_errors.New(internal_errors.NotFound, "Account not found")
		},
	}
}

func TestRequireAdmin(t *testing.T) {
	testCases := []struct {
		name         string
		claim        string
		expectedCode int
	}{
		{name: "no claim", claim: "", expectedCode: http.StatusUnauthorized},
		{name: "unknown account", claim: "ghost@x.com", expectedCode: http.StatusForbidden},
		{name: "student claim", claim: "s@x.com", expectedCode: http.StatusForbidden},
		{name: "admin claim", claim: "admin@x.com", expectedCode: http.StatusOK},
		{name: "admin claim unnormalized", claim: " Admin@X.com ", expectedCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gate := NewGate(adminResolver("admin@x.com"))
			handlerRan := false

			r := chi.NewRouter()
			r.With(gate.RequireAdmin()).Post("/v1/assignments", func(w http.ResponseWriter, r *http.Request) {
				handlerRan = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/v1/assignments", nil)
			if tc.claim != "" {
				req.Header.Set(ClaimHeader, tc.claim)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.Equal(t, tc.expectedCode == http.StatusOK, handlerRan,
				"guarded handler must run iff the gate passes")
		})
	}
}

func TestRequireAdminStorageFailure(t *testing.T) {
	gate := NewGate(&MockAccountResolver{
		accountFunc: func(email string) (domain.Account, error) {
			return domain.Account{}, internal_errors.New(internal_errors.Unavailable, "db down")
		},
	})

	r := chi.NewRouter()
	r.With(gate.RequireAdmin()).Get("/v1/assignments", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/assignments", nil)
	req.Header.Set(ClaimHeader, "admin@x.com")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRequireSelf(t *testing.T) {
	testCases := []struct {
		name         string
		claim        string
		target       string
		expectedCode int
	}{
		{name: "exact match", claim: "s@x.com", target: "s@x.com", expectedCode: http.StatusOK},
		{name: "reflexive under normalization", claim: " A@B.com ", target: "a@b.com", expectedCode: http.StatusOK},
		{name: "target unnormalized", claim: "a@b.com", target: "A@B.COM", expectedCode: http.StatusOK},
		{name: "mismatch", claim: "s@x.com", target: "t@y.com", expectedCode: http.StatusForbidden},
		{name: "no claim", claim: "", target: "t@y.com", expectedCode: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &MockAccountResolver{}
			gate := NewGate(resolver)

			r := chi.NewRouter()
			r.With(gate.RequireSelf("email")).Get("/v1/assignments/student/{email}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/assignments/student/"+tc.target, nil)
			if tc.claim != "" {
				req.Header.Set(ClaimHeader, tc.claim)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			// self policy is a pure string compare, so a failure cannot leak
			// whether the target account exists
			assert.Zero(t, resolver.calls, "RequireSelf must not look accounts up")
		})
	}
}

func TestClaimFromContext(t *testing.T) {
	gate := NewGate(adminResolver("admin@x.com"))

	var claim string
	r := chi.NewRouter()
	r.With(gate.RequireAdmin()).Get("/v1/assignments", func(w http.ResponseWriter, r *http.Request) {
		claim = ClaimFromContext(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/assignments", nil)
	req.Header.Set(ClaimHeader, " Admin@X.com ")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "admin@x.com", claim)
}

func TestClaimFromContextWithoutGate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ClaimFromContext(req))
}
