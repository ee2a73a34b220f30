package handler

import (
	"net/http"

	"github.com/avdeyev/liblend/internal/domain"
	internal_errors "github.com/avdeyev/liblend/internal/errors"
	"github.com/avdeyev/liblend/internal/service"
)

type signupRequest struct {
	Name       string `validate:"required" json:"name"`
	Email      string `validate:"required" json:"email"`
	Password   string `validate:"required" json:"password"`
	Role       string `validate:"required" json:"role"`
	Enrollment string `json:"enrollment"`
	AdminCode  string `json:"adminCode"`
}

type loginRequest struct {
	Email    string `validate:"required" json:"email"`
	Password string `validate:"required" json:"password"`
	Role     string `validate:"required" json:"role"`
}

type googleLoginRequest struct {
	Token string `validate:"required" json:"token"`
}

type accountResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

type studentResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if err := DecodeValidate(r.Body, &body); err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	role, ok := domain.ParseRole(body.Role)
	if !ok {
		WriteErrorAndStatusCode(w, internal_errors.New(internal_errors.InvalidInput, "Unknown role"))
		return
	}

	account, err := h.registry.Register(service.Registration{
		Name:       body.Name,
		Email:      body.Email,
		Password:   body.Password,
		Role:       role,
		Enrollment: body.Enrollment,
		AdminCode:  body.AdminCode,
	})
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, accountResponse{
		Message: "User registered successfully",
		Name:    account.Name,
		Email:   account.Email,
		Role:    string(account.Role),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := DecodeValidate(r.Body, &body); err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	role, ok := domain.ParseRole(body.Role)
	if !ok {
		WriteErrorAndStatusCode(w, internal_errors.New(internal_errors.InvalidInput, "Unknown role"))
		return
	}

	account, err := h.registry.LoginPassword(body.Email, body.Password, role)
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{
		Message: "Login successful",
		Name:    account.Name,
		Email:   account.Email,
		Role:    string(account.Role),
	})
}

// GoogleLogin verifies the submitted ID token through the verifier
// collaborator, then resolves or creates the account.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var body googleLoginRequest
	if err := DecodeValidate(r.Body, &body); err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	identity, err := h.verifier.Verify(r.Context(), body.Token)
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	account, err := h.registry.LoginExternal(identity)
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{
		Message: "Google login successful",
		Name:    account.Name,
		Email:   account.Email,
		Role:    string(account.Role),
	})
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.registry.ListStudents()
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]studentResponse, len(students))
	for i, s := range students {
		response[i] = studentResponse{Name: s.Name, Email: s.Email}
	}
	writeJSON(w, http.StatusOK, response)
}
