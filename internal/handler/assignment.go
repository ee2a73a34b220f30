package handler

import (
	"net/http"

	"github.com/avdeyev/liblend/internal/domain"

	"github.com/go-chi/chi/v5"
)

type createAssignmentRequest struct {
	BookId       int64  `validate:"required" json:"bookId"`
	StudentEmail string `validate:"required" json:"studentEmail"`
	StartDate    string `validate:"required" json:"startDate"`
	EndDate      string `validate:"required" json:"endDate"`
}

type assignmentResponse struct {
	Id           string        `json:"id"`
	BookId       int64         `json:"bookId"`
	StudentEmail string        `json:"studentEmail"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	Book         *bookResponse `json:"book,omitempty"`
}

type createAssignmentResponse struct {
	Message    string             `json:"message"`
	Assignment assignmentResponse `json:"assignment"`
}

func toAssignmentResponse(a domain.Assignment) assignmentResponse {
	resp := assignmentResponse{
		Id:           a.Id,
		BookId:       a.BookId,
		StudentEmail: a.StudentEmail,
		StartDate:    a.ValidFrom.Format(dateLayout),
		EndDate:      a.ValidUntil.Format(dateLayout),
	}
	if a.Book != nil {
		resp.Book = &bookResponse{Id: a.Book.Id, Name: a.Book.Name, Price: a.Book.Price}
	}
	return resp
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var body createAssignmentRequest
	if err := DecodeValidate(r.Body, &body); err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	from, err := parseDate(body.StartDate, "startDate")
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}
	until, err := parseDate(body.EndDate, "endDate")
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	assignment, err := h.assignments.Create(body.BookId, body.StudentEmail, from, until)
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createAssignmentResponse{
		Message:    "Book assigned successfully",
		Assignment: toAssignmentResponse(assignment),
	})
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignments.All()
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]assignmentResponse, len(assignments))
	for i, a := range assignments {
		response[i] = toAssignmentResponse(a)
	}
	writeJSON(w, http.StatusOK, response)
}

// ListStudentAssignments serves the self-gated per-holder view. The gate has
// already matched the claim against the path email.
func (h *Handler) ListStudentAssignments(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	assignments, err := h.assignments.ForStudent(email)
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]assignmentResponse, len(assignments))
	for i, a := range assignments {
		response[i] = toAssignmentResponse(a)
	}
	writeJSON(w, http.StatusOK, response)
}
