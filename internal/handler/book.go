package handler

import (
	"net/http"
)

type createBookRequest struct {
	Name  string  `validate:"required" json:"name"`
	Price float64 `json:"price"`
}

type bookResponse struct {
	Id    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var body createBookRequest
	if err := DecodeValidate(r.Body, &body); err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	book, err := h.catalog.Add(body.Name, body.Price)
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookResponse{Id: book.Id, Name: book.Name, Price: book.Price})
}

func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.List()
	if err != nil {
		WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]bookResponse, len(books))
	for i, b := range books {
		response[i] = bookResponse{Id: b.Id, Name: b.Name, Price: b.Price}
	}
	writeJSON(w, http.StatusOK, response)
}
