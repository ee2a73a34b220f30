package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	internal_errors "github.com/avdeyev/liblend/internal/errors"
	"github.com/avdeyev/liblend/internal/logger"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// DecodeValidate decodes a JSON body and checks required fields.
func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("invalid request body", "error", err)
		return internal_errors.New(internal_errors.InvalidInput, "Body is invalid json")
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		return internal_errors.New(internal_errors.InvalidInput, "Required fields missing")
	}
	return nil
}

// WriteErrorAndStatusCode maps a kinded error to its HTTP status; anything
// else is a 500. Wrapped causes stay in the logs, never in the response.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var e *internal_errors.Error
	if errors.As(err, &e) {
		if e.Kind == internal_errors.Unavailable {
			logger.Log.Error("collaborator unavailable", "error", err)
		}
		http.Error(w, e.Message, e.StatusCode())
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, internal_errors.New(internal_errors.InvalidInput, "Invalid "+field+": expected YYYY-MM-DD")
	}
	return t, nil
}
