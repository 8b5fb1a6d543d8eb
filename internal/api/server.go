package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/state"
)

type Server struct {
	State    *state.App
	Validate *validator.Validate
}

// NewServer wires the HTTP surface over the application state machine.
func NewServer(app *state.App) *Server {
	return &Server{
		State:    app,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("failed to encode response: %v", err)
		}
	}
}

// decodeJSON parses and structurally validates a request body. Domain
// rules (blank titles, duplicate names) are still enforced by the state
// layer so their specific error codes surface.
func (s *Server) decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	if err := s.Validate.Struct(v); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.NewValidationError(fe.Field(), "failed rule "+fe.Tag())
		}
		return errors.NewBadRequestError("invalid request body")
	}
	return nil
}
