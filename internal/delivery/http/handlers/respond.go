package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-foodbot-service/internal/delivery/http/dto/admin/response"
	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/google/uuid"
)

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateProduct):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with {"error": ...}. Server errors are logged and not echoed.
func writeError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error(op+" failed",
			slog.String("cause", string(domain.FailureCauseOf(err))),
			slog.String("error", err.Error()),
		)
		msg = http.StatusText(status)
	}
	if werr := WriteJSON(w, status, response.ErrorResponse{Error: msg}); werr != nil {
		log.Error("failed to write error response", slog.String("error", werr.Error()))
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// pathID returns the {id} path value. Ids are uuid columns, so anything that
// does not parse cannot exist and reports notFound.
func pathID(r *http.Request, notFound error) (string, error) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q", notFound, id)
	}
	return id, nil
}
