package presenter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// StatusCoder is implemented by errors that know their HTTP status.
type StatusCoder interface {
	HTTPStatus() int
}

// JSON encodes data before touching the response so an encoding failure still yields a 500.
func JSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("encoding response body")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func Error(w http.ResponseWriter, r *http.Request, msg string, status int) {
	JSON(w, r, ErrorResponse{
		Error:         msg,
		CorrelationID: w.Header().Get("X-Correlation-ID"),
	}, status)
}

// Err renders err with the status it carries, or 400 if it carries none.
func Err(w http.ResponseWriter, r *http.Request, err error, short string) {
	status := http.StatusBadRequest
	var sc StatusCoder
	if errors.As(err, &sc) {
		status = sc.HTTPStatus()
	}
	if status >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg(short)
	}
	Error(w, r, short+": "+err.Error(), status)
}
