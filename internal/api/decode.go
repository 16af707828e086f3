package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

const maxPayloadSize = 64 << 10

// DecodePayload strictly decodes a JSON request body into dest.
func DecodePayload(w http.ResponseWriter, r *http.Request, dest any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		return errors.New("unsupported content type")
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("extra data in request body")
	}
	return nil
}
