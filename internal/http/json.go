package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
)

// maxJSONBody bounds JSON request bodies; the console only accepts small
// control payloads such as a crop region.
const maxJSONBody = 64 << 10

// DecodeJSON decodes a single JSON object from the body into dst. On failure
// it writes a 400 (or 413) JSON error and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, apperrors.Validation("request body too large"))
			return false
		}
		WriteError(w, http.StatusBadRequest, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid JSON body"))
		return false
	}
	return true
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// WriteError writes {"error": code, "message": text} for err. Only the
// user-facing message of an AppError is exposed, never its cause.
func WriteError(w http.ResponseWriter, status int, err error) {
	code := string(apperrors.GetCode(err))
	if code == "" {
		code = string(apperrors.ErrCodeInternal)
	}
	WriteJSON(w, status, map[string]string{"error": code, "message": apperrors.MessageOf(err)})
}
