package utils

import (
	"encoding/json"
	"errors"
	"net/http"
)

// MaxBodyBytes caps every decoded request body.
const MaxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("empty request body")

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"error": "..."} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// DecodeJSON parses the JSON body into v and answers 400 on failure.
// Callers return as soon as it reports an error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		JSONError(w, http.StatusBadRequest, ErrEmptyBody.Error())
		return ErrEmptyBody
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			JSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return err
		}
		JSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return err
	}

	return nil
}
