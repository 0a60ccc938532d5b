package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
)

// writeJSON encodes v before touching the status line, so an unencodable value becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// errorStatus maps engine errors onto HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, candy.ErrEmptySelection):
		return http.StatusUnprocessableEntity
	case errors.Is(err, candy.ErrInvalidSelectionSize), errors.Is(err, candy.ErrUnknownCandy):
		return http.StatusBadRequest
	case errors.Is(err, candy.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), map[string]string{"error": err.Error()})
}
