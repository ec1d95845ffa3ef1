package handlers

import (
	"encoding/json"
	"net/http"
)

// Development controls whether error responses carry the underlying error
// detail. Set once from config at startup; production responses stay generic.
var Development bool

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	payload := map[string]string{"message": message}
	if err != nil && Development {
		payload["error"] = err.Error()
	}
	respondJSON(w, status, payload)
}
