package response

import (
	"encoding/json"
	"net/http"
)

// Envelope wraps every successful payload so clients always read from
// the "data" key.
type Envelope struct {
	Data any `json:"data"`
}

// WriteJSON encodes v with the given status. Content-Type is left alone
// when a handler already set one.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes 200 with the enveloped payload.
func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Data: data})
}

// Created writes 201 with the enveloped payload.
func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Data: data})
}

// NoContent writes 204 with an empty body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
