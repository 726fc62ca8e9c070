package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// fieldError is one entry of a 422 detail list.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func missing(field string) fieldError {
	return fieldError{Loc: []string{"body", field}, Msg: "field required", Type: "value_error.missing"}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeValidation(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string][]fieldError{"detail": errs})
}

// decodeJSON reads a JSON body into dst, answering 422 itself when the body
// is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
	if err == nil {
		return true
	}
	msg := "Invalid JSON body"
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		msg = "Request body is empty"
	case errors.As(err, &syn):
		msg = "Malformed JSON body"
	case errors.As(err, &typ):
		writeValidation(w, []fieldError{{Loc: []string{"body", typ.Field}, Msg: "invalid type", Type: "type_error"}})
		return false
	}
	writeValidation(w, []fieldError{{Loc: []string{"body"}, Msg: msg, Type: "value_error.jsondecode"}})
	return false
}
