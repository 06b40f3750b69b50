// Package httputil centralizes response writing for handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"

	dErrors "gimm/pkg/domain-errors"
)

// WriteHTML writes a pre-rendered HTML document.
func WriteHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WriteJSON encodes v as the response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into a status code and a small error page.
// Internal causes are never echoed to the caller.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.HTTPStatus(code)

	msg := http.StatusText(status)
	var de *dErrors.Error
	if errors.As(err, &de) && status < http.StatusInternalServerError {
		msg = de.Message
	}

	body := fmt.Sprintf(
		"<!DOCTYPE html>\n<html><head><title>%d %s</title></head><body><h1>%d %s</h1><p>%s</p></body></html>\n",
		status, http.StatusText(status), status, http.StatusText(status), html.EscapeString(msg),
	)
	w.Header().Set("X-Error-Code", string(code))
	WriteHTML(w, status, body)
}
