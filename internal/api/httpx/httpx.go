// Package httpx writes the JSON envelope every endpoint shares: successful
// responses carry success:true plus the payload fields, failures carry
// success:false and a human-readable message.
package httpx

import (
	"encoding/json"
	"net/http"
)

type M map[string]any

func OK(w http.ResponseWriter, status int, payload M) {
	body := M{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func Fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, M{"success": false, "message": msg})
}

// FailFields reports validation failures with per-field detail.
func FailFields(w http.ResponseWriter, errs any) {
	writeJSON(w, http.StatusBadRequest, M{"success": false, "errors": errs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
