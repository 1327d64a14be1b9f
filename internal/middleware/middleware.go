package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/haguru/mongolens/internal/models"
)

const (
	contentType     = "Content-Type"
	contentTypeJSON = "application/json"
)

// Chain wraps h so that the first middleware is the outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set(contentType, contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&models.Response{Success: false, Message: message})
}
