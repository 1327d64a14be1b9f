package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/haguru/mongolens/internal/interfaces"
)

const MsgInternalError = "internal server error"

// Recovery turns a panicking handler into a 500 failure envelope.
func Recovery(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Recovered from panic", "panic", rec, "path", r.URL.Path,
					"request_id", RequestIDFromContext(r.Context()), "stack", string(debug.Stack()))
				writeFailure(w, http.StatusInternalServerError, MsgInternalError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
