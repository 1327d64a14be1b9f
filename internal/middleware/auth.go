package middleware

import (
	"context"
	"crypto/ecdsa"
	"net/http"
	"strings"

	"github.com/haguru/mongolens/internal/auth"
	"github.com/haguru/mongolens/internal/interfaces"
)

const (
	AuthorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "

	MsgMissingToken = "missing bearer token"
	MsgInvalidToken = "invalid or expired token"
)

type operatorKey struct{}

// BearerAuth accepts only requests carrying an ES256 token signed by the
// key matching publicKey.
func BearerAuth(publicKey *ecdsa.PublicKey, logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(AuthorizationHeader)
			if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeFailure(w, http.StatusUnauthorized, MsgMissingToken)
				return
			}

			claims, err := auth.VerifyToken(strings.TrimSpace(header[len(bearerPrefix):]), publicKey)
			if err != nil {
				logger.Warn("Rejected token", "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()), "error", err)
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				writeFailure(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey{}, claims.Operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperatorFromContext returns the operator authenticated by BearerAuth.
func OperatorFromContext(ctx context.Context) string {
	op, _ := ctx.Value(operatorKey{}).(string)
	return op
}
