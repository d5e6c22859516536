package middleware

import (
	"net/http"
	"strings"

	"github.com/supplyhub/supplyhub/pkg/auth"
	"github.com/supplyhub/supplyhub/pkg/response"
)

// AuthMiddleware guards mutating routes (the feed-run trigger) behind a
// bearer JWT issued by `supplyhub token`.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.Replace(r.Header.Get("Authorization"), "Bearer ", "", 1)

		if token == "" {
			response.Unauthorized(w)
			return
		}

		if _, err := auth.ValidateToken(token); err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
