package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lotos-studio/LOTOS-BookingService/internal/api/handlers"
)

type contextKey string

const (
	clientEmailKey contextKey = "clientEmail"
	adminKey       contextKey = "isAdmin"

	// HeaderClientEmail заголовок идентификации клиента
	HeaderClientEmail = "X-Client-Email"

	// HeaderAdminToken заголовок токена администратора
	HeaderAdminToken = "X-Admin-Token"
)

// Auth проверяет наличие заголовка X-Client-Email и кладет email в контекст.
// Полноценной аутентификации нет - личность клиента подтверждает
// внешний слой (сайт студии).
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(HeaderClientEmail))
		if email == "" || !strings.Contains(email, "@") {
			handlers.RespondUnauthorized(w, "требуется заголовок X-Client-Email")
			return
		}

		ctx := context.WithValue(r.Context(), clientEmailKey, strings.ToLower(email))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuth проверяет токен администратора из заголовка X-Admin-Token
func AdminAuth(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(HeaderAdminToken)
			if token == "" {
				handlers.RespondUnauthorized(w, "требуется заголовок X-Admin-Token")
				return
			}
			if token != adminToken {
				handlers.RespondForbidden(w, "недействительный токен администратора")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientEmail достает email клиента из контекста запроса
func GetClientEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(clientEmailKey).(string)
	return email, ok
}

// IsAdmin возвращает true, если запрос прошел через AdminAuth
func IsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(adminKey).(bool)
	return ok && isAdmin
}
