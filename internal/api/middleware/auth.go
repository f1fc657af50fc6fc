package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID  = "identifiant utilisateur manquant"
	msgInvalidUserID  = "identifiant utilisateur invalide"
	msgInvalidRole    = "rôle utilisateur invalide"
	msgAdminOnly      = "accès réservé aux administrateurs"
	msgMissingSession = "session manquante"
)

type contextKey string

const sessionKey contextKey = "session"

// Auth проверяет заголовки X-User-ID и X-User-Role и кладет domain.Session в контекст.
// Роль по умолчанию client.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role := domain.RoleClient
		if rawRole := strings.TrimSpace(r.Header.Get(HeaderUserRole)); rawRole != "" {
			role = domain.Role(strings.ToLower(rawRole))
			if !role.IsValid() {
				handlers.RespondUnauthorized(w, msgInvalidRole)
				return
			}
		}

		session := domain.Session{UserID: userID, Role: role}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireAdmin пропускает только администраторов. Используется после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSession(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingSession)
			return
		}
		if !session.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession возвращает контекст с сессией
func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession извлекает сессию из контекста
func GetSession(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(domain.Session)
	return session, ok
}
