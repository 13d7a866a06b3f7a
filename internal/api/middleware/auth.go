package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/contactdesk/contacts-api/internal/api/shared"
	"github.com/contactdesk/contacts-api/internal/platform/logger"
	"github.com/contactdesk/contacts-api/internal/service/auth"
	"github.com/contactdesk/contacts-api/internal/store"
)

const unauthorizedMessage = "Unauthorized"

// AuthMiddleware guards routes that require an authenticated user.
// It resolves the bearer token to a user record and stores it in the request
// context. Every failure mode, missing header, bad token, expired token,
// vanished user, collapses into the same 401 so callers cannot probe which
// check failed.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
	logger     *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore, log *slog.Logger) *AuthMiddleware {
	if log == nil {
		log = slog.Default()
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
		logger:     log.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate validates the Authorization header and loads the user.
// On success the user is placed in the context under shared.UserContextKey.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContextOrDefault(ctx, m.logger)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug("missing Authorization header")
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			log.Debug("malformed Authorization header")
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, tokenString)
		if err != nil {
			log.Debug("token validation failed", slog.String("reason", tokenReason(err)))
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
			return
		}

		user, err := m.userStore.GetByUsername(ctx, claims.Username)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				log.Debug("token subject no longer exists",
					slog.String("username", claims.Username))
				shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage)
				return
			}
			log.Error("failed to load user for token",
				slog.String("error", err.Error()))
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"internal server error", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(ctx, user)))
	})
}

// tokenReason names the validation failure for the debug log only; the
// response never carries it.
func tokenReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "not_yet_valid"
	default:
		return "invalid"
	}
}
