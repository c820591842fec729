package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/service"
	"github.com/savelyev-an/accountd/internal/store"
	"github.com/savelyev-an/accountd/internal/utils"
	"github.com/savelyev-an/accountd/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AccountService.ParseToken] and resolves the
// account it names. On success the account's ID and role are stored in the
// request context under [utils.AccountIDCtxKey] and [utils.RoleCtxKey]
// before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]).
//   - The token is expired, malformed or signed with the wrong key.
//   - The account behind a valid token no longer exists.
//
// A locked account keeps its already-issued token working; lockout gates the
// login path, not every request.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AccountService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		}

		// The role lives in the database, not in the token, so a role change
		// takes effect immediately instead of at token expiry.
		account, err := h.services.AccountService.GetByID(ctx, token.AccountID)
		if err != nil {
			if errors.Is(err, store.ErrAccountNotFound) {
				log.Warn().Str("account_id", token.AccountID.String()).Msg("token names a deleted account")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			log.Err(err).Msg("account lookup failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		// Store the authenticated account's identity in the context so that
		// downstream handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.AccountIDCtxKey, account.ID)
		ctx = context.WithValue(ctx, utils.RoleCtxKey, string(account.Role))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates administrative routes. It must run after auth, which
// stores the caller's role in the context. Anything but ADMIN gets 403.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		role, ok := utils.GetRoleFromContext(r.Context())
		if !ok || models.Role(role) != models.RoleAdmin {
			log.Warn().Str("role", role).Msg("administrative route denied")
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: Bearer <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] when the header contains fewer than
//     two space-separated parts.
//   - [ErrEmptyToken] when the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
