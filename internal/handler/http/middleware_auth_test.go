// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Savelyev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/internal/service"
	"github.com/savelyev-an/accountd/internal/store"
	"github.com/savelyev-an/accountd/internal/utils"
	"github.com/savelyev-an/accountd/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextCapture is a terminal handler that records whether it ran and what
// identity the middleware placed in the context.
type nextCapture struct {
	called    bool
	accountID uuid.UUID
	role      string
}

func (n *nextCapture) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.called = true
		n.accountID, _ = utils.GetAccountIDFromContext(r.Context())
		n.role, _ = utils.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

// ─────────────────────────────────────────────
// auth
// ─────────────────────────────────────────────

func TestAuth_Success(t *testing.T) {
	accountID := uuid.New()

	accounts := &mockAccountService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			assert.Equal(t, "valid.jwt", tokenString)
			return models.Token{AccountID: accountID}, nil
		},
		getByIDFn: func(_ context.Context, id uuid.UUID) (models.Account, error) {
			assert.Equal(t, accountID, id)
			return models.Account{ID: id, Role: models.RoleManager}, nil
		},
	}

	h := newHandlerWithServices(t, accounts, &mockProfileService{})
	next := &nextCapture{}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt")
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
	assert.Equal(t, accountID, next.accountID)
	assert.Equal(t, string(models.RoleManager), next.role)
}

func TestAuth_HeaderFailures(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no token part", "Bearer"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithServices(t, &mockAccountService{}, &mockProfileService{})
			next := &nextCapture{}

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.auth(next.handler()).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, next.called)
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	accounts := &mockAccountService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}

	h := newHandlerWithServices(t, accounts, &mockProfileService{})
	next := &nextCapture{}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired.jwt")
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

// TestAuth_DeletedAccount verifies that a syntactically valid token whose
// account no longer exists is rejected with 401.
func TestAuth_DeletedAccount(t *testing.T) {
	accounts := &mockAccountService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{AccountID: uuid.New()}, nil
		},
		getByIDFn: func(_ context.Context, _ uuid.UUID) (models.Account, error) {
			return models.Account{}, store.ErrAccountNotFound
		},
	}

	h := newHandlerWithServices(t, accounts, &mockProfileService{})
	next := &nextCapture{}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer orphan.jwt")
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

// ─────────────────────────────────────────────
// requireAdmin
// ─────────────────────────────────────────────

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		wantStatus int
		wantNext   bool
	}{
		{"admin passes", models.RoleAdmin, http.StatusOK, true},
		{"manager rejected", models.RoleManager, http.StatusForbidden, false},
		{"regular rejected", models.RoleAuthenticated, http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithServices(t, &mockAccountService{}, &mockProfileService{})
			next := &nextCapture{}

			req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/accounts", nil), uuid.New(), tt.role)
			rec := httptest.NewRecorder()

			h.requireAdmin(next.handler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, next.called)
		})
	}
}

func TestRequireAdmin_NoRoleInContext(t *testing.T) {
	h := newHandlerWithServices(t, &mockAccountService{}, &mockProfileService{})
	next := &nextCapture{}

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	rec := httptest.NewRecorder()

	h.requireAdmin(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, next.called)
}

// ─────────────────────────────────────────────
// getTokenFromAuthHeader
// ─────────────────────────────────────────────

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid bearer", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"scheme only", "Bearer", "", ErrInvalidAuthorizationHeader},
		{"empty token", "Bearer ", "", ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
