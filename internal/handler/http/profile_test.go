// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Savelyev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/internal/service"
	"github.com/savelyev-an/accountd/internal/utils"
	"github.com/savelyev-an/accountd/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withIdentity stores an authenticated account ID and role in the request
// context, simulating what the auth middleware does.
func withIdentity(r *http.Request, accountID uuid.UUID, role models.Role) *http.Request {
	ctx := context.WithValue(r.Context(), utils.AccountIDCtxKey, accountID)
	ctx = context.WithValue(ctx, utils.RoleCtxKey, string(role))
	return r.WithContext(ctx)
}

// ─────────────────────────────────────────────
// updateProfile
// ─────────────────────────────────────────────

func TestUpdateProfile_Success(t *testing.T) {
	accountID := uuid.New()
	firstName := "Alice"

	profiles := &mockProfileService{
		updateProfileFn: func(_ context.Context, id uuid.UUID, patch models.ProfilePatch) (models.Account, error) {
			assert.Equal(t, accountID, id)
			require.NotNil(t, patch.FirstName)
			assert.Equal(t, firstName, *patch.FirstName)
			return models.Account{ID: id, FirstName: &firstName}, nil
		},
	}

	h := newHandlerWithServices(t, &mockAccountService{}, profiles)
	body := jsonBody(t, models.ProfilePatch{FirstName: &firstName})
	req := withIdentity(httptest.NewRequest(http.MethodPatch, "/api/profile/me", strings.NewReader(body)), accountID, models.RoleAuthenticated)
	rec := httptest.NewRecorder()

	h.updateProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, accountID, got.ID)
}

// TestUpdateProfile_RestrictedFieldsAreRejected verifies that keys outside
// the patchable field set fail the request instead of being silently
// dropped.
func TestUpdateProfile_RestrictedFieldsAreRejected(t *testing.T) {
	accountID := uuid.New()

	profiles := &mockProfileService{
		updateProfileFn: func(_ context.Context, _ uuid.UUID, _ models.ProfilePatch) (models.Account, error) {
			t.Fatal("service must not be reached for a patch with unknown keys")
			return models.Account{}, nil
		},
	}

	h := newHandlerWithServices(t, &mockAccountService{}, profiles)
	body := `{"bio":"hello","role":"ADMIN","is_locked":false,"email":"evil@example.com"}`
	req := withIdentity(httptest.NewRequest(http.MethodPatch, "/api/profile/me", strings.NewReader(body)), accountID, models.RoleAuthenticated)
	rec := httptest.NewRecorder()

	h.updateProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfile_EmptyPatch(t *testing.T) {
	profiles := &mockProfileService{
		updateProfileFn: func(_ context.Context, _ uuid.UUID, _ models.ProfilePatch) (models.Account, error) {
			return models.Account{}, service.ErrInvalidDataProvided
		},
	}

	h := newHandlerWithServices(t, &mockAccountService{}, profiles)
	req := withIdentity(httptest.NewRequest(http.MethodPatch, "/api/profile/me", strings.NewReader("{}")), uuid.New(), models.RoleAuthenticated)
	rec := httptest.NewRecorder()

	h.updateProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfile_NoIdentityInContext(t *testing.T) {
	h := newHandlerWithServices(t, &mockAccountService{}, &mockProfileService{})
	req := httptest.NewRequest(http.MethodPatch, "/api/profile/me", strings.NewReader("{}"))
	rec := httptest.NewRecorder()

	h.updateProfile(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// upgradeProfessional
// ─────────────────────────────────────────────

func TestUpgradeProfessional_Allowed(t *testing.T) {
	actorID := uuid.New()
	targetID := uuid.New()

	profiles := &mockProfileService{
		upgradeFn: func(_ context.Context, actorRole models.Role, id uuid.UUID) (models.Account, bool, error) {
			assert.Equal(t, models.RoleManager, actorRole)
			assert.Equal(t, targetID, id)
			return models.Account{ID: id, IsProfessional: true}, true, nil
		},
	}

	h := newHandlerWithServices(t, &mockAccountService{}, profiles)
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/accounts/"+targetID.String()+"/upgrade", nil), actorID, models.RoleManager)
	req = withURLParam(req, "accountID", targetID.String())
	rec := httptest.NewRecorder()

	h.upgradeProfessional(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.IsProfessional)
}

// TestUpgradeProfessional_Denied verifies that an insufficient role yields
// 403 without an error body leaking details.
func TestUpgradeProfessional_Denied(t *testing.T) {
	targetID := uuid.New()

	profiles := &mockProfileService{
		upgradeFn: func(_ context.Context, actorRole models.Role, _ uuid.UUID) (models.Account, bool, error) {
			assert.Equal(t, models.RoleAuthenticated, actorRole)
			return models.Account{}, false, nil
		},
	}

	h := newHandlerWithServices(t, &mockAccountService{}, profiles)
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/accounts/"+targetID.String()+"/upgrade", nil), uuid.New(), models.RoleAuthenticated)
	req = withURLParam(req, "accountID", targetID.String())
	rec := httptest.NewRecorder()

	h.upgradeProfessional(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// TestUpgradeProfessional_TargetMissing verifies that a nonexistent target
// is reported exactly like an insufficient role.
func TestUpgradeProfessional_TargetMissing(t *testing.T) {
	targetID := uuid.New()

	profiles := &mockProfileService{
		upgradeFn: func(_ context.Context, _ models.Role, _ uuid.UUID) (models.Account, bool, error) {
			return models.Account{}, false, nil
		},
	}

	h := newHandlerWithServices(t, &mockAccountService{}, profiles)
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/accounts/"+targetID.String()+"/upgrade", nil), uuid.New(), models.RoleAdmin)
	req = withURLParam(req, "accountID", targetID.String())
	rec := httptest.NewRecorder()

	h.upgradeProfessional(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
