// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Savelyev

package http

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/service"
	"github.com/savelyev-an/accountd/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AccountService
// ─────────────────────────────────────────────

// mockAccountService implements service.AccountService for unit tests.
// Each method field can be overridden per test case.
type mockAccountService struct {
	registerFn      func(ctx context.Context, req models.RegisterRequest) (models.Account, error)
	authenticateFn  func(ctx context.Context, email, password string) (models.Account, error)
	createTokenFn   func(ctx context.Context, account models.Account) (models.Token, error)
	parseTokenFn    func(ctx context.Context, tokenString string) (models.Token, error)
	verifyEmailFn   func(ctx context.Context, accountID uuid.UUID, token string) (bool, error)
	resetPasswordFn func(ctx context.Context, accountID uuid.UUID, newPassword string) (bool, error)
	unlockFn        func(ctx context.Context, accountID uuid.UUID) (bool, error)
	deleteFn        func(ctx context.Context, accountID uuid.UUID) (bool, error)
	getByIDFn       func(ctx context.Context, accountID uuid.UUID) (models.Account, error)
	listFn          func(ctx context.Context, skip, limit uint64) ([]models.Account, int64, error)
}

func (m *mockAccountService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAccountService) Authenticate(ctx context.Context, email, password string) (models.Account, error) {
	return m.authenticateFn(ctx, email, password)
}

func (m *mockAccountService) CreateToken(ctx context.Context, account models.Account) (models.Token, error) {
	return m.createTokenFn(ctx, account)
}

func (m *mockAccountService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAccountService) VerifyEmail(ctx context.Context, accountID uuid.UUID, token string) (bool, error) {
	return m.verifyEmailFn(ctx, accountID, token)
}

func (m *mockAccountService) ResetPassword(ctx context.Context, accountID uuid.UUID, newPassword string) (bool, error) {
	return m.resetPasswordFn(ctx, accountID, newPassword)
}

func (m *mockAccountService) Unlock(ctx context.Context, accountID uuid.UUID) (bool, error) {
	return m.unlockFn(ctx, accountID)
}

func (m *mockAccountService) Delete(ctx context.Context, accountID uuid.UUID) (bool, error) {
	return m.deleteFn(ctx, accountID)
}

func (m *mockAccountService) GetByID(ctx context.Context, accountID uuid.UUID) (models.Account, error) {
	return m.getByIDFn(ctx, accountID)
}

func (m *mockAccountService) List(ctx context.Context, skip, limit uint64) ([]models.Account, int64, error) {
	return m.listFn(ctx, skip, limit)
}

// ─────────────────────────────────────────────
// Mock ProfileService
// ─────────────────────────────────────────────

type mockProfileService struct {
	updateProfileFn func(ctx context.Context, accountID uuid.UUID, patch models.ProfilePatch) (models.Account, error)
	upgradeFn       func(ctx context.Context, actorRole models.Role, targetID uuid.UUID) (models.Account, bool, error)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, accountID uuid.UUID, patch models.ProfilePatch) (models.Account, error) {
	return m.updateProfileFn(ctx, accountID, patch)
}

func (m *mockProfileService) UpgradeProfessionalStatus(ctx context.Context, actorRole models.Role, targetID uuid.UUID) (models.Account, bool, error) {
	return m.upgradeFn(ctx, actorRole, targetID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newHandlerWithServices builds a Handler with the given service mocks.
func newHandlerWithServices(t *testing.T, accounts service.AccountService, profiles service.ProfileService) *Handler {
	t.Helper()
	svcs := &service.Services{
		AccountService: accounts,
		ProfileService: profiles,
	}
	return NewHandler(svcs, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

// validRegisterRequest is a convenience fixture used across multiple tests.
var validRegisterRequest = models.RegisterRequest{
	Email:    "alice@example.com",
	Password: "correct-horse-battery-staple",
}
