package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/internal/config"
	"github.com/savelyev-an/accountd/internal/crypto"
	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/notify"
	"github.com/savelyev-an/accountd/internal/store"
	"github.com/savelyev-an/accountd/internal/utils"
	"github.com/savelyev-an/accountd/models"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

// nicknameGenerationAttempts bounds the auto-generation retry loop when a
// generated nickname collides with an existing one.
const nicknameGenerationAttempts = 5

// accountService is the concrete implementation of AccountService.
// It owns registration, credential verification with lockout, email
// verification and the administrative account operations, delegating
// persistence to an AccountRepository and password hashing to a
// PasswordHasher.
type accountService struct {
	// accountRepository is the data-access layer for account records.
	accountRepository store.AccountRepository

	// hasher hashes passwords at registration and verifies them at login.
	hasher crypto.PasswordHasher

	// notifications receives the lifecycle messages (verification link,
	// lock warning, password reset notice) for asynchronous delivery.
	notifications NotificationEnqueuer

	// uuidGenerator produces the verification token secrets.
	uuidGenerator *utils.UUIDGenerator

	// nicknameGenerator produces handles for registrations without one.
	nicknameGenerator *utils.NicknameGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// maxLoginAttempts is the lockout threshold for consecutive failures.
	maxLoginAttempts int

	// minPasswordEntropy is the strength floor for new passwords.
	minPasswordEntropy float64

	// verificationBaseURL is the public base for verification links.
	verificationBaseURL string

	// logger is the structured logger used for diagnostic output.
	logger *logger.Logger
}

// NewAccountService constructs an AccountService wired to the given
// repository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAccountService(
	accountRepository store.AccountRepository,
	hasher crypto.PasswordHasher,
	notifications NotificationEnqueuer,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		accountRepository:   accountRepository,
		hasher:              hasher,
		notifications:       notifications,
		uuidGenerator:       utils.NewUUIDGenerator(),
		nicknameGenerator:   utils.NewNicknameGenerator(),
		tokenSignKey:        cfg.App.TokenSignKey,
		tokenIssuer:         cfg.App.TokenIssuer,
		tokenDuration:       cfg.App.TokenDuration,
		maxLoginAttempts:    cfg.App.MaxLoginAttempts,
		minPasswordEntropy:  cfg.App.MinPasswordEntropy,
		verificationBaseURL: strings.TrimRight(cfg.SMTP.BaseURL, "/"),
		logger:              logger,
	}
}

// Register creates a new account.
//
// The flow:
//  1. Validate and normalise the email (lowercased, trimmed).
//  2. Check password strength against the configured entropy floor.
//  3. Reject an email that is already taken. The check is advisory; the
//     unique index catches the concurrent case at persist time.
//  4. Resolve the nickname: the supplied one as-is, or an auto-generated
//     handle retried on collision up to nicknameGenerationAttempts times.
//  5. Assign the role: the very first registrant becomes ADMIN, everyone
//     else AUTHENTICATED. Whatever role the request carried is discarded.
//  6. Persist the account with a fresh verification token and queue the
//     verification email.
//
// Returns the persisted account or:
//   - ErrInvalidDataProvided for a missing or malformed email/password.
//   - ErrWeakPassword when the password entropy is below the floor.
//   - store.ErrEmailAlreadyExists / store.ErrNicknameAlreadyExists on
//     uniqueness conflicts.
//   - ErrNicknameExhausted when auto-generation keeps colliding.
func (a *accountService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	email, err := normalizeEmail(req.Email)
	if err != nil {
		log.Error().Str("email", req.Email).Msg("invalid email provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	if req.Password == "" {
		return models.Account{}, ErrInvalidDataProvided
	}
	if err := passwordvalidator.Validate(req.Password, a.minPasswordEntropy); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	// Advisory duplicate check; the unique index remains the race-breaker
	// for registrations arriving concurrently.
	switch _, err := a.accountRepository.GetByEmail(ctx, email); {
	case err == nil:
		return models.Account{}, store.ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrAccountNotFound):
		return models.Account{}, fmt.Errorf("account lookup failed: %w", err)
	}

	hashedPassword, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Account{}, fmt.Errorf("password hashing failed: %w", err)
	}

	role := models.RoleAuthenticated
	total, err := a.accountRepository.Count(ctx)
	if err != nil {
		return models.Account{}, fmt.Errorf("account count failed: %w", err)
	}
	if total == 0 {
		role = models.RoleAdmin
	}

	verificationToken := a.uuidGenerator.Generate()

	account := models.Account{
		ID:                uuid.New(),
		Email:             email,
		HashedPassword:    hashedPassword,
		Role:              role,
		VerificationToken: &verificationToken,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
		LinkedinURL:       req.LinkedinURL,
		GithubURL:         req.GithubURL,
	}

	created, err := a.createWithNickname(ctx, account, strings.TrimSpace(req.Nickname))
	if err != nil {
		log.Err(err).Str("email", email).Msg("account creation ended with error")
		return models.Account{}, err
	}

	a.notifications.Enqueue(notify.Message{
		Template:  notify.TemplateEmailVerification,
		Recipient: created.Email,
		Name:      created.DisplayName(),
		Data: map[string]string{
			"VerificationToken": verificationToken,
			"VerificationLink": fmt.Sprintf("%s/api/auth/verify-email?account_id=%s&token=%s",
				a.verificationBaseURL, created.ID, verificationToken),
		},
	})

	return created, nil
}

// createWithNickname persists the account, auto-generating the nickname when
// the caller did not supply one. Collisions on generated nicknames are
// retried a bounded number of times; a collision on a caller-supplied
// nickname is returned to the caller unchanged.
func (a *accountService) createWithNickname(ctx context.Context, account models.Account, nickname string) (models.Account, error) {
	if nickname != "" {
		account.Nickname = nickname
		return a.accountRepository.Create(ctx, account)
	}

	for attempt := 0; attempt < nicknameGenerationAttempts; attempt++ {
		account.Nickname = a.nicknameGenerator.Generate()

		created, err := a.accountRepository.Create(ctx, account)
		if errors.Is(err, store.ErrNicknameAlreadyExists) {
			continue
		}
		return created, err
	}

	return models.Account{}, ErrNicknameExhausted
}

// Authenticate verifies the credentials for the given email.
//
// Lockout policy: every wrong password increments the failure counter in one
// atomic statement; reaching the threshold locks the account and queues a
// lock notification. A successful login resets the counter.
//
// Returns the account on success or:
//   - ErrInvalidDataProvided when email or password is empty.
//   - ErrAuthenticationFailed for an unknown email, a wrong password or a
//     locked account, indistinguishably. The locked case is detected before
//     the password check (and logged), but the caller sees the same error
//     either way so that probing reveals nothing.
func (a *accountService) Authenticate(ctx context.Context, email, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.Account{}, ErrInvalidDataProvided
	}

	normalized, err := normalizeEmail(email)
	if err != nil {
		return models.Account{}, ErrAuthenticationFailed
	}

	account, err := a.accountRepository.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return models.Account{}, ErrAuthenticationFailed
		}
		log.Err(err).Msg("account lookup failed")
		return models.Account{}, fmt.Errorf("account lookup failed: %w", err)
	}

	if account.IsLocked {
		log.Warn().Str("account_id", account.ID.String()).Msg("login attempt on locked account")
		return models.Account{}, ErrAuthenticationFailed
	}

	if !a.hasher.Verify(password, account.HashedPassword) {
		attempts, locked, recordErr := a.accountRepository.RecordFailedLogin(ctx, account.ID, a.maxLoginAttempts)
		if recordErr != nil {
			log.Err(recordErr).Str("account_id", account.ID.String()).Msg("recording failed login attempt failed")
		} else if locked {
			log.Warn().Str("account_id", account.ID.String()).Int("attempts", attempts).Msg("account locked after repeated failures")
			a.notifications.Enqueue(notify.Message{
				Template:  notify.TemplateAccountLocked,
				Recipient: account.Email,
				Name:      account.DisplayName(),
			})
		}
		return models.Account{}, ErrAuthenticationFailed
	}

	if account.FailedLoginAttempts > 0 {
		if resetErr := a.accountRepository.ResetLoginAttempts(ctx, account.ID); resetErr != nil {
			log.Err(resetErr).Str("account_id", account.ID.String()).Msg("resetting login attempts failed")
		}
	}

	return account, nil
}

// CreateToken issues a signed JWT for the given account.
func (a *accountService) CreateToken(ctx context.Context, account models.Account) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, account.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *accountService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// VerifyEmail consumes the verification token for the account. The
// compare-and-clear happens in the store, so concurrent attempts with the
// same token succeed at most once. A mismatch is a plain false, not an
// error.
func (a *accountService) VerifyEmail(ctx context.Context, accountID uuid.UUID, token string) (bool, error) {
	if token == "" {
		return false, ErrInvalidDataProvided
	}

	return a.accountRepository.ConsumeVerificationToken(ctx, accountID, token)
}

// ResetPassword sets a new password chosen by an administrator, clears any
// lockout state and queues a notice to the account owner. Returns false when
// the account does not exist.
func (a *accountService) ResetPassword(ctx context.Context, accountID uuid.UUID, newPassword string) (bool, error) {
	log := logger.FromContext(ctx)

	if newPassword == "" {
		return false, ErrInvalidDataProvided
	}
	if err := passwordvalidator.Validate(newPassword, a.minPasswordEntropy); err != nil {
		return false, fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	account, err := a.accountRepository.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("account lookup failed: %w", err)
	}

	hashedPassword, err := a.hasher.Hash(newPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return false, fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.accountRepository.SetPassword(ctx, accountID, hashedPassword); err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("password update failed: %w", err)
	}

	a.notifications.Enqueue(notify.Message{
		Template:  notify.TemplatePasswordReset,
		Recipient: account.Email,
		Name:      account.DisplayName(),
	})

	return true, nil
}

// Unlock clears the lockout state. Returns false when the account does not
// exist.
func (a *accountService) Unlock(ctx context.Context, accountID uuid.UUID) (bool, error) {
	err := a.accountRepository.Unlock(ctx, accountID)
	if errors.Is(err, store.ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("unlock failed: %w", err)
	}

	return true, nil
}

// Delete removes the account. Returns false when it does not exist.
func (a *accountService) Delete(ctx context.Context, accountID uuid.UUID) (bool, error) {
	err := a.accountRepository.Delete(ctx, accountID)
	if errors.Is(err, store.ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete failed: %w", err)
	}

	return true, nil
}

func (a *accountService) GetByID(ctx context.Context, accountID uuid.UUID) (models.Account, error) {
	return a.accountRepository.GetByID(ctx, accountID)
}

// List returns one page of accounts and the total count for pagination.
func (a *accountService) List(ctx context.Context, skip, limit uint64) ([]models.Account, int64, error) {
	accounts, err := a.accountRepository.List(ctx, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("account listing failed: %w", err)
	}

	total, err := a.accountRepository.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("account count failed: %w", err)
	}

	return accounts, total, nil
}

// normalizeEmail validates the address and returns its canonical lowercased
// form.
func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", ErrInvalidDataProvided
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", ErrInvalidDataProvided
	}

	return strings.ToLower(addr.Address), nil
}
