package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/notify"
	"github.com/savelyev-an/accountd/internal/store"
	"github.com/savelyev-an/accountd/models"
)

// profileService is the concrete implementation of ProfileService.
type profileService struct {
	accountRepository store.AccountRepository
	notifications     NotificationEnqueuer
	logger            *logger.Logger
}

// NewProfileService constructs a ProfileService wired to the given
// repository.
func NewProfileService(accountRepository store.AccountRepository, notifications NotificationEnqueuer, logger *logger.Logger) ProfileService {
	return &profileService{
		accountRepository: accountRepository,
		notifications:     notifications,
		logger:            logger,
	}
}

// UpdateProfile applies the patch to the caller's own profile. The patchable
// field set is closed by construction of [models.ProfilePatch]: credentials,
// role and lifecycle flags cannot travel through it.
//
// Returns ErrInvalidDataProvided for an empty patch and
// store.ErrAccountNotFound when the account vanished underneath the caller.
func (p *profileService) UpdateProfile(ctx context.Context, accountID uuid.UUID, patch models.ProfilePatch) (models.Account, error) {
	log := logger.FromContext(ctx)

	if patch.IsEmpty() {
		return models.Account{}, ErrInvalidDataProvided
	}

	updated, err := p.accountRepository.UpdateProfile(ctx, accountID, patch)
	if err != nil {
		log.Err(err).Str("account_id", accountID.String()).Msg("profile update ended with error")
		return models.Account{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	return updated, nil
}

// UpgradeProfessionalStatus marks the target account professional.
//
// Authorization is role-based: only MANAGER and ADMIN actors may upgrade
// other accounts. An insufficient role yields allowed=false with a nil
// error, and so does a target account that does not exist; both are
// expected denials, not faults.
func (p *profileService) UpgradeProfessionalStatus(ctx context.Context, actorRole models.Role, targetID uuid.UUID) (models.Account, bool, error) {
	log := logger.FromContext(ctx)

	if !actorRole.CanUpgradeOthers() {
		log.Warn().Str("actor_role", string(actorRole)).Str("target_id", targetID.String()).Msg("professional upgrade denied")
		return models.Account{}, false, nil
	}

	account, err := p.accountRepository.SetProfessionalStatus(ctx, targetID, true)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Warn().Str("target_id", targetID.String()).Msg("professional upgrade target does not exist")
			return models.Account{}, false, nil
		}
		return models.Account{}, false, fmt.Errorf("professional upgrade ended with error: %w", err)
	}

	p.notifications.Enqueue(notify.Message{
		Template:  notify.TemplateProfessionalUpgrade,
		Recipient: account.Email,
		Name:      account.DisplayName(),
	})

	return account, true, nil
}
