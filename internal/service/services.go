package service

import (
	"github.com/savelyev-an/accountd/internal/config"
	"github.com/savelyev-an/accountd/internal/crypto"
	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/store"
)

type Services struct {
	AccountService AccountService
	ProfileService ProfileService
}

func NewServices(
	storages *store.Storages,
	hasher crypto.PasswordHasher,
	notifications NotificationEnqueuer,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	return &Services{
		AccountService: NewAccountService(storages.AccountRepository, hasher, notifications, cfg, logger),
		ProfileService: NewProfileService(storages.AccountRepository, notifications, logger),
	}
}
