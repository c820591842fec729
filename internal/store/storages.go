package store

import "github.com/savelyev-an/accountd/internal/logger"

// Storages aggregates all repository implementations behind their interfaces
// so that the service layer receives a single dependency.
type Storages struct {
	AccountRepository AccountRepository
}

// NewStorages constructs the repository set on top of the shared database
// connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		AccountRepository: NewAccountRepository(db, log),
	}
}
