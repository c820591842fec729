package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/models"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. It executes all account CRUD and lifecycle operations
// against the "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// dbError wraps a driver-level failure. Errors the classifier marks as
// retryable carry [ErrStorageUnavailable] so callers can tell a transient
// outage from a permanent fault.
func (r *accountRepository) dbError(err error) error {
	if r.db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return fmt.Errorf("unexpected DB error: %w", err)
}

// scanner abstracts sql.Row and sql.Rows for scanAccount.
type scanner interface {
	Scan(dest ...any) error
}

// scanAccount reads one row laid out as accountColumns into a models.Account.
func scanAccount(row scanner) (models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Nickname,
		&account.HashedPassword,
		&account.Role,
		&account.EmailVerified,
		&account.VerificationToken,
		&account.FailedLoginAttempts,
		&account.IsLocked,
		&account.IsProfessional,
		&account.ProfessionalStatusUpdatedAt,
		&account.FirstName,
		&account.LastName,
		&account.Bio,
		&account.ProfilePictureURL,
		&account.LinkedinURL,
		&account.GithubURL,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	return account, err
}

// Create persists a new account record and returns the fully populated
// [models.Account] with server-assigned fields (CreatedAt, UpdatedAt).
//
// Error handling:
//   - unique_violation on the email index → [ErrEmailAlreadyExists].
//   - unique_violation on the nickname index → [ErrNicknameAlreadyExists].
//   - Any other driver-level error → classified through dbError.
func (r *accountRepository) Create(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAccount,
		account.ID, account.Email, account.Nickname, account.HashedPassword,
		account.Role, account.VerificationToken,
		account.FirstName, account.LastName, account.Bio,
		account.ProfilePictureURL, account.LinkedinURL, account.GithubURL,
	)

	created, err := scanAccount(row)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.Create").Msg("error creating account")

		if postgresError(err) == pgerrcode.UniqueViolation {
			switch postgresConstraint(err) {
			case nicknameUniqueConstraint:
				return models.Account{}, ErrNicknameAlreadyExists
			default:
				return models.Account{}, ErrEmailAlreadyExists
			}
		}

		return models.Account{}, r.dbError(err)
	}

	return created, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return r.getOne(ctx, "*accountRepository.GetByID", getAccountByID, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.getOne(ctx, "*accountRepository.GetByEmail", getAccountByEmail, email)
}

func (r *accountRepository) GetByNickname(ctx context.Context, nickname string) (models.Account, error) {
	return r.getOne(ctx, "*accountRepository.GetByNickname", getAccountByNickname, nickname)
}

// getOne runs a single-row lookup query and maps sql.ErrNoRows to
// [ErrAccountNotFound].
func (r *accountRepository) getOne(ctx context.Context, funcName, query string, arg any) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error querying account")
		return models.Account{}, r.dbError(err)
	}

	return account, nil
}

// Count returns the total number of registered accounts. Used both for list
// pagination and for the first-registrant role bootstrap.
func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countAccounts).Scan(&total); err != nil {
		log.Err(err).Str("func", "*accountRepository.Count").Msg("error counting accounts")
		return 0, r.dbError(err)
	}

	return total, nil
}

// List returns a page of accounts ordered by (created_at, id).
func (r *accountRepository) List(ctx context.Context, skip, limit uint64) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAccountsQuery(skip, limit)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.List").Msg("error building list query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.List").Msg("error executing list query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0, limit)
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*accountRepository.List").Msg("error scanning account row")
			return nil, errors.Join(ErrScanningRows, scanErr)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return accounts, nil
}

// UpdateProfile applies the non-nil patch fields to the account and returns
// the updated record. Only the self-editable profile columns can change.
func (r *accountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, patch models.ProfilePatch) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(id, patch)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateProfile").Msg("error building update query")
		return models.Account{}, err
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.UpdateProfile").Msg("error updating profile")
		return models.Account{}, r.dbError(err)
	}

	return account, nil
}

// SetPassword replaces the stored password hash and clears the lockout
// state in the same statement.
func (r *accountRepository) SetPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return r.execOne(ctx, "*accountRepository.SetPassword", setPassword, id, hashedPassword)
}

// RecordFailedLogin increments the failed-attempt counter and locks the
// account once the counter reaches maxAttempts, all in one statement.
// Concurrent callers serialize on the row lock, so no increment is lost.
func (r *accountRepository) RecordFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int) (int, bool, error) {
	log := logger.FromContext(ctx)

	var (
		attempts int
		locked   bool
	)
	err := r.db.QueryRowContext(ctx, recordFailedLogin, id, maxAttempts).Scan(&attempts, &locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.RecordFailedLogin").Msg("error recording failed login")
		return 0, false, r.dbError(err)
	}

	return attempts, locked, nil
}

// ResetLoginAttempts zeroes the failed-attempt counter.
func (r *accountRepository) ResetLoginAttempts(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, "*accountRepository.ResetLoginAttempts", resetLoginAttempts, id)
}

// ConsumeVerificationToken performs the atomic compare-and-clear of the
// stored verification token. Returns true when this call performed the
// verification, false when the token did not match or the email was already
// verified.
func (r *accountRepository) ConsumeVerificationToken(ctx context.Context, id uuid.UUID, token string) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, consumeVerificationToken, id, token)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ConsumeVerificationToken").Msg("error consuming verification token")
		return false, r.dbError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, r.dbError(err)
	}

	return rowsAffected > 0, nil
}

// Unlock clears the lock flag and the failed-attempt counter.
func (r *accountRepository) Unlock(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, "*accountRepository.Unlock", unlockAccount, id)
}

// SetProfessionalStatus flips the professional flag, stamps the change time
// and returns the updated record.
func (r *accountRepository) SetProfessionalStatus(ctx context.Context, id uuid.UUID, isProfessional bool) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := scanAccount(r.db.QueryRowContext(ctx, setProfessionalStatus, id, isProfessional))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.SetProfessionalStatus").Msg("error setting professional status")
		return models.Account{}, r.dbError(err)
	}

	return account, nil
}

// Delete removes the account record.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, "*accountRepository.Delete", deleteAccount, id)
}

// execOne runs a DML statement that must affect exactly one row and maps a
// zero-row result to [ErrAccountNotFound].
func (r *accountRepository) execOne(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return r.dbError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return r.dbError(err)
	}
	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
