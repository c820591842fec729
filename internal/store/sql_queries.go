package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/models"
)

// accountColumns is the canonical column order for the "accounts" table.
// Every SELECT and RETURNING clause in this package uses it, so scanAccount
// can rely on a single column layout.
var accountColumns = []string{
	"id",
	"email",
	"nickname",
	"hashed_password",
	"role",
	"email_verified",
	"verification_token",
	"failed_login_attempts",
	"is_locked",
	"is_professional",
	"professional_status_updated_at",
	"first_name",
	"last_name",
	"bio",
	"profile_picture_url",
	"linkedin_url",
	"github_url",
	"created_at",
	"updated_at",
}

var accountColumnsCSV = strings.Join(accountColumns, ", ")

// Unique index names declared in the migrations. PostgreSQL reports them as
// the constraint name on unique_violation errors, which is how Create tells
// an email collision apart from a nickname collision.
const (
	emailUniqueConstraint    = "accounts_email_unique"
	nicknameUniqueConstraint = "accounts_nickname_unique"
)

var (
	createAccount = `INSERT INTO accounts (
		id, email, nickname, hashed_password, role, verification_token,
		first_name, last_name, bio, profile_picture_url, linkedin_url, github_url
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING ` + accountColumnsCSV + `;`

	getAccountByID = `SELECT ` + accountColumnsCSV + `
	FROM accounts
	WHERE id = $1;`

	getAccountByEmail = `SELECT ` + accountColumnsCSV + `
	FROM accounts
	WHERE email = $1;`

	getAccountByNickname = `SELECT ` + accountColumnsCSV + `
	FROM accounts
	WHERE nickname = $1;`

	countAccounts = `SELECT count(*) FROM accounts;`

	// A password reset also clears the lockout state: the new credential
	// supersedes whatever failures accumulated against the old one.
	setPassword = `UPDATE accounts
	SET hashed_password = $2, failed_login_attempts = 0, is_locked = FALSE, updated_at = now()
	WHERE id = $1;`

	// The increment and the threshold check happen in one statement so that
	// concurrent failed logins serialize on the row and never lose an update.
	recordFailedLogin = `UPDATE accounts
	SET failed_login_attempts = failed_login_attempts + 1,
	    is_locked = is_locked OR failed_login_attempts + 1 >= $2,
	    updated_at = now()
	WHERE id = $1
	RETURNING failed_login_attempts, is_locked;`

	resetLoginAttempts = `UPDATE accounts
	SET failed_login_attempts = 0, updated_at = now()
	WHERE id = $1;`

	// Compare-and-clear: only one concurrent verification attempt can match
	// the stored token, so the email is verified exactly once.
	consumeVerificationToken = `UPDATE accounts
	SET email_verified = TRUE, verification_token = NULL, updated_at = now()
	WHERE id = $1 AND verification_token = $2 AND NOT email_verified;`

	unlockAccount = `UPDATE accounts
	SET is_locked = FALSE, failed_login_attempts = 0, updated_at = now()
	WHERE id = $1;`

	setProfessionalStatus = `UPDATE accounts
	SET is_professional = $2, professional_status_updated_at = now(), updated_at = now()
	WHERE id = $1
	RETURNING ` + accountColumnsCSV + `;`

	deleteAccount = `DELETE FROM accounts WHERE id = $1;`
)

// buildListAccountsQuery builds a paginated SELECT over the accounts table,
// ordered by creation time with the ID as a tiebreaker so pagination is
// stable across requests.
func buildListAccountsQuery(skip, limit uint64) (string, []any, error) {
	return sq.Select(accountColumns...).
		From("accounts").
		OrderBy("created_at ASC", "id ASC").
		Offset(skip).
		Limit(limit).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildUpdateProfileQuery builds an UPDATE that sets exactly the non-nil
// fields of the patch. The patchable column set is closed: credentials, role
// and lifecycle flags are not reachable from here.
func buildUpdateProfileQuery(id uuid.UUID, patch models.ProfilePatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, ErrEmptyProfilePatch
	}

	builder := sq.Update("accounts")

	if patch.FirstName != nil {
		builder = builder.Set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		builder = builder.Set("last_name", *patch.LastName)
	}
	if patch.Bio != nil {
		builder = builder.Set("bio", *patch.Bio)
	}
	if patch.ProfilePictureURL != nil {
		builder = builder.Set("profile_picture_url", *patch.ProfilePictureURL)
	}
	if patch.LinkedinURL != nil {
		builder = builder.Set("linkedin_url", *patch.LinkedinURL)
	}
	if patch.GithubURL != nil {
		builder = builder.Set("github_url", *patch.GithubURL)
	}

	return builder.
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + accountColumnsCSV).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
