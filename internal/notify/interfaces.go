// Package notify delivers account lifecycle notifications (verification
// links, lock warnings, status changes) over SMTP and webhooks. Delivery is
// best-effort: the account operation that triggered a notification never
// fails or rolls back because delivery failed.
package notify

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/notifier_mock.go -package=mock

// Template identifies one of the known notification kinds. Each template has
// a matching HTML body embedded in the binary.
type Template string

const (
	// TemplateEmailVerification carries the verification link sent right
	// after registration.
	TemplateEmailVerification Template = "email_verification"

	// TemplatePasswordReset informs the owner that an administrator has
	// replaced the account password.
	TemplatePasswordReset Template = "password_reset"

	// TemplateProfessionalUpgrade informs the owner that the account has
	// been upgraded to professional status.
	TemplateProfessionalUpgrade Template = "professional_upgrade"

	// TemplateAccountLocked informs the owner that the account was locked
	// after repeated failed logins.
	TemplateAccountLocked Template = "account_locked"
)

// Message is a single notification to deliver.
type Message struct {
	// Template selects the notification kind and its rendered body.
	Template Template

	// Recipient is the destination email address.
	Recipient string

	// Name is the recipient's display name, interpolated into the body.
	Name string

	// Data carries template-specific values (e.g. the verification link).
	Data map[string]string
}

// Notifier delivers a single notification message. Implementations must be
// safe for concurrent use; the dispatch worker calls Send from its own
// goroutine.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
