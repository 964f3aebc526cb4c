package ports

import (
	"context"

	"github.com/nexahub/nexahub-backend/internal/core/domain/verification"
)

// VerificationRepository stores at most one active verification record per
// email key. Implementations may keep records in process memory or in a
// shared keyed store such as Redis; the TTL/attempt/single-use policy lives
// in the service layer, not here.
type VerificationRepository interface {
	// Get returns the active record for email. ok=false if none exists.
	Get(ctx context.Context, email string) (*verification.Record, bool, error)
	// Put stores the record under its email, replacing any existing one.
	Put(ctx context.Context, record *verification.Record) error
	// Delete removes the record for email; absence is not an error.
	Delete(ctx context.Context, email string) error
}

// VerificationService issues and validates short-lived, single-use email
// verification codes.
type VerificationService interface {
	// IssueCode generates and stores a fresh code for email, replacing any
	// previously issued one, and returns it for delivery.
	IssueCode(ctx context.Context, email string) (string, error)
	// SendCode issues a code and delivers it to email.
	SendCode(ctx context.Context, email string) error
	// VerifyCode checks suppliedCode against the active record for email.
	VerifyCode(ctx context.Context, email, suppliedCode string) (verification.Outcome, error)
}
