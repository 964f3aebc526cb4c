package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	codeMin = 100000
	codeMax = 999999
)

// GenerateCode produces a verification code drawn uniformly from
// [100000, 999999] using a cryptographically strong random source. The range
// guarantees exactly six digits with no leading zero.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}

// Record tracks one outstanding verification challenge for an email address.
// At most one record exists per email; a new issuance replaces any prior one.
type Record struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
	Attempts int       `json:"attempts"`
}

// IsExpired reports whether the record has outlived ttl.
func (r *Record) IsExpired(ttl time.Duration) bool {
	return time.Since(r.IssuedAt) > ttl
}

// Outcome is the result of a single validation attempt.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeNotFound        Outcome = "not_found"
	OutcomeExpired         Outcome = "expired"
	OutcomeTooManyAttempts Outcome = "too_many_attempts"
	OutcomeMismatch        Outcome = "mismatch"
)

// SendCodeRequest represents the request to issue and deliver a code
type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyCodeRequest represents the request to validate a code
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}
