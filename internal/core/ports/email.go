package ports

import (
	"context"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
