package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nexahub/nexahub-backend/internal/core/domain/verification"
	"github.com/nexahub/nexahub-backend/internal/core/ports"
	"github.com/nexahub/nexahub-backend/internal/utils"
)

// VerificationConfig holds the code lifecycle policy.
type VerificationConfig struct {
	CodeTTL     time.Duration
	MaxAttempts int
}

type VerificationService struct {
	repo         ports.VerificationRepository
	emailService ports.EmailService
	config       *VerificationConfig
	logger       *logrus.Logger
	// emailLocks serializes issue/validate per email so the
	// read-check-increment-write sequence in VerifyCode is atomic.
	emailLocks *utils.KeyedMutex
}

func NewVerificationService(repo ports.VerificationRepository, emailService ports.EmailService, config *VerificationConfig, logger *logrus.Logger) ports.VerificationService {
	return &VerificationService{
		repo:         repo,
		emailService: emailService,
		config:       config,
		logger:       logger,
		emailLocks:   utils.NewKeyedMutex(),
	}
}

// IssueCode generates a fresh code for email and stores it, unconditionally
// replacing any earlier record: only the most recently issued code for an
// email is ever valid.
func (s *VerificationService) IssueCode(ctx context.Context, email string) (string, error) {
	code, err := verification.GenerateCode()
	if err != nil {
		return "", err
	}

	unlock := s.emailLocks.Lock(email)
	defer unlock()

	record := &verification.Record{
		ID:       uuid.New(),
		Email:    email,
		Code:     code,
		IssuedAt: time.Now(),
		Attempts: 0,
	}
	if err := s.repo.Put(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store verification record: %w", err)
	}

	return code, nil
}

// SendCode issues a code for email and delivers it. A delivery failure leaves
// the issued code active; the caller may retry sending, which replaces it.
func (s *VerificationService) SendCode(ctx context.Context, email string) error {
	code, err := s.IssueCode(ctx, email)
	if err != nil {
		return err
	}

	if err := s.emailService.SendVerificationCode(ctx, email, code); err != nil {
		s.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Error("failed to deliver verification code")
		return fmt.Errorf("failed to send verification code: %w", err)
	}

	return nil
}

// VerifyCode checks suppliedCode against the active record for email. Checks
// run in a fixed order: existence, expiry, exhausted attempts, then code
// comparison. Every terminal outcome deletes the record, so a given issuance
// can produce at most one successful validation.
func (s *VerificationService) VerifyCode(ctx context.Context, email, suppliedCode string) (verification.Outcome, error) {
	unlock := s.emailLocks.Lock(email)
	defer unlock()

	record, ok, err := s.repo.Get(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to load verification record: %w", err)
	}
	if !ok {
		return verification.OutcomeNotFound, nil
	}

	if record.IsExpired(s.config.CodeTTL) {
		if err := s.repo.Delete(ctx, email); err != nil {
			return "", fmt.Errorf("failed to delete expired verification record: %w", err)
		}
		return verification.OutcomeExpired, nil
	}

	if record.Attempts >= s.config.MaxAttempts {
		if err := s.repo.Delete(ctx, email); err != nil {
			return "", fmt.Errorf("failed to delete locked-out verification record: %w", err)
		}
		return verification.OutcomeTooManyAttempts, nil
	}

	record.Attempts++

	if record.Code == suppliedCode {
		if err := s.repo.Delete(ctx, email); err != nil {
			return "", fmt.Errorf("failed to consume verification record: %w", err)
		}
		return verification.OutcomeOK, nil
	}

	if err := s.repo.Put(ctx, record); err != nil {
		return "", fmt.Errorf("failed to record verification attempt: %w", err)
	}

	return verification.OutcomeMismatch, nil
}
