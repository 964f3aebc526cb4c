package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexahub/nexahub-backend/internal/core/domain/verification"
	"github.com/nexahub/nexahub-backend/internal/core/ports"
)

// VerificationMemoryRepository keeps verification records in process memory.
// State does not survive a restart and is not shared across instances; a
// multi-instance deployment should use the Redis implementation instead.
type VerificationMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]verification.Record
	logger  *logrus.Logger
	done    chan struct{}
	once    sync.Once
}

// Ensure VerificationMemoryRepository implements ports.VerificationRepository
var _ ports.VerificationRepository = (*VerificationMemoryRepository)(nil)

func NewVerificationMemoryRepository(logger *logrus.Logger) *VerificationMemoryRepository {
	return &VerificationMemoryRepository{
		records: make(map[string]verification.Record),
		logger:  logger,
		done:    make(chan struct{}),
	}
}

func (r *VerificationMemoryRepository) Get(ctx context.Context, email string) (*verification.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[email]
	if !ok {
		return nil, false, nil
	}
	// Return a copy so Put remains the only mutator of stored state.
	return &record, true, nil
}

func (r *VerificationMemoryRepository) Put(ctx context.Context, record *verification.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.Email] = *record
	return nil
}

func (r *VerificationMemoryRepository) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, email)
	return nil
}

// StartSweeper launches a background sweep that drops expired records every
// interval. Expiry is still evaluated lazily at validation time; the sweep
// only bounds memory held by abandoned records.
func (r *VerificationMemoryRepository) StartSweeper(interval, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.sweep(ttl)
			case <-r.done:
				return
			}
		}
	}()
}

func (r *VerificationMemoryRepository) sweep(ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for email, record := range r.records {
		if record.IsExpired(ttl) {
			delete(r.records, email)
			removed++
		}
	}

	if removed > 0 && r.logger != nil {
		r.logger.WithFields(logrus.Fields{"removed": removed}).Debug("swept expired verification records")
	}
}

// Close stops the background sweeper, if started.
func (r *VerificationMemoryRepository) Close() {
	r.once.Do(func() { close(r.done) })
}
