package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/nexahub/nexahub-backend/internal/core/domain/verification"
	"github.com/nexahub/nexahub-backend/internal/core/ports"
)

const verificationKeyPrefix = "nexahub:verify"

// VerificationRedisRepository stores verification records in Redis so they
// can be shared across service instances. Records carry the Redis TTL as a
// memory bound; the service still evaluates expiry lazily from IssuedAt.
type VerificationRedisRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
	logger      *logrus.Logger
}

// Ensure VerificationRedisRepository implements ports.VerificationRepository
var _ ports.VerificationRepository = (*VerificationRedisRepository)(nil)

func NewVerificationRedisRepository(redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) *VerificationRedisRepository {
	return &VerificationRedisRepository{redisClient: redisClient, ttl: ttl, logger: logger}
}

func (r *VerificationRedisRepository) key(email string) string {
	return fmt.Sprintf("%s:%s", verificationKeyPrefix, email)
}

func (r *VerificationRedisRepository) Get(ctx context.Context, email string) (*verification.Record, bool, error) {
	b, err := r.redisClient.Get(ctx, r.key(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get verification record from redis: %w", err)
	}

	var record verification.Record
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal verification record: %w", err)
	}

	return &record, true, nil
}

func (r *VerificationRedisRepository) Put(ctx context.Context, record *verification.Record) error {
	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal verification record: %w", err)
	}

	if err := r.redisClient.Set(ctx, r.key(record.Email), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verification record in redis: %w", err)
	}

	return nil
}

func (r *VerificationRedisRepository) Delete(ctx context.Context, email string) error {
	if err := r.redisClient.Del(ctx, r.key(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete verification record from redis: %w", err)
	}
	return nil
}
