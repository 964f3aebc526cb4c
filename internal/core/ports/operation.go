package ports

import (
	"context"

	"github.com/nexahub/nexahub-backend/internal/core/domain/operation"
)

// OperationService turns logical text operations into provider requests and
// executes them.
type OperationService interface {
	// BuildRequest validates the operation input and builds the provider
	// request without performing any I/O.
	BuildRequest(req *operation.Request) (*operation.ProviderRequest, error)
	// Dispatch builds the provider request and executes it.
	Dispatch(ctx context.Context, req *operation.Request) (*operation.Result, error)
}

// ProviderClient executes a built provider request against the downstream
// text-generation provider. Implementations are stateless and safe for
// concurrent use; a single call makes a single attempt, retries are a caller
// policy.
type ProviderClient interface {
	Send(ctx context.Context, req *operation.ProviderRequest) (*operation.Result, error)
}
