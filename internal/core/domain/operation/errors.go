package operation

import "fmt"

// ValidationError reports caller input that is missing or malformed. It is
// always detectable before any provider I/O.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ProviderAuthError indicates the provider rejected our credentials,
// typically an invalid API key or exhausted credits. Never retried; the
// credential has to be fixed out of band.
type ProviderAuthError struct{}

func (e *ProviderAuthError) Error() string {
	return "provider API key is invalid or out of credits"
}

// ProviderEmptyResponseError indicates a successful provider response that
// carried no usable output.
type ProviderEmptyResponseError struct {
	Endpoint Endpoint
}

func (e *ProviderEmptyResponseError) Error() string {
	return fmt.Sprintf("provider returned no output from %s", e.Endpoint)
}

// ProviderTimeoutError indicates the outbound call timed out or was cancelled
// before the provider produced a response.
type ProviderTimeoutError struct {
	Cause error
}

func (e *ProviderTimeoutError) Error() string {
	return fmt.Sprintf("provider request timed out: %v", e.Cause)
}

func (e *ProviderTimeoutError) Unwrap() error { return e.Cause }

// ProviderError covers every other upstream failure: non-2xx responses and
// transport-level errors. StatusCode is 0 for transport errors.
type ProviderError struct {
	StatusCode int
	Body       string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("provider request failed: %v", e.Cause)
}

func (e *ProviderError) Unwrap() error { return e.Cause }
