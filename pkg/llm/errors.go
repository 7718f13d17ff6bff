package llm

import "fmt"

// ServiceError is a generic, non-retryable provider failure.
type ServiceError struct {
	Provider string
	Message  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service error: %s", e.Provider, e.Message)
}

// RateLimitError is returned once the provider's rate limit survived
// every retry attempt.
type RateLimitError struct {
	Provider string
	Message  string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limit exceeded: %s", e.Provider, e.Message)
}

// TimeoutError is returned when a request exceeded its deadline on the
// final retry attempt.
type TimeoutError struct {
	Provider string
	Message  string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s request timed out: %s", e.Provider, e.Message)
}
