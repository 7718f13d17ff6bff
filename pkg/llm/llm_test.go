package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRateLimitDetection(t *testing.T) {
	b := newRateLimitBackoff()

	resp := &http.Response{StatusCode: http.StatusTooManyRequests}
	assert.True(t, b.IsRateLimit(nil, resp))

	assert.True(t, b.IsRateLimit(fmt.Errorf("OpenAI API error (status 429): slow down"), nil))
	assert.True(t, b.IsRateLimit(fmt.Errorf("rate limit exceeded for requests"), nil))
	assert.True(t, b.IsRateLimit(fmt.Errorf("you have quota exceeded"), nil))
	assert.False(t, b.IsRateLimit(fmt.Errorf("connection refused"), nil))
	assert.False(t, b.IsRateLimit(nil, nil))
}

func TestBackoffDelayGrowsAndCaps(t *testing.T) {
	b := newRateLimitBackoff()

	assert.Equal(t, 2*time.Second, b.Delay(nil, 0))
	assert.Equal(t, 4*time.Second, b.Delay(nil, 1))
	assert.Equal(t, 8*time.Second, b.Delay(nil, 2))
	assert.Equal(t, b.MaxDelay, b.Delay(nil, 20))
}

func TestBackoffHonorsRetryAfterHeader(t *testing.T) {
	b := newRateLimitBackoff()
	resp := &http.Response{
		StatusCode: http.StatusTooManyRequests,
		Header:     http.Header{"Retry-After": []string{"7"}},
	}
	assert.Equal(t, 7*time.Second+b.BufferTime, b.Delay(resp, 0))
}

func TestShouldRetryStopsAtMax(t *testing.T) {
	b := newRateLimitBackoff()
	assert.True(t, b.ShouldRetry(0))
	assert.True(t, b.ShouldRetry(2))
	assert.False(t, b.ShouldRetry(3))
}

func TestTypedErrorsUnwrapWithAs(t *testing.T) {
	var rateErr *RateLimitError
	err := fmt.Errorf("stage failed: %w", &RateLimitError{Provider: "openai", Message: "slow down"})
	require.True(t, errors.As(err, &rateErr))
	assert.Contains(t, rateErr.Error(), "rate limit")

	var svcErr *ServiceError
	assert.False(t, errors.As(err, &svcErr))
}

func TestWireMessagesSystemPromptOnlyOnFirstCall(t *testing.T) {
	req := Request{Prompt: "hello", SystemPrompt: "be helpful"}

	first := wireMessages(req, nil)
	require.Len(t, first, 2)
	assert.Equal(t, "system", first[0].Role)
	assert.Equal(t, "user", first[1].Role)

	history := appendExchange(nil, "hello", "hi")
	second := wireMessages(Request{Prompt: "next", SystemPrompt: "be helpful"}, history)
	require.Len(t, second, 3)
	assert.Equal(t, "user", second[0].Role)
	assert.Equal(t, "assistant", second[1].Role)
	assert.Equal(t, "next", second[2].Content)
}

func TestAppendExchangeDoesNotMutateInput(t *testing.T) {
	history := appendExchange(nil, "a", "b")
	updated := appendExchange(history, "c", "d")

	assert.Len(t, history, 2)
	require.Len(t, updated, 4)
	assert.Equal(t, "c", updated[2].Content)
}

func TestEstimateCostAndTokens(t *testing.T) {
	s := &OpenAIService{model: "gpt-4o-mini"}
	assert.InDelta(t, 0.00015+0.0006, s.EstimateCost(1000, 1000), 1e-9)

	unknown := &OpenAIService{model: "some-unknown-model"}
	assert.Equal(t, s.EstimateCost(1000, 1000), unknown.EstimateCost(1000, 1000))

	assert.Equal(t, 4, s.CountTokens("12345678901234567890123"))
}

func TestParseProviderName(t *testing.T) {
	p, err := ParseProviderName("OpenAI")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, p)

	p, err = ParseProviderName("ollama-local")
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, p)

	_, err = ParseProviderName("gemini")
	assert.Error(t, err)
}
