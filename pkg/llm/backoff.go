package llm

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// rateLimitBackoff handles rate limit detection and backoff timing for
// the HTTP providers.
type rateLimitBackoff struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	BufferTime time.Duration
}

func newRateLimitBackoff() *rateLimitBackoff {
	return &rateLimitBackoff{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   60 * time.Second,
		BufferTime: 2 * time.Second,
	}
}

func containsRateLimitPhrases(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "rate limit") ||
		strings.Contains(s, "requests per minute") ||
		strings.Contains(s, "rate exceeded") ||
		strings.Contains(s, "quota exceeded") ||
		strings.Contains(s, "too many requests") ||
		strings.Contains(s, "insufficient_quota") ||
		(strings.Contains(s, "quota") && strings.Contains(s, "exceeded"))
}

// IsRateLimit checks whether an error or HTTP response indicates a rate
// limit. Providers are inconsistent, so both the status code and the
// message text are sniffed.
func (b *rateLimitBackoff) IsRateLimit(err error, resp *http.Response) bool {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "429") {
		return true
	}
	return containsRateLimitPhrases(errStr)
}

// Delay returns how long to wait before the next attempt, preferring
// provider rate limit headers over exponential backoff.
func (b *rateLimitBackoff) Delay(resp *http.Response, attempt int) time.Duration {
	if resp != nil {
		if d := b.headerDelay(resp); d > 0 {
			return d
		}
	}
	return b.capDelay(b.BaseDelay * time.Duration(math.Pow(2, float64(attempt))))
}

func (b *rateLimitBackoff) headerDelay(resp *http.Response) time.Duration {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			return b.capDelay(time.Duration(seconds)*time.Second + b.BufferTime)
		}
	}
	if resetHeader := resp.Header.Get("X-RateLimit-Reset"); resetHeader != "" {
		if resetTime, err := strconv.ParseInt(resetHeader, 10, 64); err == nil {
			resetAt := time.Unix(resetTime/1000, (resetTime%1000)*1000000)
			if wait := time.Until(resetAt); wait > 0 {
				return b.capDelay(wait + b.BufferTime)
			}
		}
	}
	return 0
}

func (b *rateLimitBackoff) capDelay(delay time.Duration) time.Duration {
	if delay > b.MaxDelay {
		return b.MaxDelay
	}
	if delay < 0 {
		return b.BaseDelay
	}
	return delay
}

// ShouldRetry reports whether another attempt is allowed.
func (b *rateLimitBackoff) ShouldRetry(attempt int) bool {
	return attempt < b.MaxRetries
}
