package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const openAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIService implements Service against the OpenAI chat completions
// API with raw HTTP. Rate-limit retries with exponential backoff happen
// here, invisible to callers.
type OpenAIService struct {
	httpClient *http.Client
	apiKey     string
	model      string
	backoff    *rateLimitBackoff
}

type openAIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// NewOpenAIService builds a client from OPENAI_API_KEY.
func NewOpenAIService(model string) (*OpenAIService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if model == "" {
		model = defaultPricingModel
	}
	return &OpenAIService{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		apiKey:     apiKey,
		model:      model,
		backoff:    newRateLimitBackoff(),
	}, nil
}

func (s *OpenAIService) Generate(ctx context.Context, req Request) (string, error) {
	content, _, err := s.GenerateWithHistory(ctx, req, nil)
	return content, err
}

func (s *OpenAIService) GenerateWithHistory(ctx context.Context, req Request, history []Message) (string, []Message, error) {
	content, err := s.chat(ctx, wireMessages(req, history), req)
	if err != nil {
		return "", history, err
	}
	return content, appendExchange(history, req.Prompt, content), nil
}

// chat runs the retry loop around a single logical request.
func (s *OpenAIService) chat(ctx context.Context, messages []Message, req Request) (string, error) {
	for attempt := 0; ; attempt++ {
		content, resp, err := s.doRequest(ctx, messages, req)
		if err == nil {
			return content, nil
		}
		if ctx.Err() != nil {
			return "", &TimeoutError{Provider: "openai", Message: ctx.Err().Error()}
		}

		if s.backoff.IsRateLimit(err, resp) {
			if !s.backoff.ShouldRetry(attempt) {
				return "", &RateLimitError{Provider: "openai", Message: err.Error()}
			}
			if werr := sleepCtx(ctx, s.backoff.Delay(resp, attempt)); werr != nil {
				return "", &TimeoutError{Provider: "openai", Message: werr.Error()}
			}
			continue
		}

		if isTimeoutErr(err) {
			if !s.backoff.ShouldRetry(attempt) {
				return "", &TimeoutError{Provider: "openai", Message: err.Error()}
			}
			if werr := sleepCtx(ctx, time.Duration(attempt+1)*time.Second); werr != nil {
				return "", &TimeoutError{Provider: "openai", Message: werr.Error()}
			}
			continue
		}

		return "", &ServiceError{Provider: "openai", Message: err.Error()}
	}
}

// doRequest performs one HTTP round trip. The returned response has its
// body consumed; it is only useful for status and headers.
func (s *OpenAIService) doRequest(ctx context.Context, messages []Message, req Request) (string, *http.Response, error) {
	payload := openAIRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		payload.Temperature = &temp
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp openAIResponse
		if jerr := json.Unmarshal(body, &errorResp); jerr == nil && errorResp.Error != nil {
			return "", resp, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, errorResp.Error.Message)
		}
		return "", resp, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", resp, fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", resp, fmt.Errorf("OpenAI API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", resp, fmt.Errorf("no choices in response")
	}
	content := parsed.Choices[0].Message.Content
	if content == "" {
		return "", resp, fmt.Errorf("empty response content")
	}
	return content, resp, nil
}

func (s *OpenAIService) EstimateCost(inputTokens, outputTokens int) float64 {
	pricing := pricingFor(s.model)
	return float64(inputTokens)/1000*pricing.Input + float64(outputTokens)/1000*pricing.Output
}

func (s *OpenAIService) CountTokens(text string) int {
	return estimateTokens(text)
}

func isTimeoutErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
