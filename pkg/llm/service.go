package llm

import "context"

// Message is one role-tagged exchange in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries one generation call's parameters. SystemPrompt is only
// honored on the first call of a conversation (empty history).
type Request struct {
	Prompt       string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

// Service is the generation port the pipeline consumes. Retries and
// backoff live entirely inside implementations; callers only see
// success or one of the typed errors in this package.
type Service interface {
	// Generate runs a single, history-free generation.
	Generate(ctx context.Context, req Request) (string, error)

	// GenerateWithHistory sends the prompt together with the accumulated
	// conversation and returns the response plus the updated history
	// (prior history + user prompt + assistant response).
	GenerateWithHistory(ctx context.Context, req Request, history []Message) (string, []Message, error)

	// EstimateCost returns the approximate request cost in USD.
	EstimateCost(inputTokens, outputTokens int) float64

	// CountTokens approximates the token count of a text.
	CountTokens(text string) int
}

// appendExchange returns history extended with the prompt/response pair,
// never mutating the input slice.
func appendExchange(history []Message, prompt, response string) []Message {
	updated := make([]Message, 0, len(history)+2)
	updated = append(updated, history...)
	updated = append(updated,
		Message{Role: "user", Content: prompt},
		Message{Role: "assistant", Content: response},
	)
	return updated
}

// wireMessages builds the message list for one call: the system prompt
// (first call only), prior history, then the new user prompt.
func wireMessages(req Request, history []Message) []Message {
	messages := make([]Message, 0, len(history)+2)
	if len(history) == 0 && req.SystemPrompt != "" {
		messages = append(messages, Message{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: req.Prompt})
	return messages
}
