package llm

import (
	"context"
	"fmt"
	"strings"

	ollama "github.com/ollama/ollama/api"
)

// OllamaService implements Service against a local Ollama instance.
// Local inference carries no cost, so EstimateCost is always zero.
type OllamaService struct {
	client *ollama.Client
	model  string
}

// NewOllamaService connects via the standard OLLAMA_HOST environment
// resolution and fails fast when no server is reachable.
func NewOllamaService(ctx context.Context, model string) (*OllamaService, error) {
	client, err := ollama.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("could not create ollama client: %w", err)
	}
	if err := client.Heartbeat(ctx); err != nil {
		return nil, fmt.Errorf("ollama server not reachable: %w", err)
	}
	if model == "" {
		model = "llama3.1"
	}
	return &OllamaService{client: client, model: model}, nil
}

func (s *OllamaService) Generate(ctx context.Context, req Request) (string, error) {
	content, _, err := s.GenerateWithHistory(ctx, req, nil)
	return content, err
}

func (s *OllamaService) GenerateWithHistory(ctx context.Context, req Request, history []Message) (string, []Message, error) {
	messages := wireMessages(req, history)
	ollamaMessages := make([]ollama.Message, len(messages))
	for i, msg := range messages {
		ollamaMessages[i] = ollama.Message{Role: msg.Role, Content: msg.Content}
	}

	stream := false
	chatReq := &ollama.ChatRequest{
		Model:    s.model,
		Messages: ollamaMessages,
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
		},
	}

	var responseContent strings.Builder
	err := s.client.Chat(ctx, chatReq, func(res ollama.ChatResponse) error {
		responseContent.WriteString(res.Message.Content)
		return nil
	})
	if err != nil {
		if ctx.Err() != nil || isTimeoutErr(err) {
			return "", history, &TimeoutError{Provider: "ollama", Message: err.Error()}
		}
		return "", history, &ServiceError{Provider: "ollama", Message: err.Error()}
	}

	content := responseContent.String()
	if strings.TrimSpace(content) == "" {
		return "", history, &ServiceError{Provider: "ollama", Message: "empty response content"}
	}
	return content, appendExchange(history, req.Prompt, content), nil
}

func (s *OllamaService) EstimateCost(inputTokens, outputTokens int) float64 {
	return 0
}

func (s *OllamaService) CountTokens(text string) int {
	return estimateTokens(text)
}
