package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrLLMNotConfigured is returned when no API key is set.
var ErrLLMNotConfigured = errors.New("llm service not configured")

// ChatMessage is one turn of a frontend conversation.
type ChatMessage struct {
	Type    string `json:"type"` // "user" or "assistant"
	Content string `json:"content"`
}

// HistoryWindow bounds the history forwarded upstream to the last n
// messages to stay inside token limits.
func HistoryWindow(history []ChatMessage, n int) []ChatMessage {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// LLM wraps an OpenAI-compatible chat completions endpoint.
type LLM struct {
	client openai.Client
	model  string
	ready  bool
}

func NewLLM(cfg *config.Config) *LLM {
	if cfg.LLMAPIKey == "" {
		return &LLM{}
	}
	client := openai.NewClient(
		option.WithAPIKey(cfg.LLMAPIKey),
		option.WithBaseURL(cfg.LLMBaseURL),
	)
	return &LLM{client: client, model: cfg.LLMModel, ready: true}
}

func (l *LLM) Ready() bool { return l.ready }

func (l *LLM) Model() string { return l.model }

// Complete sends the messages upstream and returns the completion text.
// An empty completion is an upstream error, never silently dropped.
func (l *LLM) Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, maxTokens int64) (string, error) {
	if !l.ready {
		return "", ErrLLMNotConfigured
	}

	completion, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       openai.ChatModel(l.model),
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("llm returned no choices")
	}

	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", errors.New("llm returned empty content")
	}
	return content, nil
}

// CompleteStructured enforces a JSON schema on the completion.
func (l *LLM) CompleteStructured(ctx context.Context, name string, schema interface{}, messages []openai.ChatCompletionMessageParamUnion, maxTokens int64) (string, error) {
	if !l.ready {
		return "", ErrLLMNotConfigured
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String("Structured data response"),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}

	completion, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       openai.ChatModel(l.model),
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(maxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("llm returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// GenerateSchema builds a strict JSON schema for structured outputs.
func GenerateSchema[T any]() interface{} {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
