// Package oracle wraps the opaque text-completion model used for claim
// extraction and answer synthesis behind a minimal interface, the way
// hyperifyio-goresearch's internal/llm wraps go-openai's chat completion
// method rather than exposing the provider SDK directly to callers.
package oracle

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal text-completion capability the pipeline needs:
// submit a single-turn prompt, get back raw text. Everything above this
// package treats the underlying model as opaque — no prompt engineering
// details leak past this interface.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatClient adapts *openai.Client to Client using a single user-role
// message per call, mirroring how the original research agent issues one
// completion per extraction or synthesis step with no conversation state.
type ChatClient struct {
	inner *openai.Client
	model string
}

// NewChatClient builds a ChatClient against apiKey, targeting model (e.g.
// "gpt-4o-mini"). apiKey is read by the caller from the environment — this
// package never reads configuration directly.
func NewChatClient(apiKey, model string) *ChatClient {
	return &ChatClient{inner: openai.NewClient(apiKey), model: model}
}

// Complete issues one deterministic completion: temperature 0 and a narrow
// top-p, so claim extraction and answer synthesis are reproducible given the
// same prompt rather than subject to the provider's sampling defaults.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		TopP:        0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("oracle completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("oracle completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
