// Package ai is the boundary to the hosted text-generation API. A missing
// credential is a configuration error raised before any request; request
// failures and malformed replies come back as error values the caller can
// render, never as panics.
package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dentassist/dentsync/config"
	"github.com/dentassist/dentsync/pkg/circuitbreaker"
	"github.com/dentassist/dentsync/pkg/errors"
)

// ErrNotConfigured is returned when the assistant credential is absent. It is
// checked on every call path so the condition surfaces immediately, distinct
// from a runtime request failure.
var ErrNotConfigured = errors.Configuration("assistant API key is not configured")

type Client interface {
	// GenerateText returns the model's free-text reply.
	GenerateText(ctx context.Context, system, prompt string) (string, error)
	// GenerateJSON asks for a strict JSON reply and decodes it into out.
	GenerateJSON(ctx context.Context, system, prompt string, out interface{}) error
}

type client struct {
	api        *openai.Client
	model      string
	cb         *circuitbreaker.CircuitBreaker
	configured bool
}

func NewClient(cfg config.AssistantConfig) Client {
	c := &client{
		model:      cfg.Model,
		configured: cfg.APIKey != "",
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:             "assistant",
			FailureThreshold: 5,
			Cooldown:         30 * time.Second,
		}),
	}
	if c.configured {
		apiCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			apiCfg.BaseURL = cfg.BaseURL
		}
		c.api = openai.NewClientWithConfig(apiCfg)
	}
	return c
}

func (c *client) complete(ctx context.Context, system, prompt string, jsonMode bool) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var reply string
	err := c.cb.Execute(func() error {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty completion")
		}
		reply = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", errors.Upstream("assistant request failed", err)
	}
	return reply, nil
}

func (c *client) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	return c.complete(ctx, system, prompt, false)
}

func (c *client) GenerateJSON(ctx context.Context, system, prompt string, out interface{}) error {
	reply, err := c.complete(ctx, system, prompt, true)
	if err != nil {
		return err
	}
	return DecodeStructured(reply, out)
}
