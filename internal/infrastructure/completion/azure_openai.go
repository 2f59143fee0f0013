// Package completion talks to a hosted text-completion model on Azure OpenAI.
package completion

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/healthhabits/habit-tracker/internal/core/domain"
)

const (
	serviceName = "completion"

	DefaultDeployment = "gpt-35-turbo-instruct"
	DefaultAPIVersion = "2024-04-01-preview"
	defaultTimeout    = 30 * time.Second
)

// Sampling parameters are fixed for every request.
const (
	maxTokens        = 512
	temperature      = 0.5
	topP             = 1
	frequencyPenalty = 0
	presencePenalty  = 0
)

var errNoChoices = errors.New("completion returned no choices")

// Config identifies the Azure OpenAI resource and deployment.
type Config struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Timeout    time.Duration
}

// Client implements ports.CompletionClient on the legacy completions API.
type Client struct {
	api        *openai.Client
	deployment string
}

func NewClient(cfg Config) *Client {
	if cfg.Deployment == "" {
		cfg.Deployment = DefaultDeployment
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	oc := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	oc.APIVersion = cfg.APIVersion
	oc.AzureModelMapperFunc = func(string) string { return cfg.Deployment }
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{api: openai.NewClientWithConfig(oc), deployment: cfg.Deployment}
}

// Complete returns the first choice's text exactly as generated. Any failure
// is reported as a domain.UpstreamError; there is no retry.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateCompletion(ctx, openai.CompletionRequest{
		Model:            c.deployment,
		Prompt:           prompt,
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		TopP:             topP,
		FrequencyPenalty: frequencyPenalty,
		PresencePenalty:  presencePenalty,
	})
	if err != nil {
		return "", domain.NewUpstreamError(serviceName, err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewUpstreamError(serviceName, errNoChoices)
	}
	return resp.Choices[0].Text, nil
}
