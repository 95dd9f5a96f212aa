package message

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultEndpoint   = "https://generativelanguage.googleapis.com/"
	DefaultAPIVersion = "v1beta"
	DefaultModel      = "gemini-3-flash-preview"
	DefaultAPIKeyEnv  = "GEMINI_API_KEY"
)

// ErrMissingAPIKey is returned when no API key is configured
var ErrMissingAPIKey = errors.New("message API key not set")

// ErrEmptyResponse is returned when the service answers without text
var ErrEmptyResponse = errors.New("empty response from message API")

// Source generates text for a prompt
type Source interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient generates text with the Gemini API
type GeminiClient struct {
	client *genai.Client
	model  string
	err    error
}

// NewGeminiClient creates a client. The API key is read from the apiKeyEnv
// environment variable. Setup failures, a missing key included, are
// reported on each Generate call so callers fall back to fixed text.
func NewGeminiClient(ctx context.Context, httpClient *http.Client, endpoint, model, apiKeyEnv string) *GeminiClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	if apiKeyEnv == "" {
		apiKeyEnv = DefaultAPIKeyEnv
	}

	c := &GeminiClient{model: model}

	apiKey := strings.TrimSpace(os.Getenv(apiKeyEnv))
	if apiKey == "" {
		c.err = ErrMissingAPIKey
		return c
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    endpoint,
			APIVersion: DefaultAPIVersion,
		},
	})
	if err != nil {
		c.err = fmt.Errorf("failed to create gemini client: %w", err)
		return c
	}
	c.client = client
	return c
}

// Generate sends prompt and returns the trimmed text of the first candidate
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.err != nil {
		return "", c.err
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
