// Package gemini implements the sentiment text generator on the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pscheid92/huella/internal/domain"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// Config selects the API key and model. BaseURL overrides the API endpoint.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Generator sends a single-turn prompt to a Gemini model and returns the text answer.
type Generator struct {
	client *genai.Client
	model  string
}

func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Generator{client: client, model: cfg.Model}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}
