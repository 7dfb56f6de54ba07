// Package ai generates lesson descriptions through the Gemini text API.
//
// GenerateLessonDescription never fails: a missing API key or any error
// along the way yields a fixed placeholder string.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/config"
	"github.com/simple-lms-api/internal/metrics"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	// DisabledMessage is returned when no API key is configured
	DisabledMessage = "AI description generation is disabled. Please configure the API Key."
	// FailureMessage is returned when generation fails for any reason
	FailureMessage = "Failed to generate AI description."
)

var errEmptyResponse = errors.New("empty response")

// Generator produces lesson descriptions
type Generator interface {
	GenerateLessonDescription(ctx context.Context, title string) string
}

// GeminiClient wraps the genai SDK with a request rate limit
type GeminiClient struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	metrics metrics.Recorder
	log     zerolog.Logger
}

// NewGeminiClient creates a GeminiClient from configuration.
// Without an API key the client stays disabled.
func NewGeminiClient(cfg config.AIConfig, recorder metrics.Recorder, log zerolog.Logger) *GeminiClient {
	l := log.With().Str("component", "ai").Logger()

	perMinute := cfg.RatePerMinute
	if perMinute < 1 {
		perMinute = 1
	}

	c := &GeminiClient{
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		metrics: recorder,
		log:     l,
	}

	if cfg.APIKey == "" {
		l.Warn().Msg("Gemini API key not found, AI features are disabled")
		return c
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.Endpoint,
		},
	})
	if err != nil {
		l.Error().Err(err).Msg("Failed to create Gemini client, AI features are disabled")
		return c
	}
	c.client = client

	return c
}

// lessonPrompt builds the prompt sent for a lesson title
func lessonPrompt(title string) string {
	return fmt.Sprintf("Generate a concise, engaging, one-paragraph lesson description for a lesson titled %q in a UI/UX design course.", title)
}

// GenerateLessonDescription returns a generated description or a placeholder
func (c *GeminiClient) GenerateLessonDescription(ctx context.Context, title string) (description string) {
	if c.client == nil {
		c.metrics.RecordGeneration("disabled")
		return DisabledMessage
	}

	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("Lesson description generation panicked")
			c.metrics.RecordGeneration("failed")
			description = FailureMessage
		}
	}()

	text, err := c.generate(ctx, lessonPrompt(title))
	if err != nil {
		c.log.Error().Err(err).Str("title", title).Msg("Error generating lesson description")
		c.metrics.RecordGeneration("failed")
		return FailureMessage
	}

	c.metrics.RecordGeneration("success")
	return text
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].Content != nil {
		for _, p := range resp.Candidates[0].Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			sb.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
