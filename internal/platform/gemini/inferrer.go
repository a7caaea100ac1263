// Package gemini implements the inference boundary on top of Google's
// Gemini API. Each operation sends one prompt with a tightly constrained
// output grammar and parses the response strictly; anything the parser
// does not recognize becomes an absent result rather than an error.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/phrazzld/todoai-api/internal/config"
	"github.com/phrazzld/todoai-api/internal/domain"
	"github.com/phrazzld/todoai-api/internal/inference"
	"google.golang.org/genai"
)

// systemInstruction anchors every request. The response is consumed by a
// machine parser, so the model is told to answer with the bare value only.
const systemInstruction = "You are part of a todo application. " +
	"Your responses are parsed by a program, not read by a person. " +
	"Respond with exactly the requested value and no extra text."

// maxOutputTokens caps each response; every expected answer is a single
// short line.
const maxOutputTokens = 64

// GeminiInferrer implements the inference.Inferrer interface using
// Google's Gemini API to derive todo attributes from description text.
type GeminiInferrer struct {
	logger *slog.Logger
	client *genai.Client
	model  string

	maxRetries int
	retryDelay time.Duration
}

// Ensure GeminiInferrer implements the inference boundary.
var _ inference.Inferrer = (*GeminiInferrer)(nil)

// NewGeminiInferrer creates a new GeminiInferrer from the LLM configuration.
// Returns ErrInvalidConfig if the API key or model name is missing, or an
// error if the client cannot be constructed.
func NewGeminiInferrer(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiInferrer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	retryDelay := cfg.RetryDelay()
	if retryDelay < time.Second {
		retryDelay = 2 * time.Second
	}

	return &GeminiInferrer{
		logger:     logger.With(slog.String("component", "gemini_inferrer")),
		client:     client,
		model:      cfg.ModelName,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}, nil
}

// InferTitle implements inference.Inferrer.
func (g *GeminiInferrer) InferTitle(ctx context.Context, description string) (string, bool) {
	prompt := fmt.Sprintf(
		"You are given the description of a task and need to infer its title.\n"+
			"Respond with the title only, on a single line.\n\n"+
			"Description: %q",
		description,
	)

	text, err := g.sendPrompt(ctx, prompt)
	if err != nil {
		g.absorb(ctx, "title", err)
		return "", false
	}

	title, err := parseSingleLine(text)
	if err != nil {
		g.absorb(ctx, "title", err)
		return "", false
	}

	return title, true
}

// InferPriority implements inference.Inferrer.
func (g *GeminiInferrer) InferPriority(ctx context.Context, description string) (domain.Priority, bool) {
	prompt := fmt.Sprintf(
		"You are given the description of a task and need to infer its priority.\n"+
			"The options are: Low, Medium, High.\n"+
			"Respond with exactly one of them and nothing else.\n\n"+
			"Description: %q",
		description,
	)

	text, err := g.sendPrompt(ctx, prompt)
	if err != nil {
		g.absorb(ctx, "priority", err)
		return "", false
	}

	priority, err := domain.ParsePriority(text)
	if err != nil {
		g.absorb(ctx, "priority", fmt.Errorf("%w: %v", ErrInvalidResponse, err))
		return "", false
	}

	return priority, true
}

// InferDeadline implements inference.Inferrer.
func (g *GeminiInferrer) InferDeadline(ctx context.Context, description string) (time.Time, bool) {
	prompt := fmt.Sprintf(
		"You are given the description of a task and need to infer its deadline.\n"+
			"Estimate how long the task will take from today, add a few days of"+
			" slack, and respond with the resulting date.\n"+
			"Today's date is %s.\n"+
			"Respond with a date in the format YYYY-MM-DD and nothing else.\n\n"+
			"Description: %q",
		time.Now().UTC().Format(dateLayout),
		description,
	)

	text, err := g.sendPrompt(ctx, prompt)
	if err != nil {
		g.absorb(ctx, "deadline", err)
		return time.Time{}, false
	}

	deadline, err := parseDate(text)
	if err != nil {
		g.absorb(ctx, "deadline", err)
		return time.Time{}, false
	}

	return deadline, true
}

// InferTags implements inference.Inferrer.
func (g *GeminiInferrer) InferTags(ctx context.Context, description string) (string, bool) {
	prompt := fmt.Sprintf(
		"You are given the description of a task and need to infer a tag"+
			" classifying it, e.g. \"errand\" or \"work\".\n"+
			"Respond with the tag only and nothing else.\n\n"+
			"Description: %q",
		description,
	)

	text, err := g.sendPrompt(ctx, prompt)
	if err != nil {
		g.absorb(ctx, "tags", err)
		return "", false
	}

	tags, err := parseSingleLine(text)
	if err != nil {
		g.absorb(ctx, "tags", err)
		return "", false
	}

	return tags, true
}

// absorb logs a failed inference attempt. The boundary is advisory, so
// this is the end of the error's journey.
func (g *GeminiInferrer) absorb(ctx context.Context, attribute string, err error) {
	g.logger.WarnContext(ctx, "inference attempt absorbed",
		slog.String("attribute", attribute),
		slog.String("error", err.Error()))
}

// sendPrompt makes a call to the Gemini API with exponential backoff retry
// logic. Transport-level failures are retried up to maxRetries times with
// jittered exponential delays; permanent conditions (blocked content,
// empty responses) are returned immediately.
func (g *GeminiInferrer) sendPrompt(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyDescription
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		MaxOutputTokens:   maxOutputTokens,
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)

		switch {
		case err != nil:
			// Transport-level failure; candidate for retry below.
		case resp == nil || len(resp.Candidates) == 0:
			return "", fmt.Errorf("%w: no content generated", ErrInvalidResponse)
		case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
			return "", fmt.Errorf("%w: safety finish reason", ErrContentBlocked)
		default:
			text := resp.Text()
			if text == "" {
				return "", fmt.Errorf("%w: empty response text", ErrInvalidResponse)
			}
			return text, nil
		}

		g.logger.WarnContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", g.maxRetries+1),
			slog.String("error", err.Error()))

		if attempt >= g.maxRetries {
			return "", fmt.Errorf("%w: exceeded %d attempts: %v",
				ErrTransientFailure, g.maxRetries+1, err)
		}

		// Exponential backoff with jitter:
		// delay = retryDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoff := float64(g.retryDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrTransientFailure, ctx.Err())
		}
	}
}
