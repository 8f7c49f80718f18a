package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// EvalRequest is a single prompt/response exchange with the evaluator.
type EvalRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

// EvalResponse carries the evaluator's text output and token accounting.
type EvalResponse struct {
	Text  string
	Usage types.TokenUsage
}

// Client is the evaluator abstraction consumed by the skill matcher, the
// dimension scorer and the summary synthesizer.
type Client interface {
	// Evaluate sends one exchange to the evaluation service. Safe for
	// concurrent use.
	Evaluate(ctx context.Context, req EvalRequest) (*EvalResponse, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client on top of the Gemini API. A single instance
// is constructed at process start and shared by reference across all
// components; the concurrency semaphore is its only mutable state.
type GeminiClient struct {
	client  *genai.Client
	config  *Config
	logger  *zap.Logger
	sem     *semaphore.Weighted
	limiter *rate.Limiter
	sleep   sleepFunc
}

// NewGeminiClient creates the evaluator client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &AuthError{Message: "API key is required"}
	}
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	maxInFlight := config.MaxInFlight
	if maxInFlight < 1 {
		maxInFlight = 1
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &GeminiClient{
		client:  client,
		config:  config,
		logger:  logger,
		sem:     semaphore.NewWeighted(int64(maxInFlight)),
		limiter: limiter,
		sleep:   sleepWithContext,
	}, nil
}

// Evaluate dispatches one exchange, applying the input token budget, the
// concurrency cap and the retry policy.
func (c *GeminiClient) Evaluate(ctx context.Context, req EvalRequest) (*EvalResponse, error) {
	req = c.applyDefaults(c.applyBudget(req))

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return runWithRetry(ctx, c.config.Retry, c.sleep, func(ctx context.Context) (*EvalResponse, error) {
		return c.generateOnce(ctx, req)
	})
}

// applyBudget truncates over-budget input deterministically. The system
// prompt is reserved first; the user prompt absorbs the cut.
func (c *GeminiClient) applyBudget(req EvalRequest) EvalRequest {
	budget := c.config.TokenBudget
	if budget <= 0 {
		return req
	}

	remaining := budget - EstimateTokens(req.SystemPrompt)
	truncated, cut := truncateToTokens(req.UserPrompt, remaining)
	if cut {
		c.logger.Warn("evaluator input truncated to token budget",
			zap.Int("budget", budget),
			zap.Int("original_tokens", EstimateTokens(req.UserPrompt)),
			zap.Int("kept_tokens", EstimateTokens(truncated)))
		req.UserPrompt = truncated
	}
	return req
}

// applyDefaults fills sampling parameters from the client configuration when
// the caller left them unset. A zero temperature on the request means "use
// the configured default", not "sample greedily".
func (c *GeminiClient) applyDefaults(req EvalRequest) EvalRequest {
	if req.Temperature == 0 {
		req.Temperature = c.config.Temperature
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = c.config.MaxTokens
	}
	return req
}

// generateOnce performs a single attempt with the per-call timeout.
func (c *GeminiClient) generateOnce(ctx context.Context, req EvalRequest) (*EvalResponse, error) {
	if c.config.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.CallTimeout)
		defer cancel()
	}

	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(req.Temperature)
	model.SetMaxOutputTokens(int32(req.MaxTokens))

	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
	if err != nil {
		return nil, classifyError(err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	var usage types.TokenUsage
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	c.logger.Debug("evaluator call completed",
		zap.String("model", c.config.Model),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens))

	return &EvalResponse{Text: text, Usage: usage}, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
