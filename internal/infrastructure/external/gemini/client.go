package gemini

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/external"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

const engineName = "gemini"

// ContentGenerator is the part of the genai models API the client needs
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates text with Google Gemini
type Client struct {
	apiKey string
	model  string
	logger *zap.Logger

	mu     sync.Mutex
	models ContentGenerator
}

// NewClient creates a Gemini client. The SDK client is created on first
// use so a missing key surfaces as an authentication error at call time.
func NewClient(cfg *config.GeminiConfig, logger *zap.Logger) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{
		apiKey: cfg.APIKey,
		model:  model,
		logger: logger,
	}
}

// NewClientWithGenerator creates a client backed by an existing generator
func NewClientWithGenerator(models ContentGenerator, model string, logger *zap.Logger) *Client {
	return &Client{
		apiKey: "injected",
		model:  model,
		logger: logger,
		models: models,
	}
}

// Name identifies the engine in logs
func (c *Client) Name() string {
	return engineName
}

// Generate sends the prompt and concatenates the text parts of the first
// candidate
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	models, err := c.generator(ctx)
	if err != nil {
		return "", err
	}

	result, err := models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("⚠️ Gemini generation failed", zap.String("model", c.model), zap.Error(err))
		}
		return "", classifyError(err)
	}

	text := responseText(result)
	if text == "" {
		return "", external.Unavailable(engineName, errors.New("empty response"))
	}
	return text, nil
}

// classifyError prefers the HTTP status of a genai.APIError over the message
func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return external.StatusError(engineName, apiErr.Code, []byte(apiErr.Message))
	}
	return external.ClassifySDKError(engineName, err)
}

func (c *Client) generator(ctx context.Context) (ContentGenerator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.models != nil {
		return c.models, nil
	}
	if c.apiKey == "" {
		return nil, external.MissingKey(engineName)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, external.ClassifySDKError(engineName, err)
	}
	c.models = client.Models
	return c.models, nil
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
