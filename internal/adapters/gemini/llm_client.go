package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/llm-mail-agent/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClient implements the core.TextGenerator interface using Google Gemini
type GeminiClient struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &GeminiClient{
		client:        client,
		model:         model,
		modelName:     modelName,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Generate produces raw text for a prompt. Per-call maxTokens and
// temperature override the model defaults when positive.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	model := c.model
	if maxTokens > 0 || temperature > 0 {
		model = c.client.GenerativeModel(c.modelName)
		if maxTokens > 0 {
			model.SetMaxOutputTokens(int32(maxTokens))
		}
		if temperature > 0 {
			model.SetTemperature(temperature)
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(c.textProcessor.SanitizeUTF8(prompt)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	c.logger.Debug("Gemini completion", zap.String("model", c.modelName))

	return sb.String(), nil
}
