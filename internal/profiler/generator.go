package profiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/BerylCAtieno/pvf-customer-form/internal/config"
)

// ContentGenerator performs one schema-constrained generation and returns the
// raw reply text, which is empty when the model produced nothing.
type ContentGenerator interface {
	GenerateJSON(ctx context.Context, apiKey, prompt string, schema *genai.Schema) (string, error)
}

// GeminiGenerator talks to the Gemini API. A client is opened per call since
// the key is resolved per call.
type GeminiGenerator struct {
	cfg config.GeminiConfig
}

func NewGeminiGenerator(cfg config.GeminiConfig) *GeminiGenerator {
	return &GeminiGenerator{cfg: cfg}
}

func (g *GeminiGenerator) GenerateJSON(ctx context.Context, apiKey, prompt string, schema *genai.Schema) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.cfg.Model)
	model.SetTemperature(g.cfg.Temperature)
	model.SetTopP(g.cfg.TopP)
	model.SetMaxOutputTokens(g.cfg.MaxOutputTokens)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
