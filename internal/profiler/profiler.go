package profiler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BerylCAtieno/pvf-customer-form/internal/logger"
	"github.com/BerylCAtieno/pvf-customer-form/internal/models"
)

const mockProfilePrompt = "Generate a realistic mock customer profile for a furniture store named Pine Valley Furniture. The customer should have a history of purchasing."

// GeminiClient is the stateless gateway used by the form: every call resolves
// the key, makes one request and decodes the reply.
type GeminiClient struct {
	apiKey func() string
	gen    ContentGenerator
	log    *logger.Logger
	tracer trace.Tracer
}

func NewGeminiClient(apiKey func() string, gen ContentGenerator, log *logger.Logger) *GeminiClient {
	if log == nil {
		log = logger.NewNop()
	}
	return &GeminiClient{
		apiKey: apiKey,
		gen:    gen,
		log:    log.With("component", "profiler"),
		tracer: otel.Tracer("github.com/BerylCAtieno/pvf-customer-form/internal/profiler"),
	}
}

// GenerateMockProfile asks the model for a complete fictitious customer.
func (g *GeminiClient) GenerateMockProfile(ctx context.Context) (models.CustomerProfile, error) {
	ctx, span := g.tracer.Start(ctx, "profiler.GenerateMockProfile")
	defer span.End()

	text, err := g.generate(ctx, mockProfilePrompt, profileSchema())
	if err != nil {
		recordError(span, err)
		return models.CustomerProfile{}, err
	}
	if strings.TrimSpace(text) == "" {
		err := fmt.Errorf("%w: no content generated", ErrParse)
		recordError(span, err)
		return models.CustomerProfile{}, err
	}

	var profile models.CustomerProfile
	if err := json.Unmarshal([]byte(text), &profile); err != nil {
		err = fmt.Errorf("%w: profile: %v", ErrParse, err)
		recordError(span, err)
		return models.CustomerProfile{}, err
	}

	g.log.Debug("mock profile generated", "customer_id", profile.CustomerID)
	return profile, nil
}

// AnalyzeProfile asks the model for insights about profile. An empty reply
// yields no insights rather than an error.
func (g *GeminiClient) AnalyzeProfile(ctx context.Context, profile models.CustomerProfile) ([]models.Insight, error) {
	ctx, span := g.tracer.Start(ctx, "profiler.AnalyzeProfile")
	defer span.End()

	prompt, err := buildAnalysisPrompt(profile)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	text, err := g.generate(ctx, prompt, insightsSchema())
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		g.log.Warn("analysis returned no text")
		return []models.Insight{}, nil
	}

	var insights []models.Insight
	if err := json.Unmarshal([]byte(text), &insights); err != nil {
		err = fmt.Errorf("%w: insights: %v", ErrParse, err)
		recordError(span, err)
		return nil, err
	}
	if insights == nil {
		insights = []models.Insight{}
	}

	span.SetAttributes(attribute.Int("insights.count", len(insights)))
	return insights, nil
}

func (g *GeminiClient) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	key := ""
	if g.apiKey != nil {
		key = g.apiKey()
	}
	if key == "" {
		return "", fmt.Errorf("%w: API key is not configured", ErrAuth)
	}

	text, err := g.gen.GenerateJSON(ctx, key, prompt, schema)
	if err != nil {
		return "", fmt.Errorf("%w: %v", classify(err), err)
	}
	return text, nil
}

func buildAnalysisPrompt(profile models.CustomerProfile) (string, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	return fmt.Sprintf(`Analyze this customer profile for Pine Valley Furniture and provide 3 key insights for the sales team.
Focus on Customer Lifetime Value, engagement opportunities, or retention risks.

Profile: %s`, data), nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
