package profiler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/BerylCAtieno/pvf-customer-form/internal/models"
)

type fakeGenerator struct {
	text string
	err  error

	calls  int
	key    string
	prompt string
	schema *genai.Schema
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, apiKey, prompt string, schema *genai.Schema) (string, error) {
	f.calls++
	f.key = apiKey
	f.prompt = prompt
	f.schema = schema
	return f.text, f.err
}

func staticKey(k string) func() string { return func() string { return k } }

func TestGenerateMockProfile(t *testing.T) {
	gen := &fakeGenerator{text: `{
		"currentDate": "2024-05-01",
		"customerId": "1273",
		"lastName": "Hale",
		"firstName": "Doris",
		"address": "88 Cedar Ln",
		"city": "Boise",
		"state": "ID",
		"zip": "83702",
		"isFirstTimeCustomer": "N",
		"visitsBeforePurchasing": 3,
		"hearAboutSource": "Newspaper ad",
		"firstPurchaseDate": "2018-09-14",
		"avgYearlySpend": 2350.75,
		"monthlyStoreVisits": 2
	}`}
	client := NewGeminiClient(staticKey("k-1"), gen, nil)

	profile, err := client.GenerateMockProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.CustomerProfile{
		CurrentDate:            "2024-05-01",
		CustomerID:             "1273",
		LastName:               "Hale",
		FirstName:              "Doris",
		Address:                "88 Cedar Ln",
		City:                   "Boise",
		State:                  "ID",
		Zip:                    "83702",
		IsFirstTimeCustomer:    models.No,
		VisitsBeforePurchasing: "3",
		HearAboutSource:        "Newspaper ad",
		FirstPurchaseDate:      "2018-09-14",
		AvgYearlySpend:         "2350.75",
		MonthlyStoreVisits:     "2",
	}, profile)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "k-1", gen.key)
	assert.Contains(t, gen.prompt, "Pine Valley Furniture")
	assert.Equal(t, genai.TypeObject, gen.schema.Type)
}

func TestProfileSchemaMatchesRecord(t *testing.T) {
	schema := profileSchema()

	assert.Len(t, schema.Properties, len(models.FieldNames))
	for _, name := range models.FieldNames {
		assert.Contains(t, schema.Properties, name)
	}
	assert.Equal(t, []string{"Y", "N"}, schema.Properties["isFirstTimeCustomer"].Enum)
	assert.Equal(t, genai.TypeInteger, schema.Properties["visitsBeforePurchasing"].Type)
	assert.Equal(t, genai.TypeNumber, schema.Properties["avgYearlySpend"].Type)
}

func TestInsightsSchema(t *testing.T) {
	schema := insightsSchema()

	require.Equal(t, genai.TypeArray, schema.Type)
	require.NotNil(t, schema.Items)
	assert.Equal(t, []string{"opportunity", "risk", "neutral"}, schema.Items.Properties["type"].Enum)
	assert.Contains(t, schema.Items.Properties, "title")
	assert.Contains(t, schema.Items.Properties, "description")
}

func TestMissingKeyFailsBeforeNetwork(t *testing.T) {
	gen := &fakeGenerator{text: `{}`}
	client := NewGeminiClient(staticKey(""), gen, nil)

	_, err := client.GenerateMockProfile(context.Background())
	assert.ErrorIs(t, err, ErrAuth)

	_, err = client.AnalyzeProfile(context.Background(), models.CustomerProfile{LastName: "Smith"})
	assert.ErrorIs(t, err, ErrAuth)

	assert.Zero(t, gen.calls)
}

func TestGenerateMockProfileEmptyTextIsParseError(t *testing.T) {
	client := NewGeminiClient(staticKey("k"), &fakeGenerator{text: "  "}, nil)

	_, err := client.GenerateMockProfile(context.Background())
	assert.ErrorIs(t, err, ErrParse)
}

func TestGenerateMockProfileMalformed(t *testing.T) {
	client := NewGeminiClient(staticKey("k"), &fakeGenerator{text: `{"lastName": 12`}, nil)

	_, err := client.GenerateMockProfile(context.Background())
	assert.ErrorIs(t, err, ErrParse)
}

func TestTransportErrorsAreClassified(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"grpc unauthenticated", status.Error(codes.Unauthenticated, "no"), ErrAuth},
		{"grpc permission denied", status.Error(codes.PermissionDenied, "no"), ErrAuth},
		{"grpc bad key", status.Error(codes.InvalidArgument, "API key not valid. Please pass a valid API key."), ErrAuth},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), ErrServiceUnavailable},
		{"http forbidden", &googleapi.Error{Code: http.StatusForbidden}, ErrAuth},
		{"http 500", &googleapi.Error{Code: http.StatusInternalServerError}, ErrServiceUnavailable},
		{"plain", errors.New("connection reset"), ErrServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewGeminiClient(staticKey("k"), &fakeGenerator{err: tt.err}, nil)

			_, err := client.GenerateMockProfile(context.Background())
			assert.ErrorIs(t, err, tt.want)

			_, err = client.AnalyzeProfile(context.Background(), models.CustomerProfile{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAnalyzeProfile(t *testing.T) {
	gen := &fakeGenerator{text: `[
		{"type": "risk", "title": "Lapsed Visits", "description": "Visits dropped."},
		{"type": "opportunity", "title": "Bedroom Upsell", "description": "Recent sofa buyer."},
		{"type": "neutral", "title": "Steady Spend", "description": "Spend is flat."}
	]`}
	client := NewGeminiClient(staticKey("k"), gen, nil)
	profile := models.CustomerProfile{LastName: "Smith", AvgYearlySpend: "1200"}

	insights, err := client.AnalyzeProfile(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, []models.Insight{
		{Type: models.InsightRisk, Title: "Lapsed Visits", Description: "Visits dropped."},
		{Type: models.InsightOpportunity, Title: "Bedroom Upsell", Description: "Recent sofa buyer."},
		{Type: models.InsightNeutral, Title: "Steady Spend", Description: "Spend is flat."},
	}, insights)

	encoded, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(gen.prompt, "Profile: "+string(encoded)))
	assert.Contains(t, gen.prompt, "3 key insights")
	assert.Equal(t, genai.TypeArray, gen.schema.Type)
}

func TestAnalyzeProfileDoesNotTrimOrValidate(t *testing.T) {
	gen := &fakeGenerator{text: `[
		{"type": "risk", "title": "A", "description": "a"},
		{"type": "risk", "title": "A", "description": "a"},
		{"type": "odd", "title": "B", "description": "b"},
		{"type": "neutral", "title": "C", "description": "c"}
	]`}
	client := NewGeminiClient(staticKey("k"), gen, nil)

	insights, err := client.AnalyzeProfile(context.Background(), models.CustomerProfile{LastName: "X"})
	require.NoError(t, err)
	assert.Len(t, insights, 4)
	assert.Equal(t, models.InsightType("odd"), insights[2].Type)
}

func TestAnalyzeProfileEmptyTextIsSoftFailure(t *testing.T) {
	for _, text := range []string{"", "\n"} {
		client := NewGeminiClient(staticKey("k"), &fakeGenerator{text: text}, nil)

		insights, err := client.AnalyzeProfile(context.Background(), models.CustomerProfile{LastName: "X"})
		require.NoError(t, err)
		assert.NotNil(t, insights)
		assert.Empty(t, insights)
	}
}

func TestAnalyzeProfileMalformed(t *testing.T) {
	client := NewGeminiClient(staticKey("k"), &fakeGenerator{text: `{"type":"risk"}`}, nil)

	_, err := client.AnalyzeProfile(context.Background(), models.CustomerProfile{LastName: "X"})
	assert.ErrorIs(t, err, ErrParse)
}

func TestResponseText(t *testing.T) {
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`[{"type":`), genai.Text(`"risk"}]`)}},
		}},
	}
	assert.Equal(t, `[{"type":"risk"}]`, responseText(resp))
}
