package models

// InsightType tags an insight card.
type InsightType string

const (
	InsightOpportunity InsightType = "opportunity"
	InsightRisk        InsightType = "risk"
	InsightNeutral     InsightType = "neutral"
)

// Insight is one AI-produced observation about a CustomerProfile.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}
