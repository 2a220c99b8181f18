package web

import (
	"time"

	"github.com/BerylCAtieno/pvf-customer-form/internal/form"
	"github.com/BerylCAtieno/pvf-customer-form/internal/models"
)

// API types
type EditFieldRequest struct {
	Value *string `json:"value" binding:"required"`
}

type StateResponse struct {
	State     form.State `json:"state"`
	Timestamp string     `json:"timestamp"`
}

type ErrorResponse struct {
	Error string      `json:"error"`
	State *form.State `json:"state,omitempty"`
}

// Page types
type FieldView struct {
	form.Field
	Value string
}

type SectionView struct {
	Title  string
	Fields []FieldView
}

type InsightView struct {
	models.Insight
	Accent string
}

type PageView struct {
	Header     FieldView
	Sections   []SectionView
	Insights   []InsightView
	Notice     string
	Filling    bool
	Analyzing  bool
	CanAnalyze bool
}

func newPageView(s form.State) PageView {
	field := func(f form.Field) FieldView {
		v, _ := s.Profile.Field(f.Name)
		return FieldView{Field: f, Value: v}
	}

	page := PageView{
		Header:     field(form.HeaderField),
		Notice:     s.Notice,
		Filling:    s.SmartFilling,
		Analyzing:  s.Analyzing,
		CanAnalyze: s.CanAnalyze(),
	}
	for _, section := range form.Sections() {
		sv := SectionView{Title: section.Title}
		for _, f := range section.Fields {
			sv.Fields = append(sv.Fields, field(f))
		}
		page.Sections = append(page.Sections, sv)
	}
	for _, in := range s.Insights {
		page.Insights = append(page.Insights, InsightView{Insight: in, Accent: accentFor(in.Type)})
	}
	return page
}

func accentFor(t models.InsightType) string {
	switch t {
	case models.InsightOpportunity:
		return "green"
	case models.InsightRisk:
		return "red"
	default:
		return "blue"
	}
}

func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
