package profiler

import "github.com/google/generative-ai-go/genai"

func profileSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"currentDate": str(),
			"customerId":  str(),
			"lastName":    str(),
			"firstName":   str(),
			"address":     str(),
			"city":        str(),
			"state":       str(),
			"zip":         str(),
			"isFirstTimeCustomer": {
				Type:   genai.TypeString,
				Format: "enum",
				Enum:   []string{"Y", "N"},
			},
			"visitsBeforePurchasing": {Type: genai.TypeInteger},
			"hearAboutSource":        str(),
			"firstPurchaseDate":      str(),
			"avgYearlySpend":         {Type: genai.TypeNumber},
			"monthlyStoreVisits":     {Type: genai.TypeInteger},
		},
	}
}

func insightsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"type": {
					Type:   genai.TypeString,
					Format: "enum",
					Enum:   []string{"opportunity", "risk", "neutral"},
				},
				"title":       {Type: genai.TypeString},
				"description": {Type: genai.TypeString},
			},
		},
	}
}
