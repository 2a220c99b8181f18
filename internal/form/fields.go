package form

// SelectOption is one choice of a select field.
type SelectOption struct {
	Value string
	Label string
}

// Field describes how one profile attribute is rendered.
type Field struct {
	Name        string
	Label       string
	Type        string // text, date, number or select
	Placeholder string
	MaxLength   int
	Uppercase   bool
	Options     []SelectOption
}

type Section struct {
	Title  string
	Fields []Field
}

// HeaderField is rendered in the form header rather than a section.
var HeaderField = Field{Name: "currentDate", Label: "Current Date", Type: "date"}

// Sections returns the form layout below the header.
func Sections() []Section {
	return []Section{
		{
			Title: "Customer Profile",
			Fields: []Field{
				{Name: "customerId", Label: "Customer ID", Type: "text", Placeholder: "e.g. 1273"},
				{Name: "lastName", Label: "Last Name", Type: "text"},
				{Name: "firstName", Label: "First Name", Type: "text"},
				{Name: "address", Label: "Address", Type: "text"},
				{Name: "city", Label: "City", Type: "text"},
				{Name: "state", Label: "State", Type: "text", MaxLength: 2, Uppercase: true},
				{Name: "zip", Label: "Zip", Type: "text"},
			},
		},
		{
			Title: "Purchasing/Media Profile",
			Fields: []Field{
				{Name: "isFirstTimeCustomer", Label: "First Time Customer?", Type: "select", Options: []SelectOption{
					{Value: "Y", Label: "Yes (Y)"},
					{Value: "N", Label: "No (N)"},
				}},
				{Name: "visitsBeforePurchasing", Label: "No. of Visits before Purchasing", Type: "number"},
				{Name: "hearAboutSource", Label: "How did you hear about PVF?", Type: "text"},
				{Name: "firstPurchaseDate", Label: "First Purchase Date", Type: "date"},
				{Name: "avgYearlySpend", Label: "Avg Yearly Amount Spent at PVF", Type: "number", Placeholder: "$"},
				{Name: "monthlyStoreVisits", Label: "No. of Monthly Store Visits", Type: "number"},
			},
		},
	}
}
