package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BerylCAtieno/pvf-customer-form/internal/models"
)

func TestLayoutCoversEveryField(t *testing.T) {
	seen := []string{HeaderField.Name}
	for _, section := range Sections() {
		for _, f := range section.Fields {
			seen = append(seen, f.Name)
		}
	}

	assert.ElementsMatch(t, models.FieldNames, seen)
}

func TestFirstTimeCustomerChoices(t *testing.T) {
	var choices []SelectOption
	for _, section := range Sections() {
		for _, f := range section.Fields {
			if f.Name == "isFirstTimeCustomer" {
				choices = f.Options
			}
		}
	}

	assert.Equal(t, []SelectOption{
		{Value: string(models.Yes), Label: "Yes (Y)"},
		{Value: string(models.No), Label: "No (N)"},
	}, choices)

	// Controller options live alongside the select choices.
	var opt Option = WithClock(func() time.Time { return fixedNow })
	c := NewController(&fakeGateway{}, nil, opt)
	assert.Equal(t, "2025-06-30", c.Snapshot().Profile.CurrentDate)
}
