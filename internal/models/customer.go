package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by every date field.
const DateLayout = "2006-01-02"

// YesNo holds the first-time-customer flag. Edits store the raw value, so
// anything other than Yes or No is possible.
type YesNo string

const (
	Yes YesNo = "Y"
	No  YesNo = "N"
)

// Numeric is the text form of a non-negative number, or empty when the field
// has not been filled in yet.
type Numeric string

// Float returns the parsed value. ok is false for empty or non-numeric text.
func (n Numeric) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// MarshalJSON emits a bare number only when the text is already one, so a
// value padded with spaces survives a round trip unchanged.
func (n Numeric) MarshalJSON() ([]byte, error) {
	s := string(n)
	if _, err := strconv.ParseFloat(s, 64); err == nil && json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	return json.Marshal(string(n))
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("numeric field: %w", err)
		}
		*n = Numeric(num.String())
	}
	return nil
}

// CustomerProfile is the single record edited by the form.
type CustomerProfile struct {
	CurrentDate string `json:"currentDate"`

	CustomerID string `json:"customerId"`
	LastName   string `json:"lastName"`
	FirstName  string `json:"firstName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`

	IsFirstTimeCustomer    YesNo   `json:"isFirstTimeCustomer"`
	VisitsBeforePurchasing Numeric `json:"visitsBeforePurchasing"`
	HearAboutSource        string  `json:"hearAboutSource"`
	FirstPurchaseDate      string  `json:"firstPurchaseDate"`
	AvgYearlySpend         Numeric `json:"avgYearlySpend"`
	MonthlyStoreVisits     Numeric `json:"monthlyStoreVisits"`
}

// FieldNames lists the JSON names of every profile field in form order.
var FieldNames = []string{
	"currentDate",
	"customerId",
	"lastName",
	"firstName",
	"address",
	"city",
	"state",
	"zip",
	"isFirstTimeCustomer",
	"visitsBeforePurchasing",
	"hearAboutSource",
	"firstPurchaseDate",
	"avgYearlySpend",
	"monthlyStoreVisits",
}

// DefaultProfile returns an empty profile dated today.
func DefaultProfile(now time.Time) CustomerProfile {
	return CustomerProfile{CurrentDate: now.Format(DateLayout)}
}

func (p *CustomerProfile) ref(name string) *string {
	switch name {
	case "currentDate":
		return &p.CurrentDate
	case "customerId":
		return &p.CustomerID
	case "lastName":
		return &p.LastName
	case "firstName":
		return &p.FirstName
	case "address":
		return &p.Address
	case "city":
		return &p.City
	case "state":
		return &p.State
	case "zip":
		return &p.Zip
	case "hearAboutSource":
		return &p.HearAboutSource
	case "firstPurchaseDate":
		return &p.FirstPurchaseDate
	}
	return nil
}

// Field returns the value of the field with the given JSON name.
func (p CustomerProfile) Field(name string) (string, bool) {
	switch name {
	case "isFirstTimeCustomer":
		return string(p.IsFirstTimeCustomer), true
	case "visitsBeforePurchasing":
		return string(p.VisitsBeforePurchasing), true
	case "avgYearlySpend":
		return string(p.AvgYearlySpend), true
	case "monthlyStoreVisits":
		return string(p.MonthlyStoreVisits), true
	}
	if ptr := p.ref(name); ptr != nil {
		return *ptr, true
	}
	return "", false
}

// SetField assigns value verbatim to the field with the given JSON name.
// It reports false when no such field exists.
func (p *CustomerProfile) SetField(name, value string) bool {
	switch name {
	case "isFirstTimeCustomer":
		p.IsFirstTimeCustomer = YesNo(value)
		return true
	case "visitsBeforePurchasing":
		p.VisitsBeforePurchasing = Numeric(value)
		return true
	case "avgYearlySpend":
		p.AvgYearlySpend = Numeric(value)
		return true
	case "monthlyStoreVisits":
		p.MonthlyStoreVisits = Numeric(value)
		return true
	}
	ptr := p.ref(name)
	if ptr == nil {
		return false
	}
	*ptr = value
	return true
}
