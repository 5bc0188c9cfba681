package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"dealscout/internal/listing"
)

// FieldError records a raw field that could not be parsed. The field is
// rejected and left absent on the canonical listing: silently coercing
// a bad figure to zero would corrupt every downstream score.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %s: %q: %v", e.Field, e.Value, e.Err)
}

// Normalize maps one raw source record into the canonical listing
// shape. Numeric fields end up either populated or absent, never zero
// for unknown. Unparseable fields are reported and dropped; the record
// itself is still usable as long as it has a name.
func Normalize(source string, raw RawRecord) (listing.Listing, []FieldError) {
	var fieldErrs []FieldError

	money := func(field, value string) *float64 {
		v, err := parseMoney(value)
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{Field: field, Value: value, Err: err})
			return nil
		}
		return v
	}

	l := listing.Listing{
		Name:     strings.TrimSpace(raw.Name),
		Industry: strings.TrimSpace(raw.Industry),
		Location: listing.Location{
			Address: strings.TrimSpace(raw.Address),
			City:    strings.TrimSpace(raw.City),
			State:   strings.TrimSpace(raw.State),
			Zip:     strings.TrimSpace(raw.Zip),
			Country: strings.TrimSpace(raw.Country),
		},
		Contact: listing.ContactInfo{
			BrokerName:      strings.TrimSpace(raw.BrokerName),
			BrokerEmail:     strings.TrimSpace(raw.BrokerEmail),
			BrokerPhone:     strings.TrimSpace(raw.BrokerPhone),
			ListingURL:      strings.TrimSpace(raw.ListingURL),
			Description:     strings.TrimSpace(raw.Description),
			SellerFinancing: raw.SellerFinancing,
		},
		Sources: []string{listing.ProvenanceTag(source, strings.TrimSpace(raw.ExternalID))},
	}

	l.Financial.AskingPrice = money("asking_price", raw.AskingPrice)
	l.Financial.AnnualRevenue = money("annual_revenue", raw.AnnualRevenue)
	l.Financial.CashFlow = money("cash_flow", raw.CashFlow)
	l.Financial.MonthlyRevenue = money("monthly_revenue", raw.MonthlyRevenue)
	l.Financial.MonthlyProfit = money("monthly_profit", raw.MonthlyProfit)

	if v, err := parseFloat(raw.GrossProfitMargin); err != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "gross_profit_margin", Value: raw.GrossProfitMargin, Err: err})
	} else {
		l.Financial.GrossProfitMargin = v
	}

	if v, err := parseFloat(raw.AskingMultiple); err != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "asking_multiple", Value: raw.AskingMultiple, Err: err})
	} else {
		l.Financial.AskingMultiple = v
	}

	if v, err := parseYear(raw.EstablishedYear); err != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "established_year", Value: raw.EstablishedYear, Err: err})
	} else {
		l.Financial.EstablishedYear = v
	}

	if v, err := parseCount(raw.Employees); err != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "employees", Value: raw.Employees, Err: err})
	} else {
		l.Financial.Employees = v
	}

	if l.Financial.AskingPrice != nil {
		l.PriceRange = listing.PriceRangeBucket(*l.Financial.AskingPrice)
	}

	return l, fieldErrs
}

// parseMoney parses a source money figure ("$1,250,000", "250000",
// "1.2M"). Empty input means absent, not zero.
func parseMoney(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	multiplier := 1.0
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "M"):
		multiplier = 1_000_000
		s = s[:len(s)-1]
	case strings.HasSuffix(upper, "K"):
		multiplier = 1_000
		s = s[:len(s)-1]
	}

	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return nil, fmt.Errorf("no digits")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number")
	}
	if v < 0 {
		return nil, fmt.Errorf("negative amount")
	}

	v *= multiplier
	return &v, nil
}

func parseFloat(s string) (*float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number")
	}
	return &v, nil
}

func parseYear(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("not a year")
	}
	if v < 1800 || v > 2200 {
		return nil, fmt.Errorf("year out of range")
	}
	return &v, nil
}

func parseCount(s string) (*int, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("not a count")
	}
	return &v, nil
}
