//go:build integration

package e2e

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/light-bringer/carcat-service/internal/app/catalog/usecases/upload_cars"
)

var uploadHeader = []string{
	"registration_number", "car_code", "title", "brand", "model", "year", "price", "km",
	"fuel", "transmission", "city", "highlights", "reasons_to_buy",
}

// ListingBuilder builds one row of a dealer upload with a fluent interface.
type ListingBuilder struct {
	values map[string]string
}

// NewListingBuilder creates a builder with default values.
func NewListingBuilder(registration string) *ListingBuilder {
	return &ListingBuilder{values: map[string]string{
		"registration_number": registration,
		"title":               "Test Car",
		"brand":               "Honda",
		"model":               "City",
		"year":                "2021",
		"price":               "650000",
		"km":                  "25000",
		"fuel":                "petrol",
		"transmission":        "manual",
		"city":                "Pune",
	}}
}

// WithCode sets the car code
func (b *ListingBuilder) WithCode(code string) *ListingBuilder {
	b.values["car_code"] = code
	return b
}

// WithTitle sets the listing title
func (b *ListingBuilder) WithTitle(title string) *ListingBuilder {
	b.values["title"] = title
	return b
}

// WithPrice sets the asking price
func (b *ListingBuilder) WithPrice(price string) *ListingBuilder {
	b.values["price"] = price
	return b
}

// WithHighlights sets the inline highlights
func (b *ListingBuilder) WithHighlights(highlights ...string) *ListingBuilder {
	b.values["highlights"] = strings.Join(highlights, "|")
	return b
}

// WithReason adds a title::description reason
func (b *ListingBuilder) WithReason(title, description string) *ListingBuilder {
	reason := title + "::" + description
	if prev := b.values["reasons_to_buy"]; prev != "" {
		reason = prev + "||" + reason
	}
	b.values["reasons_to_buy"] = reason
	return b
}

// BuildUpload renders listings as one dealer's upload request.
func BuildUpload(dealerID string, listings ...*ListingBuilder) *upload_cars.Request {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(uploadHeader)
	for _, l := range listings {
		record := make([]string, len(uploadHeader))
		for i, col := range uploadHeader {
			record[i] = l.values[col]
		}
		_ = w.Write(record)
	}
	w.Flush()

	return &upload_cars.Request{DealerID: dealerID, File: &buf}
}
