package domain

import (
	"fmt"
	"strings"
)

// AvailabilityStatus is the sale state of a car.
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityReserved  AvailabilityStatus = "reserved"
	AvailabilitySold      AvailabilityStatus = "sold"
	AvailabilityBlocked   AvailabilityStatus = "blocked"
)

// InsuranceType classifies a car's insurance cover.
type InsuranceType string

const (
	InsuranceComprehensive InsuranceType = "comprehensive"
	InsuranceThirdParty    InsuranceType = "third_party"
	InsuranceExpired       InsuranceType = "expired"
)

// DealerTier is the commercial tier of a dealer.
type DealerTier string

const (
	TierStandard DealerTier = "standard"
	TierPremium  DealerTier = "premium"
	TierVIP      DealerTier = "vip"
)

// FeatureStatus is the condition of a car feature.
type FeatureStatus string

const (
	FeatureFlawless   FeatureStatus = "flawless"
	FeatureLittleFlaw FeatureStatus = "little_flaw"
	FeatureDamaged    FeatureStatus = "damaged"
)

// ItemStatus is the outcome of a single inspection check.
type ItemStatus string

const (
	ItemFlawless ItemStatus = "flawless"
	ItemMinor    ItemStatus = "minor"
	ItemMajor    ItemStatus = "major"
)

// Rating grades an inspection section.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingFair      Rating = "fair"
	RatingPoor      Rating = "poor"
)

var (
	availabilityValues = []AvailabilityStatus{AvailabilityAvailable, AvailabilityReserved, AvailabilitySold, AvailabilityBlocked}
	insuranceValues    = []InsuranceType{InsuranceComprehensive, InsuranceThirdParty, InsuranceExpired}
	tierValues         = []DealerTier{TierStandard, TierPremium, TierVIP}
	featureValues      = []FeatureStatus{FeatureFlawless, FeatureLittleFlaw, FeatureDamaged}
	itemValues         = []ItemStatus{ItemFlawless, ItemMinor, ItemMajor}
	ratingValues       = []Rating{RatingExcellent, RatingGood, RatingFair, RatingPoor}
)

// parseEnum normalises s and matches it against allowed. Empty input yields def.
func parseEnum[T ~string](s string, def T, allowed []T) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def, nil
	}
	for _, v := range allowed {
		if string(v) == s {
			return v, nil
		}
	}
	return def, fmt.Errorf("%w: %q", ErrUnknownEnum, s)
}

// ParseAvailabilityStatus parses an availability status, defaulting to available.
func ParseAvailabilityStatus(s string) (AvailabilityStatus, error) {
	return parseEnum(s, AvailabilityAvailable, availabilityValues)
}

// ParseInsuranceType parses an insurance type, defaulting to comprehensive.
func ParseInsuranceType(s string) (InsuranceType, error) {
	return parseEnum(s, InsuranceComprehensive, insuranceValues)
}

// ParseDealerTier parses a dealer tier, defaulting to standard.
func ParseDealerTier(s string) (DealerTier, error) {
	return parseEnum(s, TierStandard, tierValues)
}

// ParseFeatureStatus parses a feature status, defaulting to flawless.
func ParseFeatureStatus(s string) (FeatureStatus, error) {
	return parseEnum(s, FeatureFlawless, featureValues)
}

// ParseItemStatus parses an inspection item status, defaulting to flawless.
func ParseItemStatus(s string) (ItemStatus, error) {
	return parseEnum(s, ItemFlawless, itemValues)
}

// ParseRating parses a section rating. A rating is required.
func ParseRating(s string) (Rating, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: empty rating", ErrUnknownEnum)
	}
	return parseEnum(s, "", ratingValues)
}
