package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InspectionSection is a master taxonomy section. Position is its display order.
type InspectionSection struct {
	Key         string
	Title       string
	Description string
	Position    int64
	Subsections []InspectionSubsection
}

// InspectionSubsection belongs to a section and is ordered by (SortOrder, Key).
type InspectionSubsection struct {
	SectionKey string
	Key        string
	Title      string
	SortOrder  int64
	Remarks    string
}

// InspectionItem is a per-car check within a subsection.
type InspectionItem struct {
	SectionKey    string
	SubsectionKey string
	Name          string
	Status        ItemStatus
	Remarks       string
}

// SectionScore is a car's score for one inspection section.
type SectionScore struct {
	SectionKey string
	Score      float64
	Rating     Rating
	Status     string
	Remarks    string
}

// SubsectionRemark is a car's status and remarks for one subsection.
type SubsectionRemark struct {
	SectionKey    string
	SubsectionKey string
	Status        string
	Remarks       string
}

// ParseScore parses a section score in [0, 10] with at most one decimal.
func ParseScore(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if _, frac, ok := strings.Cut(s, "."); ok && len(frac) > 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 10 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, s)
	}
	return v, nil
}
