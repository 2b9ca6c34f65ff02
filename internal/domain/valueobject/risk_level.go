package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RiskLevel is an immutable value object representing the dropout risk classification.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "Low"}
	RiskLevelMedium = RiskLevel{value: "Medium"}
	RiskLevelHigh   = RiskLevel{value: "High"}
)

// Classification thresholds. Intervals are left-closed/right-open:
// [0, 35) Low, [35, 60) Medium, [60, 100] High.
var (
	mediumThreshold = decimal.NewFromInt(35)
	highThreshold   = decimal.NewFromInt(60)
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "Low":
		return RiskLevelLow, nil
	case "Medium":
		return RiskLevelMedium, nil
	case "High":
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the appropriate RiskLevel from a dropout score (0-100).
func RiskLevelFromScore(score decimal.Decimal) RiskLevel {
	switch {
	case score.GreaterThanOrEqual(highThreshold):
		return RiskLevelHigh
	case score.GreaterThanOrEqual(mediumThreshold):
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
