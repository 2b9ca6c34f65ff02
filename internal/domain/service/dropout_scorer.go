package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Normalization caps. A raw signal at or above its cap is considered
// maximally risky and normalizes to 1.0.
const (
	capLateFollowDays       = 50.0
	capRefillDelayDays      = 60.0
	capDaysSinceLastContact = 90.0
	capMissedLabTests       = 10.0
	capExpectedVisitGapDays = 60.0
	capTeamCalls            = 10.0
)

// Base weights sum to 0.90, leaving headroom for the engagement adjustment.
// Team calls are deliberately excluded from the base sum; they only modulate
// the engagement adjustment below.
const (
	weightLateFollow       = 0.25
	weightRefillDelay      = 0.25
	weightSinceLastContact = 0.20
	weightMissedLabTests   = 0.10
	weightExpectedVisitGap = 0.10
)

// Engagement adjustment constants. The asymmetry (0.10 vs 0.15 per-call
// multiplier) is an empirically chosen business rule: outreach that goes
// unanswered raises risk faster than answered outreach lowers it.
const (
	replyAdjustment       = 0.10
	repliedCallsWeight    = 0.10
	unansweredCallsWeight = 0.15
)

// Signal tags reported alongside the score. Explanatory only; they never
// feed back into the score itself.
const (
	SignalLateFollowUp       = "late_follow_up"
	SignalRefillDelay        = "refill_delay"
	SignalNoRecentContact    = "no_recent_contact"
	SignalMissedLabTests     = "missed_lab_tests"
	SignalLongVisitGap       = "long_visit_gap"
	SignalNoReply            = "no_reply"
	SignalUnansweredOutreach = "unanswered_outreach"
	SignalEngaged            = "engaged"
)

// PatientSignals contains the engagement metrics required for dropout scoring.
// All numeric fields are expected to be non-negative; the caller validates
// before invoking the scorer.
type PatientSignals struct {
	LateFollowDays       float64
	RefillDelayDays      float64
	DaysSinceLastContact float64
	MissedLabTests       float64
	ExpectedVisitGapDays float64
	TeamCalls            float64
	Replied              bool
}

// ScoreOutput contains the result of dropout scoring.
type ScoreOutput struct {
	Score   decimal.Decimal
	Signals []string
}

// DropoutScorer is a pure domain service that computes the silent dropout
// score from patient engagement signals using a fixed weighted formula.
// It holds no state and is safe for concurrent use.
type DropoutScorer struct{}

// NewDropoutScorer creates a new DropoutScorer instance.
func NewDropoutScorer() *DropoutScorer {
	return &DropoutScorer{}
}

// Normalize scales value linearly into [0, 1] relative to limit, saturating
// at 1.0 for any value at or above the limit. Caps are fixed internal
// constants; a non-positive limit is a programmer error and panics. Negative
// values are clamped to 0 defensively.
func Normalize(value, limit float64) float64 {
	if limit <= 0 {
		panic(fmt.Sprintf("normalize: cap must be positive, got %v", limit))
	}
	if value < 0 {
		value = 0
	}
	return math.Min(value/limit, 1.0)
}

// Score computes the dropout score (0.00-100.00, two decimal places) and the
// explanatory signal tags for the given patient signals.
//
// The algorithm: normalize each raw signal against its cap, combine the five
// risk drivers in a fixed weighted sum, apply the engagement adjustment based
// on whether the patient replied, scale to 0-100, clamp, and round to two
// decimals (half away from zero).
func (s *DropoutScorer) Score(signals PatientSignals) ScoreOutput {
	lateFollow := Normalize(signals.LateFollowDays, capLateFollowDays)
	refillDelay := Normalize(signals.RefillDelayDays, capRefillDelayDays)
	sinceLastContact := Normalize(signals.DaysSinceLastContact, capDaysSinceLastContact)
	missedLabs := Normalize(signals.MissedLabTests, capMissedLabTests)
	visitGap := Normalize(signals.ExpectedVisitGapDays, capExpectedVisitGapDays)
	teamCalls := Normalize(signals.TeamCalls, capTeamCalls)

	base := weightLateFollow*lateFollow +
		weightRefillDelay*refillDelay +
		weightSinceLastContact*sinceLastContact +
		weightMissedLabTests*missedLabs +
		weightExpectedVisitGap*visitGap

	tags := make([]string, 0)

	// A driver at or above half its cap is reported as an active signal.
	if lateFollow >= 0.5 {
		tags = append(tags, SignalLateFollowUp)
	}
	if refillDelay >= 0.5 {
		tags = append(tags, SignalRefillDelay)
	}
	if sinceLastContact >= 0.5 {
		tags = append(tags, SignalNoRecentContact)
	}
	if missedLabs >= 0.5 {
		tags = append(tags, SignalMissedLabTests)
	}
	if visitGap >= 0.5 {
		tags = append(tags, SignalLongVisitGap)
	}

	if signals.Replied {
		base -= replyAdjustment
		base -= repliedCallsWeight * teamCalls
		tags = append(tags, SignalEngaged)
	} else {
		base += replyAdjustment
		base += unansweredCallsWeight * teamCalls
		tags = append(tags, SignalNoReply)
		if signals.TeamCalls > 0 {
			tags = append(tags, SignalUnansweredOutreach)
		}
	}

	raw := base * 100
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}

	return ScoreOutput{
		Score:   decimal.NewFromFloat(raw).Round(2),
		Signals: tags,
	}
}
