package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/careops/dropout-service/internal/domain/event"
	"github.com/careops/dropout-service/internal/domain/valueobject"
)

var maxScore = decimal.NewFromInt(100)

// PatientAssessment is the aggregate root for silent dropout risk assessments.
// Assessments are ephemeral: computed fresh per request and never persisted.
type PatientAssessment struct {
	id                   uuid.UUID
	patientID            uuid.UUID
	lateFollowDays       float64
	refillDelayDays      float64
	daysSinceLastContact float64
	missedLabTests       float64
	expectedVisitGapDays float64
	teamCalls            float64
	replied              bool
	metadata             map[string]string
	dropoutScore         decimal.Decimal
	riskLevel            valueobject.RiskLevel
	riskSignals          []string
	assessedAt           time.Time
	createdAt            time.Time
	domainEvents         []event.DomainEvent
}

// NewPatientAssessment creates a new assessment for an incoming set of patient
// engagement signals. All numeric signals must be non-negative; the assessment
// starts unscored, call Assess() to apply a score.
func NewPatientAssessment(
	patientID uuid.UUID,
	lateFollowDays float64,
	refillDelayDays float64,
	daysSinceLastContact float64,
	missedLabTests float64,
	expectedVisitGapDays float64,
	teamCalls float64,
	replied bool,
	metadata map[string]string,
) (*PatientAssessment, error) {
	if patientID == uuid.Nil {
		return nil, fmt.Errorf("patient ID is required")
	}
	if lateFollowDays < 0 {
		return nil, fmt.Errorf("late follow days must be non-negative")
	}
	if refillDelayDays < 0 {
		return nil, fmt.Errorf("refill delay days must be non-negative")
	}
	if daysSinceLastContact < 0 {
		return nil, fmt.Errorf("days since last contact must be non-negative")
	}
	if missedLabTests < 0 {
		return nil, fmt.Errorf("missed lab tests must be non-negative")
	}
	if expectedVisitGapDays < 0 {
		return nil, fmt.Errorf("expected visit gap days must be non-negative")
	}
	if teamCalls < 0 {
		return nil, fmt.Errorf("team calls must be non-negative")
	}

	return &PatientAssessment{
		id:                   uuid.New(),
		patientID:            patientID,
		lateFollowDays:       lateFollowDays,
		refillDelayDays:      refillDelayDays,
		daysSinceLastContact: daysSinceLastContact,
		missedLabTests:       missedLabTests,
		expectedVisitGapDays: expectedVisitGapDays,
		teamCalls:            teamCalls,
		replied:              replied,
		metadata:             metadata,
		riskLevel:            valueobject.RiskLevelLow,
		riskSignals:          make([]string, 0),
		createdAt:            time.Now().UTC(),
	}, nil
}

// Assess applies a dropout score and signal tags to the assessment, deriving
// the risk level. The risk level is always derived from the score here and
// never set independently. This is the core domain operation.
func (a *PatientAssessment) Assess(dropoutScore decimal.Decimal, signals []string) error {
	if dropoutScore.IsNegative() || dropoutScore.GreaterThan(maxScore) {
		return fmt.Errorf("dropout score must be between 0 and 100, got %s", dropoutScore)
	}

	a.dropoutScore = dropoutScore
	a.riskSignals = signals
	a.riskLevel = valueobject.RiskLevelFromScore(dropoutScore)
	a.assessedAt = time.Now().UTC()

	a.domainEvents = append(a.domainEvents, event.NewAssessmentCompleted(
		a.id, a.patientID,
		a.dropoutScore.StringFixed(2), a.riskLevel.String(),
		a.riskSignals, a.assessedAt,
	))

	if a.riskLevel.Equal(valueobject.RiskLevelHigh) {
		a.domainEvents = append(a.domainEvents, event.NewHighRiskDetected(
			a.id, a.patientID,
			a.dropoutScore.StringFixed(2),
			a.riskSignals, a.assessedAt,
		))
	}

	return nil
}

// --- Accessors ---

func (a *PatientAssessment) ID() uuid.UUID                    { return a.id }
func (a *PatientAssessment) PatientID() uuid.UUID             { return a.patientID }
func (a *PatientAssessment) LateFollowDays() float64          { return a.lateFollowDays }
func (a *PatientAssessment) RefillDelayDays() float64         { return a.refillDelayDays }
func (a *PatientAssessment) DaysSinceLastContact() float64    { return a.daysSinceLastContact }
func (a *PatientAssessment) MissedLabTests() float64          { return a.missedLabTests }
func (a *PatientAssessment) ExpectedVisitGapDays() float64    { return a.expectedVisitGapDays }
func (a *PatientAssessment) TeamCalls() float64               { return a.teamCalls }
func (a *PatientAssessment) Replied() bool                    { return a.replied }
func (a *PatientAssessment) Metadata() map[string]string      { return a.metadata }
func (a *PatientAssessment) DropoutScore() decimal.Decimal    { return a.dropoutScore }
func (a *PatientAssessment) RiskLevel() valueobject.RiskLevel { return a.riskLevel }
func (a *PatientAssessment) RiskSignals() []string            { return a.riskSignals }
func (a *PatientAssessment) AssessedAt() time.Time            { return a.assessedAt }
func (a *PatientAssessment) CreatedAt() time.Time             { return a.createdAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *PatientAssessment) DomainEvents() []event.DomainEvent {
	evts := a.domainEvents
	a.domainEvents = make([]event.DomainEvent, 0)
	return evts
}
