package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeAssessmentCompleted is emitted when a dropout risk assessment finishes.
	EventTypeAssessmentCompleted = "dropout.assessment.completed"

	// EventTypeHighRiskDetected is emitted when a High risk level is detected.
	EventTypeHighRiskDetected = "dropout.high_risk.detected"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventType() string
	AggregateID() uuid.UUID
}

// AssessmentCompleted is published when a dropout risk assessment has been
// completed for a patient.
type AssessmentCompleted struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	PatientID    uuid.UUID `json:"patient_id"`
	DropoutScore string    `json:"dropout_score"`
	RiskLevel    string    `json:"risk_level"`
	Signals      []string  `json:"signals"`
	AssessedAt   time.Time `json:"assessed_at"`
}

// NewAssessmentCompleted creates an AssessmentCompleted event.
func NewAssessmentCompleted(
	assessmentID, patientID uuid.UUID,
	dropoutScore, riskLevel string,
	signals []string,
	assessedAt time.Time,
) AssessmentCompleted {
	return AssessmentCompleted{
		AssessmentID: assessmentID,
		PatientID:    patientID,
		DropoutScore: dropoutScore,
		RiskLevel:    riskLevel,
		Signals:      signals,
		AssessedAt:   assessedAt,
	}
}

// EventType returns the event type identifier.
func (e AssessmentCompleted) EventType() string {
	return EventTypeAssessmentCompleted
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e AssessmentCompleted) AggregateID() uuid.UUID {
	return e.AssessmentID
}

// HighRiskDetected is published when a patient is assessed with High risk
// level, so the care team can prioritize outreach.
type HighRiskDetected struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	PatientID    uuid.UUID `json:"patient_id"`
	DropoutScore string    `json:"dropout_score"`
	Signals      []string  `json:"signals"`
	DetectedAt   time.Time `json:"detected_at"`
}

// NewHighRiskDetected creates a HighRiskDetected event.
func NewHighRiskDetected(
	assessmentID, patientID uuid.UUID,
	dropoutScore string,
	signals []string,
	detectedAt time.Time,
) HighRiskDetected {
	return HighRiskDetected{
		AssessmentID: assessmentID,
		PatientID:    patientID,
		DropoutScore: dropoutScore,
		Signals:      signals,
		DetectedAt:   detectedAt,
	}
}

// EventType returns the event type identifier.
func (e HighRiskDetected) EventType() string {
	return EventTypeHighRiskDetected
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e HighRiskDetected) AggregateID() uuid.UUID {
	return e.AssessmentID
}
