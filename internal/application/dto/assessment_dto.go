package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/careops/dropout-service/internal/domain/model"
)

// AssessPatientRequest is the input DTO for the AssessPatient use case.
// PatientID is optional; a new ID is generated when absent. Metadata carries
// intake fields that do not participate in scoring (age, gender, refill
// source).
type AssessPatientRequest struct {
	PatientID            uuid.UUID         `json:"patient_id"`
	LateFollowDays       float64           `json:"late_follow_days"`
	RefillDelayDays      float64           `json:"refill_delay_days"`
	DaysSinceLastContact float64           `json:"days_since_last_contact"`
	MissedLabTests       int               `json:"missed_lab_tests"`
	ExpectedVisitGapDays float64           `json:"expected_visit_gap_days"`
	TeamCalls            int               `json:"team_calls"`
	Replied              bool              `json:"replied"`
	Metadata             map[string]string `json:"metadata"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	PatientID    uuid.UUID `json:"patient_id"`
	DropoutScore float64   `json:"dropout_score"`
	RiskLevel    string    `json:"risk_level"`
	RiskSignals  []string  `json:"risk_signals"`
	AssessedAt   time.Time `json:"assessed_at"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.PatientAssessment) AssessmentResponse {
	return AssessmentResponse{
		AssessmentID: a.ID(),
		PatientID:    a.PatientID(),
		DropoutScore: a.DropoutScore().InexactFloat64(),
		RiskLevel:    a.RiskLevel().String(),
		RiskSignals:  a.RiskSignals(),
		AssessedAt:   a.AssessedAt(),
	}
}
