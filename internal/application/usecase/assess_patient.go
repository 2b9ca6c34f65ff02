package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careops/dropout-service/internal/application/dto"
	"github.com/careops/dropout-service/internal/domain/model"
	"github.com/careops/dropout-service/internal/domain/port"
	"github.com/careops/dropout-service/internal/domain/service"
)

// AssessPatient is the use case for scoring a patient's silent dropout risk.
type AssessPatient struct {
	publisher port.EventPublisher
	scorer    service.Scorer
}

// NewAssessPatient creates a new AssessPatient use case.
func NewAssessPatient(publisher port.EventPublisher, scorer service.Scorer) *AssessPatient {
	return &AssessPatient{
		publisher: publisher,
		scorer:    scorer,
	}
}

// Execute performs dropout scoring, classifies the risk level, and publishes
// domain events. Assessments are ephemeral; nothing is persisted.
func (uc *AssessPatient) Execute(ctx context.Context, req dto.AssessPatientRequest) (dto.AssessmentResponse, error) {
	patientID := req.PatientID
	if patientID == uuid.Nil {
		patientID = uuid.New()
	}

	// 1. Create the assessment aggregate (validates input domains).
	assessment, err := model.NewPatientAssessment(
		patientID,
		req.LateFollowDays,
		req.RefillDelayDays,
		req.DaysSinceLastContact,
		float64(req.MissedLabTests),
		req.ExpectedVisitGapDays,
		float64(req.TeamCalls),
		req.Replied,
		req.Metadata,
	)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	// 2. Run dropout scoring via the domain service.
	output := uc.scorer.Score(service.PatientSignals{
		LateFollowDays:       req.LateFollowDays,
		RefillDelayDays:      req.RefillDelayDays,
		DaysSinceLastContact: req.DaysSinceLastContact,
		MissedLabTests:       float64(req.MissedLabTests),
		ExpectedVisitGapDays: req.ExpectedVisitGapDays,
		TeamCalls:            float64(req.TeamCalls),
		Replied:              req.Replied,
	})

	// 3. Apply the score to the assessment (this determines the risk level).
	if err := assessment.Assess(output.Score, output.Signals); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to assess patient: %w", err)
	}

	// 4. Publish domain events.
	events := assessment.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.FromModel(assessment), nil
}
