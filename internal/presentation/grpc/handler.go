package grpc

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/careops/dropout-service/internal/application/dto"
	"github.com/careops/dropout-service/internal/application/usecase"
)

// Compile-time assertion that DropoutServiceHandler implements DropoutServiceServer.
var _ DropoutServiceServer = (*DropoutServiceHandler)(nil)

// DropoutServiceHandler implements the gRPC DropoutServiceServer interface.
type DropoutServiceHandler struct {
	UnimplementedDropoutServiceServer
	assessPatient *usecase.AssessPatient
	logger        *slog.Logger
}

// NewDropoutServiceHandler creates a new gRPC handler.
func NewDropoutServiceHandler(assessPatient *usecase.AssessPatient, logger *slog.Logger) *DropoutServiceHandler {
	return &DropoutServiceHandler{
		assessPatient: assessPatient,
		logger:        logger,
	}
}

// Proto-aligned request/response message types.

// AssessPatientRequest represents the proto AssessPatientRequest message.
type AssessPatientRequest struct {
	PatientID            string            `json:"patient_id"`
	LateFollowDays       float64           `json:"late_follow_days"`
	RefillDelayDays      float64           `json:"refill_delay_days"`
	DaysSinceLastContact float64           `json:"days_since_last_contact"`
	MissedLabTests       int32             `json:"missed_lab_tests"`
	ExpectedVisitGapDays float64           `json:"expected_visit_gap_days"`
	TeamCalls            int32             `json:"team_calls"`
	Replied              bool              `json:"replied"`
	Metadata             map[string]string `json:"metadata"`
}

// PatientAssessmentMsg represents the proto PatientAssessment message.
type PatientAssessmentMsg struct {
	AssessmentID string   `json:"assessment_id"`
	PatientID    string   `json:"patient_id"`
	DropoutScore float64  `json:"dropout_score"`
	RiskLevel    string   `json:"risk_level"`
	RiskSignals  []string `json:"risk_signals"`
	AssessedAt   string   `json:"assessed_at"`
}

// AssessPatientResponse represents the proto AssessPatientResponse message.
type AssessPatientResponse struct {
	Assessment *PatientAssessmentMsg `json:"assessment"`
}

// AssessPatient handles a patient dropout risk assessment request.
func (h *DropoutServiceHandler) AssessPatient(ctx context.Context, req *AssessPatientRequest) (*AssessPatientResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	patientID := uuid.Nil
	if req.PatientID != "" {
		var err error
		patientID, err = uuid.Parse(req.PatientID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid patient_id: %v", err)
		}
	}

	if req.LateFollowDays < 0 || req.RefillDelayDays < 0 || req.DaysSinceLastContact < 0 ||
		req.MissedLabTests < 0 || req.ExpectedVisitGapDays < 0 || req.TeamCalls < 0 {
		return nil, status.Error(codes.InvalidArgument, "signal values must be non-negative")
	}

	h.logger.Info("assessing patient",
		slog.String("patient_id", req.PatientID),
	)

	result, err := h.assessPatient.Execute(ctx, dto.AssessPatientRequest{
		PatientID:            patientID,
		LateFollowDays:       req.LateFollowDays,
		RefillDelayDays:      req.RefillDelayDays,
		DaysSinceLastContact: req.DaysSinceLastContact,
		MissedLabTests:       int(req.MissedLabTests),
		ExpectedVisitGapDays: req.ExpectedVisitGapDays,
		TeamCalls:            int(req.TeamCalls),
		Replied:              req.Replied,
		Metadata:             req.Metadata,
	})
	if err != nil {
		h.logger.Error("failed to assess patient",
			slog.String("patient_id", req.PatientID),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &AssessPatientResponse{
		Assessment: &PatientAssessmentMsg{
			AssessmentID: result.AssessmentID.String(),
			PatientID:    result.PatientID.String(),
			DropoutScore: result.DropoutScore,
			RiskLevel:    result.RiskLevel,
			RiskSignals:  result.RiskSignals,
			AssessedAt:   result.AssessedAt.Format(time.RFC3339),
		},
	}, nil
}
