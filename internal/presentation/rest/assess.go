package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/careops/dropout-service/internal/application/dto"
	"github.com/careops/dropout-service/internal/application/usecase"
	"github.com/careops/dropout-service/internal/observability"
)

// AssessHandler exposes the dropout assessment use case over HTTP JSON.
type AssessHandler struct {
	assessPatient *usecase.AssessPatient
	metrics       *observability.AssessmentMetrics
	logger        *slog.Logger
}

// NewAssessHandler creates a new assessment handler. Metrics may be nil, in
// which case no counters are recorded.
func NewAssessHandler(assessPatient *usecase.AssessPatient, metrics *observability.AssessmentMetrics, logger *slog.Logger) *AssessHandler {
	return &AssessHandler{
		assessPatient: assessPatient,
		metrics:       metrics,
		logger:        logger,
	}
}

// assessRequest is the JSON request body. The seven signal fields are
// required; pointers distinguish absent fields from zero values.
type assessRequest struct {
	PatientID            string            `json:"patient_id"`
	LateFollowDays       *float64          `json:"late_follow_days"`
	RefillDelayDays      *float64          `json:"refill_delay_days"`
	DaysSinceLastContact *float64          `json:"days_since_last_contact"`
	MissedLabTests       *int              `json:"missed_lab_tests"`
	ExpectedVisitGapDays *float64          `json:"expected_visit_gap_days"`
	TeamCalls            *int              `json:"team_calls"`
	Replied              *bool             `json:"replied"`
	Metadata             map[string]string `json:"metadata"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes registers assessment endpoints on the provided ServeMux.
func (h *AssessHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/assessments", h.Assess)
}

// Assess handles a dropout risk assessment request. Malformed input is
// rejected before the scoring engine is invoked.
func (h *AssessHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if msg, ok := validate(&req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	patientID := uuid.Nil
	if req.PatientID != "" {
		var err error
		patientID, err = uuid.Parse(req.PatientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid patient_id")
			return
		}
	}

	result, err := h.assessPatient.Execute(r.Context(), dto.AssessPatientRequest{
		PatientID:            patientID,
		LateFollowDays:       *req.LateFollowDays,
		RefillDelayDays:      *req.RefillDelayDays,
		DaysSinceLastContact: *req.DaysSinceLastContact,
		MissedLabTests:       *req.MissedLabTests,
		ExpectedVisitGapDays: *req.ExpectedVisitGapDays,
		TeamCalls:            *req.TeamCalls,
		Replied:              *req.Replied,
		Metadata:             req.Metadata,
	})
	if err != nil {
		h.logger.Error("failed to assess patient", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordAssessment(r.Context(), result.RiskLevel)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// validate checks that all required signal fields are present and within
// their domains. Returns an error message and false when invalid.
func validate(req *assessRequest) (string, bool) {
	required := []struct {
		name    string
		present bool
	}{
		{"late_follow_days", req.LateFollowDays != nil},
		{"refill_delay_days", req.RefillDelayDays != nil},
		{"days_since_last_contact", req.DaysSinceLastContact != nil},
		{"missed_lab_tests", req.MissedLabTests != nil},
		{"expected_visit_gap_days", req.ExpectedVisitGapDays != nil},
		{"team_calls", req.TeamCalls != nil},
		{"replied", req.Replied != nil},
	}
	for _, f := range required {
		if !f.present {
			return "missing required field: " + f.name, false
		}
	}

	negatives := []struct {
		name  string
		value float64
	}{
		{"late_follow_days", *req.LateFollowDays},
		{"refill_delay_days", *req.RefillDelayDays},
		{"days_since_last_contact", *req.DaysSinceLastContact},
		{"missed_lab_tests", float64(*req.MissedLabTests)},
		{"expected_visit_gap_days", *req.ExpectedVisitGapDays},
		{"team_calls", float64(*req.TeamCalls)},
	}
	for _, f := range negatives {
		if f.value < 0 {
			return f.name + " must be non-negative", false
		}
	}

	return "", true
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
