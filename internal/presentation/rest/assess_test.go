package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/dropout-service/internal/application/dto"
	"github.com/careops/dropout-service/internal/application/usecase"
	"github.com/careops/dropout-service/internal/domain/event"
	"github.com/careops/dropout-service/internal/domain/service"
)

type mockEventPublisher struct{}

func (m *mockEventPublisher) Publish(_ context.Context, _ ...event.DomainEvent) error {
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestMux() *http.ServeMux {
	uc := usecase.NewAssessPatient(&mockEventPublisher{}, service.NewDropoutScorer())
	handler := NewAssessHandler(uc, nil, testLogger())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux
}

func postAssessment(t *testing.T, mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/assessments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"late_follow_days": 10,
	"refill_delay_days": 10,
	"days_since_last_contact": 30,
	"missed_lab_tests": 1,
	"expected_visit_gap_days": 30,
	"team_calls": 2,
	"replied": false
}`

func TestAssess_ValidRequest(t *testing.T) {
	rec := postAssessment(t, newTestMux(), validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp dto.AssessmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.InDelta(t, 34.83, resp.DropoutScore, 1e-9)
	assert.Equal(t, "Low", resp.RiskLevel)
	assert.NotEqual(t, uuid.Nil, resp.AssessmentID)
	assert.NotEqual(t, uuid.Nil, resp.PatientID)
	assert.Contains(t, resp.RiskSignals, service.SignalNoReply)
}

func TestAssess_RepliedLowersScore(t *testing.T) {
	mux := newTestMux()

	noReply := postAssessment(t, mux, validBody)
	replied := postAssessment(t, mux, strings.Replace(validBody, `"replied": false`, `"replied": true`, 1))

	require.Equal(t, http.StatusOK, noReply.Code)
	require.Equal(t, http.StatusOK, replied.Code)

	var noReplyResp, repliedResp dto.AssessmentResponse
	require.NoError(t, json.NewDecoder(noReply.Body).Decode(&noReplyResp))
	require.NoError(t, json.NewDecoder(replied.Body).Decode(&repliedResp))

	assert.Less(t, repliedResp.DropoutScore, noReplyResp.DropoutScore)
}

func TestAssess_InvalidJSON(t *testing.T) {
	rec := postAssessment(t, newTestMux(), `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid JSON body", resp["error"])
}

func TestAssess_MissingRequiredField(t *testing.T) {
	fields := []string{
		"late_follow_days",
		"refill_delay_days",
		"days_since_last_contact",
		"missed_lab_tests",
		"expected_visit_gap_days",
		"team_calls",
		"replied",
	}

	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			var body map[string]any
			require.NoError(t, json.Unmarshal([]byte(validBody), &body))
			delete(body, field)
			partial, err := json.Marshal(body)
			require.NoError(t, err)

			rec := postAssessment(t, newTestMux(), string(partial))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Contains(t, resp["error"], field)
		})
	}
}

func TestAssess_NegativeValue(t *testing.T) {
	body := strings.Replace(validBody, `"late_follow_days": 10`, `"late_follow_days": -10`, 1)
	rec := postAssessment(t, newTestMux(), body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp["error"], "non-negative")
}

func TestAssess_InvalidPatientID(t *testing.T) {
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(validBody), &body))
	body["patient_id"] = "not-a-uuid"
	withID, err := json.Marshal(body)
	require.NoError(t, err)

	rec := postAssessment(t, newTestMux(), string(withID))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssess_ExplicitPatientIDRoundTrips(t *testing.T) {
	patientID := uuid.New()
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(validBody), &body))
	body["patient_id"] = patientID.String()
	withID, err := json.Marshal(body)
	require.NoError(t, err)

	rec := postAssessment(t, newTestMux(), string(withID))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.AssessmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, patientID, resp.PatientID)
}

func TestAssess_GetMethodNotAllowed(t *testing.T) {
	mux := newTestMux()
	req := httptest.NewRequest(http.MethodGet, "/v1/assessments", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	NewHealthHandler(testLogger()).RegisterRoutes(mux)

	t.Run("healthz", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "dropout-service", resp.Service)
	})

	t.Run("readyz", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp ReadinessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "ready", resp.Status)
		assert.Equal(t, "ok", resp.Checks["scoring_engine"])
	})
}
