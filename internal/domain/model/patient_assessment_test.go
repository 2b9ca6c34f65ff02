package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/dropout-service/internal/domain/event"
	"github.com/careops/dropout-service/internal/domain/model"
	"github.com/careops/dropout-service/internal/domain/valueobject"
)

func newTestAssessment(t *testing.T) *model.PatientAssessment {
	t.Helper()
	assessment, err := model.NewPatientAssessment(
		uuid.New(), 10, 10, 30, 1, 30, 2, false, nil,
	)
	require.NoError(t, err)
	return assessment
}

func TestNewPatientAssessment(t *testing.T) {
	patientID := uuid.New()
	metadata := map[string]string{"age": "40", "gender": "Female", "refill_source": "Hospital"}

	assessment, err := model.NewPatientAssessment(
		patientID, 10, 10, 30, 1, 30, 2, false, metadata,
	)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, assessment.ID())
	assert.Equal(t, patientID, assessment.PatientID())
	assert.Equal(t, 10.0, assessment.LateFollowDays())
	assert.Equal(t, 30.0, assessment.DaysSinceLastContact())
	assert.False(t, assessment.Replied())
	assert.Equal(t, metadata, assessment.Metadata())
	assert.True(t, assessment.RiskLevel().Equal(valueobject.RiskLevelLow))
	assert.True(t, assessment.AssessedAt().IsZero())
	assert.Empty(t, assessment.DomainEvents())
}

func TestNewPatientAssessment_Validation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*model.PatientAssessment, error)
	}{
		{"nil patient ID", func() (*model.PatientAssessment, error) {
			return model.NewPatientAssessment(uuid.Nil, 1, 1, 1, 1, 1, 1, false, nil)
		}},
		{"negative late follow days", func() (*model.PatientAssessment, error) {
			return model.NewPatientAssessment(uuid.New(), -1, 1, 1, 1, 1, 1, false, nil)
		}},
		{"negative refill delay days", func() (*model.PatientAssessment, error) {
			return model.NewPatientAssessment(uuid.New(), 1, -1, 1, 1, 1, 1, false, nil)
		}},
		{"negative days since last contact", func() (*model.PatientAssessment, error) {
			return model.NewPatientAssessment(uuid.New(), 1, 1, -1, 1, 1, 1, false, nil)
		}},
		{"negative missed lab tests", func() (*model.PatientAssessment, error) {
			return model.NewPatientAssessment(uuid.New(), 1, 1, 1, -1, 1, 1, false, nil)
		}},
		{"negative expected visit gap", func() (*model.PatientAssessment, error) {
			return model.NewPatientAssessment(uuid.New(), 1, 1, 1, 1, -1, 1, false, nil)
		}},
		{"negative team calls", func() (*model.PatientAssessment, error) {
			return model.NewPatientAssessment(uuid.New(), 1, 1, 1, 1, 1, -1, false, nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			require.Error(t, err)
		})
	}
}

func TestAssess_SetsScoreAndDerivedLevel(t *testing.T) {
	assessment := newTestAssessment(t)

	score := decimal.NewFromFloat(34.83)
	require.NoError(t, assessment.Assess(score, []string{"no_reply"}))

	assert.True(t, assessment.DropoutScore().Equal(score))
	assert.True(t, assessment.RiskLevel().Equal(valueobject.RiskLevelLow))
	assert.Equal(t, []string{"no_reply"}, assessment.RiskSignals())
	assert.False(t, assessment.AssessedAt().IsZero())
}

func TestAssess_LevelAlwaysConsistentWithScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected valueobject.RiskLevel
	}{
		{0, valueobject.RiskLevelLow},
		{34.99, valueobject.RiskLevelLow},
		{35, valueobject.RiskLevelMedium},
		{59.99, valueobject.RiskLevelMedium},
		{60, valueobject.RiskLevelHigh},
		{100, valueobject.RiskLevelHigh},
	}

	for _, tt := range tests {
		assessment := newTestAssessment(t)
		require.NoError(t, assessment.Assess(decimal.NewFromFloat(tt.score), nil))
		assert.True(t, tt.expected.Equal(assessment.RiskLevel()),
			"score %v: expected %s, got %s", tt.score, tt.expected, assessment.RiskLevel())
	}
}

func TestAssess_RejectsOutOfRangeScore(t *testing.T) {
	assessment := newTestAssessment(t)
	require.Error(t, assessment.Assess(decimal.NewFromFloat(-0.01), nil))
	require.Error(t, assessment.Assess(decimal.NewFromFloat(100.01), nil))
}

func TestAssess_EmitsAssessmentCompleted(t *testing.T) {
	assessment := newTestAssessment(t)
	require.NoError(t, assessment.Assess(decimal.NewFromFloat(20), []string{"no_reply"}))

	events := assessment.DomainEvents()
	require.Len(t, events, 1)

	completed, ok := events[0].(event.AssessmentCompleted)
	require.True(t, ok)
	assert.Equal(t, assessment.ID(), completed.AggregateID())
	assert.Equal(t, "20.00", completed.DropoutScore)
	assert.Equal(t, "Low", completed.RiskLevel)
}

func TestAssess_HighRiskEmitsSecondEvent(t *testing.T) {
	assessment := newTestAssessment(t)
	require.NoError(t, assessment.Assess(decimal.NewFromFloat(72.5), nil))

	events := assessment.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, event.EventTypeAssessmentCompleted, events[0].EventType())
	assert.Equal(t, event.EventTypeHighRiskDetected, events[1].EventType())
}

func TestDomainEvents_ClearsAfterRead(t *testing.T) {
	assessment := newTestAssessment(t)
	require.NoError(t, assessment.Assess(decimal.NewFromFloat(10), nil))

	require.NotEmpty(t, assessment.DomainEvents())
	assert.Empty(t, assessment.DomainEvents())
}
