package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.Handler()

	return provider, handler, nil
}

// AssessmentMetrics records counters for completed dropout assessments.
type AssessmentMetrics struct {
	assessments metric.Int64Counter
}

// NewAssessmentMetrics creates assessment counters on the given provider.
func NewAssessmentMetrics(provider *sdkmetric.MeterProvider) (*AssessmentMetrics, error) {
	meter := provider.Meter("dropout-service")

	assessments, err := meter.Int64Counter(
		"dropout_assessments_total",
		metric.WithDescription("Completed dropout risk assessments by risk level"),
	)
	if err != nil {
		return nil, err
	}

	return &AssessmentMetrics{assessments: assessments}, nil
}

// RecordAssessment increments the assessment counter for a risk level.
func (m *AssessmentMetrics) RecordAssessment(ctx context.Context, riskLevel string) {
	m.assessments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("risk_level", riskLevel),
	))
}
