// Package intel talks to the upstream Strategic AI Platform REST API and
// adapts its reports into console panel repositories.
package intel

import (
	"context"
	"time"
)

// PredictionQuery selects a forecast slice.
type PredictionQuery struct {
	Domain      string `json:"domain"`
	HorizonDays int    `json:"horizon_days"`
	Limit       int    `json:"limit"`
}

// Prediction is one upstream forecast row.
type Prediction struct {
	Subject     string    `json:"subject"`
	Probability float64   `json:"probability"`
	Impact      string    `json:"impact"`
	Horizon     time.Time `json:"horizon"`
}

// PredictionReport carries forecast rows plus aggregate confidence.
type PredictionReport struct {
	Domain     string       `json:"domain"`
	Confidence float64      `json:"confidence"`
	Rows       []Prediction `json:"rows"`
}

// IndexReport is a single composite index reading (CEIS and friends).
type IndexReport struct {
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Trend      string    `json:"trend"`
	ComputedAt time.Time `json:"computed_at"`
}

// ComponentStatus reports one subsystem's health.
type ComponentStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// StatusReport is a subsystem health snapshot.
type StatusReport struct {
	Service    string            `json:"service"`
	Components []ComponentStatus `json:"components"`
}

// Alert is one alert feed entry.
type Alert struct {
	Severity string    `json:"severity"`
	Title    string    `json:"title"`
	Source   string    `json:"source"`
	At       time.Time `json:"at"`
}

// AlertQuery filters the alert feed.
type AlertQuery struct {
	Severities []string `json:"severities,omitempty"`
	Limit      int      `json:"limit"`
}

// SimulationRequest starts a scenario run.
type SimulationRequest struct {
	Scenario   string         `json:"scenario"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// SimulationRun identifies a queued simulation.
type SimulationRun struct {
	ID       string `json:"id"`
	Scenario string `json:"scenario"`
	Status   string `json:"status"`
}

// Optimization is one QESO recommendation.
type Optimization struct {
	Strategy   string  `json:"strategy"`
	Score      float64 `json:"score"`
	Rationale  string  `json:"rationale"`
	Applicable bool    `json:"applicable"`
}

// Client is the full upstream API surface the console consumes.
type Client interface {
	ARPEPredictions(ctx context.Context, query PredictionQuery) (PredictionReport, error)
	CEISIndex(ctx context.Context) (IndexReport, error)
	PSCDOForecast(ctx context.Context, horizonDays int) (PredictionReport, error)
	SNSEStatus(ctx context.Context) (StatusReport, error)
	QESOOptimizations(ctx context.Context, limit int) ([]Optimization, error)
	DRADAlerts(ctx context.Context, query AlertQuery) ([]Alert, error)
	RunSimulation(ctx context.Context, req SimulationRequest) (SimulationRun, error)
}
