package intel

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockClient serves deterministic data for demo deployments and tests.
type MockClient struct{}

var _ Client = (*MockClient)(nil)

// ARPEPredictions returns canned regulatory forecasts.
func (MockClient) ARPEPredictions(_ context.Context, query PredictionQuery) (PredictionReport, error) {
	horizon := time.Now().AddDate(0, 0, maxInt(query.HorizonDays, 1))
	rows := []Prediction{
		{Subject: "EU AI Act enforcement wave", Probability: 0.87, Impact: "high", Horizon: horizon},
		{Subject: "Semiconductor export control update", Probability: 0.74, Impact: "high", Horizon: horizon.AddDate(0, 0, -7)},
		{Subject: "Carbon disclosure rule expansion", Probability: 0.61, Impact: "medium", Horizon: horizon.AddDate(0, 0, -12)},
	}
	if query.Limit > 0 && query.Limit < len(rows) {
		rows = rows[:query.Limit]
	}
	return PredictionReport{Domain: query.Domain, Confidence: 0.81, Rows: rows}, nil
}

// CEISIndex returns a fixed composite reading.
func (MockClient) CEISIndex(context.Context) (IndexReport, error) {
	return IndexReport{Name: "CEIS", Value: 54.2, Trend: "up", ComputedAt: time.Now()}, nil
}

// PSCDOForecast returns canned supply-chain forecasts.
func (m MockClient) PSCDOForecast(ctx context.Context, horizonDays int) (PredictionReport, error) {
	report, _ := m.ARPEPredictions(ctx, PredictionQuery{Domain: "supply_chain", HorizonDays: horizonDays})
	report.Rows = []Prediction{
		{Subject: "Red Sea shipping lane congestion", Probability: 0.69, Impact: "high", Horizon: time.Now().AddDate(0, 0, horizonDays)},
		{Subject: "Tier-1 semiconductor supplier strike", Probability: 0.41, Impact: "medium", Horizon: time.Now().AddDate(0, 0, horizonDays/2+1)},
	}
	return report, nil
}

// SNSEStatus reports all subsystems healthy.
func (MockClient) SNSEStatus(context.Context) (StatusReport, error) {
	return StatusReport{
		Service: "snse",
		Components: []ComponentStatus{
			{Name: "Ingest Nodes", Status: "operational"},
			{Name: "Sentiment Models", Status: "operational"},
			{Name: "Narrative Graph", Status: "degraded"},
		},
	}, nil
}

// QESOOptimizations returns canned recommendations.
func (MockClient) QESOOptimizations(_ context.Context, limit int) ([]Optimization, error) {
	out := []Optimization{
		{Strategy: "Rebalance APAC logistics spend", Score: 0.92, Rationale: "Simulated 12% cost reduction", Applicable: true},
		{Strategy: "Hedge EUR exposure through Q4", Score: 0.78, Rationale: "Instability score trending up", Applicable: true},
		{Strategy: "Defer datacenter expansion", Score: 0.55, Rationale: "Demand forecast uncertain", Applicable: false},
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// DRADAlerts returns canned alerts filtered by severity.
func (MockClient) DRADAlerts(_ context.Context, query AlertQuery) ([]Alert, error) {
	now := time.Now()
	all := []Alert{
		{Severity: "critical", Title: "Coordinated narrative cluster detected", Source: "DRAD", At: now.Add(-12 * time.Minute)},
		{Severity: "warning", Title: "Bot amplification above baseline", Source: "DRAD", At: now.Add(-48 * time.Minute)},
		{Severity: "info", Title: "Weekly narrative digest published", Source: "DRAD", At: now.Add(-3 * time.Hour)},
	}
	filtered := make([]Alert, 0, len(all))
	for _, alert := range all {
		if len(query.Severities) > 0 && !containsFold(query.Severities, alert.Severity) {
			continue
		}
		filtered = append(filtered, alert)
	}
	if query.Limit > 0 && query.Limit < len(filtered) {
		filtered = filtered[:query.Limit]
	}
	return filtered, nil
}

// RunSimulation acknowledges the scenario with a generated run id.
func (MockClient) RunSimulation(_ context.Context, req SimulationRequest) (SimulationRun, error) {
	return SimulationRun{ID: uuid.NewString(), Scenario: req.Scenario, Status: "queued"}, nil
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
