package intel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	console "github.com/strategicai/console/components/console"
)

type routingClient struct {
	MockClient
	arpeCalls  int
	pscdoCalls int
}

func (c *routingClient) ARPEPredictions(ctx context.Context, query PredictionQuery) (PredictionReport, error) {
	c.arpeCalls++
	return c.MockClient.ARPEPredictions(ctx, query)
}

func (c *routingClient) PSCDOForecast(ctx context.Context, horizonDays int) (PredictionReport, error) {
	c.pscdoCalls++
	return c.MockClient.PSCDOForecast(ctx, horizonDays)
}

func TestRepositoryRoutesSupplyChainToPSCDO(t *testing.T) {
	client := &routingClient{}
	repo := NewRepository(client)

	_, err := repo.FetchPredictions(context.Background(), console.PredictionQuery{
		Domain:      "supply_chain",
		HorizonDays: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, client.pscdoCalls)
	assert.Zero(t, client.arpeCalls)

	_, err = repo.FetchPredictions(context.Background(), console.PredictionQuery{
		Domain:      "regulatory",
		HorizonDays: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, client.arpeCalls)
}

func TestRepositoryAppliesLimit(t *testing.T) {
	repo := NewRepository(MockClient{})
	report, err := repo.FetchPredictions(context.Background(), console.PredictionQuery{
		Domain: "regulatory",
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Len(t, report.Rows, 1)
}

func TestRepositoryFetchAlerts(t *testing.T) {
	repo := NewRepository(MockClient{})
	alerts, err := repo.FetchAlerts(context.Background(), console.AlertQuery{
		Severities: []string{"critical"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, alerts)
	for _, alert := range alerts {
		assert.Equal(t, "critical", alert.Severity)
	}
}

func TestRepositoryRequiresClient(t *testing.T) {
	repo := NewRepository(nil)
	_, err := repo.FetchPredictions(context.Background(), console.PredictionQuery{})
	require.Error(t, err)
	_, err = repo.FetchAlerts(context.Background(), console.AlertQuery{})
	require.Error(t, err)
}

func TestMockClientFiltersAlertsBySeverity(t *testing.T) {
	client := MockClient{}
	alerts, err := client.DRADAlerts(context.Background(), AlertQuery{Severities: []string{"WARNING"}})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0].Severity)
}

func TestMockClientRunSimulationIssuesRunID(t *testing.T) {
	client := MockClient{}
	run, err := client.RunSimulation(context.Background(), SimulationRequest{Scenario: "tariff-shock"})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "tariff-shock", run.Scenario)
	assert.Equal(t, "queued", run.Status)
}
