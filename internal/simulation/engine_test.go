package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deg-labs/resilience-agent/internal/model"
)

func heatwave(maxTemp float64, hours int) Conditions {
	return Conditions{EventType: model.EventHeatwave, MaxTempCelsius: maxTemp, DurationHours: hours}
}

func flood(total, perHour float64) Conditions {
	return Conditions{EventType: model.EventFlood, TotalRainfallMM: total, MaxRainfallMMPHr: perHour}
}

func TestSimulateRisks_HeatwaveSubstation(t *testing.T) {
	sub := model.Asset{ID: "sub_1", Type: "substation", Feeds: "12,000 households"}

	risks := SimulateRisks(heatwave(37, 72), []model.Asset{sub})
	require.Len(t, risks, 1)
	assert.Equal(t, model.RiskCritical, risks[0].RiskLevel)
	assert.Contains(t, risks[0].Reason, "design temperature")
	assert.Contains(t, risks[0].ExpectedImpact, "affecting 12,000 households")

	// Hot but short: drops to HIGH.
	risks = SimulateRisks(heatwave(37, 24), []model.Asset{sub})
	require.Len(t, risks, 1)
	assert.Equal(t, model.RiskHigh, risks[0].RiskLevel)

	// Below the gate: no risk at all.
	risks = SimulateRisks(heatwave(34, 72), []model.Asset{sub})
	assert.Empty(t, risks)
}

func TestSimulateRisks_HeatwaveCriticalInfrastructureEscalation(t *testing.T) {
	sub := model.Asset{ID: "sub_1", Type: "substation", Criticality: "high"}

	risks := SimulateRisks(heatwave(35, 24), []model.Asset{sub})
	require.Len(t, risks, 1)
	assert.Equal(t, model.RiskHigh, risks[0].RiskLevel)
	assert.Contains(t, risks[0].Reason, "critical infrastructure")

	// A medium-criticality substation stays MEDIUM at the same forecast.
	sub.Criticality = "medium"
	risks = SimulateRisks(heatwave(35, 24), []model.Asset{sub})
	require.Len(t, risks, 1)
	assert.Equal(t, model.RiskMedium, risks[0].RiskLevel)
}

func TestSimulateRisks_HeatwaveEVHubAndSolar(t *testing.T) {
	assets := []model.Asset{
		{ID: "ev_1", Type: "ev_hub"},
		{ID: "solar_1", Type: "solar_farm"},
	}

	risks := SimulateRisks(heatwave(37, 72), assets)
	require.Len(t, risks, 2)
	byID := map[string]model.Risk{}
	for _, r := range risks {
		byID[r.AssetID] = r
	}
	assert.Equal(t, model.RiskHigh, byID["ev_1"].RiskLevel)
	assert.Equal(t, model.RiskMedium, byID["solar_1"].RiskLevel)

	// At 36C the hub is only worth monitoring and the farm is unaffected.
	risks = SimulateRisks(heatwave(36, 72), assets)
	require.Len(t, risks, 1)
	assert.Equal(t, "ev_1", risks[0].AssetID)
	assert.Equal(t, model.RiskMedium, risks[0].RiskLevel)
}

func TestSimulateRisks_FloodZone(t *testing.T) {
	asset := model.Asset{ID: "sub_2", Type: "substation", FloodZone: true}

	risks := SimulateRisks(flood(80, 15), []model.Asset{asset})
	require.Len(t, risks, 1)
	assert.Equal(t, model.RiskCritical, risks[0].RiskLevel)

	risks = SimulateRisks(flood(45, 5), []model.Asset{asset})
	require.Len(t, risks, 1)
	assert.Equal(t, model.RiskHigh, risks[0].RiskLevel)
}

func TestSimulateRisks_FloodOutsideZone(t *testing.T) {
	solar := model.Asset{ID: "solar_1", Type: "solar_farm"}

	risks := SimulateRisks(flood(80, 15), []model.Asset{solar})
	require.Len(t, risks, 1)
	assert.Equal(t, model.RiskHigh, risks[0].RiskLevel)

	risks = SimulateRisks(flood(60, 5), []model.Asset{solar})
	require.Len(t, risks, 1)
	assert.Equal(t, model.RiskMedium, risks[0].RiskLevel)

	risks = SimulateRisks(flood(30, 2), []model.Asset{solar})
	assert.Empty(t, risks)
}

func TestSimulateRisks_FloodElectricalFallback(t *testing.T) {
	hub := model.Asset{ID: "ev_1", Type: "ev_hub"}

	risks := SimulateRisks(flood(55, 5), []model.Asset{hub})
	require.Len(t, risks, 1)
	assert.Equal(t, model.RiskMedium, risks[0].RiskLevel)
	assert.Contains(t, risks[0].ExpectedImpact, "Water ingress")
}

func TestSimulateRisks_SortedMostSevereFirst(t *testing.T) {
	assets := []model.Asset{
		{ID: "solar_1", Type: "solar_farm"},
		{ID: "ev_1", Type: "ev_hub"},
		{ID: "sub_1", Type: "substation"},
	}

	risks := SimulateRisks(heatwave(37, 72), assets)
	require.Len(t, risks, 3)
	assert.Equal(t, model.RiskCritical, risks[0].RiskLevel)
	assert.Equal(t, model.RiskHigh, risks[1].RiskLevel)
	assert.Equal(t, model.RiskMedium, risks[2].RiskLevel)
}

func TestSimulateRisks_UnknownEventType(t *testing.T) {
	risks := SimulateRisks(Conditions{EventType: "blizzard"}, []model.Asset{{ID: "sub_1", Type: "substation"}})
	assert.Empty(t, risks)
}

func TestForecastFor(t *testing.T) {
	cond := ForecastFor(model.Scenario{EventType: model.EventHeatwave, DurationHours: 72})
	assert.Equal(t, 37.0, cond.MaxTempCelsius)
	assert.Equal(t, 72, cond.DurationHours)

	cond = ForecastFor(model.Scenario{EventType: model.EventFlood, DurationHours: 24})
	assert.Equal(t, 80.0, cond.TotalRainfallMM)
	assert.Equal(t, 15.0, cond.MaxRainfallMMPHr)
}

func TestLoadAssets(t *testing.T) {
	assets, err := LoadAssets("London")
	require.NoError(t, err)
	require.NotEmpty(t, assets)

	byID := map[string]model.Asset{}
	for _, a := range assets {
		byID[a.ID] = a
		assert.NotEmpty(t, a.Name)
		assert.NotZero(t, a.Lat)
		assert.NotZero(t, a.Lon)
	}
	assert.Contains(t, byID, "sub_1")
	assert.True(t, byID["sub_2"].FloodZone)
}
