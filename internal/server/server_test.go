package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deg-labs/resilience-agent/internal/beckn"
	"github.com/deg-labs/resilience-agent/internal/model"
)

type stubPlanner struct {
	Plan_ *model.MitigationPlan
	Err   error
	Reqs  []model.MitigationRequest
}

func (s *stubPlanner) Plan(ctx context.Context, req model.MitigationRequest) (*model.MitigationPlan, error) {
	s.Reqs = append(s.Reqs, req)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Plan_, nil
}

func newTestServer(t *testing.T, planner Planner) (*Server, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := beckn.NewStore()
	srv := &Server{Planner: planner}
	r := srv.SetupRouter()

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	srv.BAP = beckn.NewBAPClient("deg-agent-bap", ts.URL+"/beckn", ts.URL+"/mock-bpp", store)
	srv.Flow = &beckn.Flow{
		Client:       srv.BAP,
		PollInterval: 2 * time.Millisecond,
		PollTimeout:  2 * time.Second,
	}

	bpp := beckn.NewMockBPP("mock-bpp-london", ts.URL+"/mock-bpp")
	bpp.Latency = time.Millisecond
	bpp.Register(r.Group("/mock-bpp"))
	srv.BPP = bpp

	return srv, ts
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRunScenario_HeatwaveReturnsRisks(t *testing.T) {
	_, ts := newTestServer(t, &stubPlanner{})

	resp := postJSON(t, ts.URL+"/scenario/run", model.Scenario{
		Location:      "London",
		EventType:     model.EventHeatwave,
		StartDate:     "2025-11-26T00:00:00Z",
		DurationHours: 72,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody[model.ScenarioResponse](t, resp)
	assert.Equal(t, "London", out.Scenario.Location)
	assert.NotEmpty(t, out.Assets)
	require.NotEmpty(t, out.Risks)
	// Results are ordered most severe first.
	assert.Equal(t, model.RiskCritical, out.Risks[0].RiskLevel)
}

func TestRunScenario_FloodHitsFloodZoneAssets(t *testing.T) {
	_, ts := newTestServer(t, &stubPlanner{})

	resp := postJSON(t, ts.URL+"/scenario/run", model.Scenario{
		Location:      "London",
		EventType:     model.EventFlood,
		DurationHours: 24,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody[model.ScenarioResponse](t, resp)
	require.NotEmpty(t, out.Risks)
	byAsset := map[string]model.Risk{}
	for _, r := range out.Risks {
		byAsset[r.AssetID] = r
	}
	assert.Equal(t, model.RiskCritical, byAsset["sub_2"].RiskLevel)
}

func TestRunScenario_BadPayload(t *testing.T) {
	_, ts := newTestServer(t, &stubPlanner{})

	resp, err := http.Post(ts.URL+"/scenario/run", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMitigate_Success(t *testing.T) {
	planner := &stubPlanner{
		Plan_: &model.MitigationPlan{
			SummaryText:       "Discharge the VPP.",
			MitigationActions: []model.MitigationAction{{AssetID: "sub_1", ActionType: "dispatch_battery_discharge"}},
		},
	}
	_, ts := newTestServer(t, planner)

	resp := postJSON(t, ts.URL+"/agent/mitigate", model.MitigationRequest{
		Scenario: model.Scenario{Location: "London", EventType: model.EventHeatwave},
		Risks:    []model.Risk{{AssetID: "sub_1", RiskLevel: model.RiskCritical}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody[model.MitigationPlan](t, resp)
	assert.Equal(t, "Discharge the VPP.", out.SummaryText)
	require.Len(t, out.MitigationActions, 1)
	require.Len(t, planner.Reqs, 1)
	assert.Equal(t, "London", planner.Reqs[0].Scenario.Location)
}

func TestMitigate_PlannerFailureDegradesToEmptyPlan(t *testing.T) {
	planner := &stubPlanner{Err: errors.New("model overloaded")}
	_, ts := newTestServer(t, planner)

	resp := postJSON(t, ts.URL+"/agent/mitigate", model.MitigationRequest{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody[model.MitigationPlan](t, resp)
	assert.Contains(t, out.SummaryText, "Error generating AI plan")
	assert.Contains(t, out.SummaryText, "model overloaded")
	assert.NotNil(t, out.MitigationActions)
	assert.Empty(t, out.MitigationActions)
}

func TestExecuteDispatch_FullNetworkLoop(t *testing.T) {
	_, ts := newTestServer(t, &stubPlanner{})

	resp := postJSON(t, ts.URL+"/beckn/execute", model.DispatchRequest{
		Actions: []model.MitigationAction{
			{AssetID: "sub_1", ActionType: "dispatch_battery_discharge"},
			{AssetID: "ev_1", ActionType: "reduce_ev_load"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody[model.DispatchResponse](t, resp)
	require.Len(t, out.Log, 2)
	for _, e := range out.Log {
		assert.Equal(t, model.DispatchConfirmed, e.Status)
		assert.Equal(t, "Mock Provider Services", e.Provider)
	}
}

func TestExecuteDispatch_NoActions(t *testing.T) {
	_, ts := newTestServer(t, &stubPlanner{})

	resp := postJSON(t, ts.URL+"/beckn/execute", model.DispatchRequest{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody[model.DispatchResponse](t, resp)
	assert.Empty(t, out.Log)
}

func TestRoot(t *testing.T) {
	_, ts := newTestServer(t, &stubPlanner{})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "running", out["status"])
}
