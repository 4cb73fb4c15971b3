package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deg-labs/resilience-agent/internal/agent"
	"github.com/deg-labs/resilience-agent/internal/beckn"
	"github.com/deg-labs/resilience-agent/internal/config"
	"github.com/deg-labs/resilience-agent/internal/llm"
	"github.com/deg-labs/resilience-agent/internal/model"
	"github.com/deg-labs/resilience-agent/internal/simulation"
)

// Planner lets tests swap the LLM-backed planner for a stub.
type Planner interface {
	Plan(ctx context.Context, req model.MitigationRequest) (*model.MitigationPlan, error)
}

// Server hosts the three collaborator services the operator workflow calls,
// plus the mock BPP that answers the dispatch network exchanges.
type Server struct {
	Planner Planner
	BAP     *beckn.BAPClient
	Flow    *beckn.Flow
	BPP     *beckn.MockBPP
}

// New wires the server from configuration. The LLM provider comes from the
// config (env overrides applied by the caller).
func New(cfg *config.Config) (*Server, error) {
	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	store := beckn.NewStore()
	bap := beckn.NewBAPClient(cfg.Beckn.BapID, cfg.Beckn.BapURI, cfg.Beckn.BppURI, store)
	flow := beckn.NewFlow(bap)
	flow.PollInterval = time.Duration(cfg.Beckn.PollIntervalMS) * time.Millisecond
	flow.PollTimeout = time.Duration(cfg.Beckn.PollTimeoutS) * time.Second

	return &Server{
		Planner: agent.NewPlanner(llmClient),
		BAP:     bap,
		Flow:    flow,
		BPP:     beckn.NewMockBPP("mock-bpp-london", cfg.Beckn.BppURI),
	}, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.Root)
	r.POST("/scenario/run", s.RunScenario)
	r.POST("/agent/mitigate", s.Mitigate)
	r.POST("/beckn/execute", s.ExecuteDispatch)

	// BAP callbacks invoked by the BPP.
	r.POST("/beckn/on_search", s.OnSearch)
	r.POST("/beckn/on_select", s.OnSelect)
	r.POST("/beckn/on_confirm", s.OnConfirm)

	if s.BPP != nil {
		s.BPP.Register(r.Group("/mock-bpp"))
	}

	return r
}

func (s *Server) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Extreme Weather Resilience Agent API",
		"status":  "running",
		"endpoints": gin.H{
			"scenario": "/scenario/run",
			"agent":    "/agent/mitigate",
			"beckn":    "/beckn/execute",
		},
	})
}

// RunScenario simulates the weather event against the asset registry and
// returns per-asset risks.
func (s *Server) RunScenario(c *gin.Context) {
	var sc model.Scenario
	if err := c.ShouldBindJSON(&sc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assets, err := simulation.LoadAssets(sc.Location)
	if err != nil {
		log.Printf("Failed to load assets: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load asset registry"})
		return
	}

	cond := simulation.ForecastFor(sc)
	risks := simulation.SimulateRisks(cond, assets)

	c.JSON(http.StatusOK, model.ScenarioResponse{
		Scenario: sc,
		Assets:   assets,
		Risks:    risks,
	})
}

// Mitigate asks the AI planner for a flexibility dispatch plan. Planner
// failures degrade to an explanatory empty plan rather than an error status,
// so the dashboard always has something to show.
func (s *Server) Mitigate(c *gin.Context) {
	var req model.MitigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	plan, err := s.Planner.Plan(c.Request.Context(), req)
	if err != nil {
		log.Printf("Failed to generate mitigation plan: %v", err)
		c.JSON(http.StatusOK, model.MitigationPlan{
			SummaryText:       fmt.Sprintf("Error generating AI plan: %v", err),
			MitigationActions: []model.MitigationAction{},
		})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ExecuteDispatch runs the Beckn flow for every action and returns the
// activity log.
func (s *Server) ExecuteDispatch(c *gin.Context) {
	var req model.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	entries := s.Flow.Execute(c.Request.Context(), req.Actions)
	c.JSON(http.StatusOK, model.DispatchResponse{Log: entries})
}

func (s *Server) OnSearch(c *gin.Context) {
	var req beckn.OnSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	s.BAP.HandleOnSearch(req)
	c.JSON(http.StatusOK, beckn.NewAck())
}

func (s *Server) OnSelect(c *gin.Context) {
	var req beckn.OnSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	s.BAP.HandleOnSelect(req)
	c.JSON(http.StatusOK, beckn.NewAck())
}

func (s *Server) OnConfirm(c *gin.Context) {
	var req beckn.OnConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	s.BAP.HandleOnConfirm(req)
	c.JSON(http.StatusOK, beckn.NewAck())
}
