package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/deg-labs/resilience-agent/internal/model"
)

// Precondition and reentrancy errors. Remote-call failures are wrapped with
// the failing stage name instead.
var (
	ErrBusy             = errors.New("operation already in progress")
	ErrScenarioRequired = errors.New("run a scenario first")
	ErrNoRisks          = errors.New("no risks to mitigate")
	ErrNoPlan           = errors.New("request a mitigation plan first")
	ErrNoActions        = errors.New("mitigation plan has no actions")
)

// ScenarioRunner simulates a weather event and returns the affected assets
// with their assessed risks.
type ScenarioRunner interface {
	RunScenario(ctx context.Context, sc model.Scenario) (*model.ScenarioResponse, error)
}

// MitigationPlanner turns a scenario plus its risks into a mitigation plan.
type MitigationPlanner interface {
	PlanMitigation(ctx context.Context, req model.MitigationRequest) (*model.MitigationPlan, error)
}

// DispatchExecutor submits mitigation actions to the service network and
// returns the resulting activity log.
type DispatchExecutor interface {
	ExecuteDispatch(ctx context.Context, actions []model.MitigationAction) ([]model.DispatchLogEntry, error)
}

// Busy mirrors the per-call in-flight flags. At most one should be true in
// normal use; each operation rejects reentry while its own flag is set.
type Busy struct {
	Simulation bool
	Mitigation bool
	Dispatch   bool
}

// State is a consistent snapshot of the workflow. Slices and pointers are
// copies; views must not mutate orchestrator internals through it.
type State struct {
	Stage    Stage
	Scenario *model.Scenario
	Assets   []model.Asset
	Risks    []model.Risk
	Plan     *model.MitigationPlan
	Log      []model.DispatchLogEntry
	Busy     Busy
}

// Orchestrator owns the workflow stage, the run-scoped domain data and the
// busy flags, and drives the three collaborator calls in sequence.
type Orchestrator struct {
	runner   ScenarioRunner
	planner  MitigationPlanner
	executor DispatchExecutor

	// SettleDelay is the pause between a successful call and the stage
	// advance, so the operator sees the result land before the view moves.
	SettleDelay time.Duration

	mu       sync.Mutex
	stage    Stage
	scenario *model.Scenario
	assets   []model.Asset
	risks    []model.Risk
	plan     *model.MitigationPlan
	log      []model.DispatchLogEntry
	busy     Busy

	onChange []func(State)
	onNotice []func(string)
}

func NewOrchestrator(runner ScenarioRunner, planner MitigationPlanner, executor DispatchExecutor) *Orchestrator {
	return &Orchestrator{
		runner:      runner,
		planner:     planner,
		executor:    executor,
		SettleDelay: 500 * time.Millisecond,
		assets:      []model.Asset{},
		risks:       []model.Risk{},
		log:         []model.DispatchLogEntry{},
	}
}

// OnChange registers a subscriber invoked with a fresh snapshot after every
// state transition.
func (o *Orchestrator) OnChange(fn func(State)) {
	o.mu.Lock()
	o.onChange = append(o.onChange, fn)
	o.mu.Unlock()
}

// OnNotice registers a subscriber for user-visible notices (precondition
// violations and remote-call failures).
func (o *Orchestrator) OnNotice(fn func(string)) {
	o.mu.Lock()
	o.onNotice = append(o.onNotice, fn)
	o.mu.Unlock()
}

// State returns a snapshot of the current workflow state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() State {
	st := State{
		Stage:  o.stage,
		Assets: append([]model.Asset(nil), o.assets...),
		Risks:  append([]model.Risk(nil), o.risks...),
		Log:    append([]model.DispatchLogEntry(nil), o.log...),
		Busy:   o.busy,
	}
	if o.scenario != nil {
		sc := *o.scenario
		st.Scenario = &sc
	}
	if o.plan != nil {
		p := *o.plan
		p.MitigationActions = append([]model.MitigationAction(nil), o.plan.MitigationActions...)
		st.Plan = &p
	}
	return st
}

func (o *Orchestrator) notifyChange() {
	o.mu.Lock()
	st := o.snapshotLocked()
	subs := append([](func(State))(nil), o.onChange...)
	o.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

func (o *Orchestrator) notice(msg string) {
	o.mu.Lock()
	subs := append([](func(string))(nil), o.onNotice...)
	o.mu.Unlock()
	for _, fn := range subs {
		fn(msg)
	}
}

// RunScenario stores the scenario optimistically, calls the scenario
// collaborator and on success replaces assets and risks, discarding any
// prior run's plan and log, then advances to risk assessment after the
// settle delay. On failure the stage and prior results are unchanged and a
// notice is emitted; the operator may retry manually.
func (o *Orchestrator) RunScenario(ctx context.Context, sc model.Scenario) error {
	o.mu.Lock()
	if o.busy.Simulation {
		o.mu.Unlock()
		o.notice("Scenario simulation is already running.")
		return fmt.Errorf("run scenario: %w", ErrBusy)
	}
	o.busy.Simulation = true
	copySc := sc
	o.scenario = &copySc
	o.mu.Unlock()
	o.notifyChange()

	resp, err := o.runner.RunScenario(ctx, sc)
	if err != nil {
		o.mu.Lock()
		o.busy.Simulation = false
		o.mu.Unlock()
		o.notifyChange()
		o.notice("Failed to run scenario. Make sure the backend is reachable.")
		return fmt.Errorf("run scenario: %w", err)
	}

	o.mu.Lock()
	o.assets = emptyIfNil(resp.Assets)
	o.risks = emptyIfNil(resp.Risks)
	o.plan = nil
	o.log = []model.DispatchLogEntry{}
	o.busy.Simulation = false
	o.mu.Unlock()
	o.notifyChange()

	o.settle(ctx)

	o.mu.Lock()
	o.stage = StageRiskAssessment
	o.mu.Unlock()
	o.notifyChange()
	return nil
}

// RequestMitigation sends the scenario, risks and assets to the planning
// collaborator. The stage does not change; plan review happens within risk
// assessment.
func (o *Orchestrator) RequestMitigation(ctx context.Context) error {
	o.mu.Lock()
	if o.busy.Mitigation {
		o.mu.Unlock()
		o.notice("Mitigation planning is already running.")
		return fmt.Errorf("request mitigation: %w", ErrBusy)
	}
	if o.scenario == nil {
		o.mu.Unlock()
		o.notice("Please run a scenario first.")
		return fmt.Errorf("request mitigation: %w", ErrScenarioRequired)
	}
	if len(o.risks) == 0 {
		o.mu.Unlock()
		o.notice("Please run a scenario first.")
		return fmt.Errorf("request mitigation: %w", ErrNoRisks)
	}
	req := model.MitigationRequest{
		Scenario: *o.scenario,
		Risks:    append([]model.Risk(nil), o.risks...),
		Assets:   append([]model.Asset(nil), o.assets...),
	}
	o.busy.Mitigation = true
	o.mu.Unlock()
	o.notifyChange()

	plan, err := o.planner.PlanMitigation(ctx, req)
	if err != nil {
		o.mu.Lock()
		o.busy.Mitigation = false
		o.mu.Unlock()
		o.notifyChange()
		o.notice("Failed to get mitigation plan.")
		return fmt.Errorf("request mitigation: %w", err)
	}

	o.mu.Lock()
	o.plan = plan
	o.busy.Mitigation = false
	o.mu.Unlock()
	o.notifyChange()
	return nil
}

// ExecuteDispatch submits the plan's actions to the dispatch network, then
// advances to the dispatch-network stage after the settle delay.
func (o *Orchestrator) ExecuteDispatch(ctx context.Context) error {
	o.mu.Lock()
	if o.busy.Dispatch {
		o.mu.Unlock()
		o.notice("Dispatch is already running.")
		return fmt.Errorf("execute dispatch: %w", ErrBusy)
	}
	if o.plan == nil {
		o.mu.Unlock()
		o.notice("Please get a mitigation plan first.")
		return fmt.Errorf("execute dispatch: %w", ErrNoPlan)
	}
	if len(o.plan.MitigationActions) == 0 {
		o.mu.Unlock()
		o.notice("Please get a mitigation plan first.")
		return fmt.Errorf("execute dispatch: %w", ErrNoActions)
	}
	actions := append([]model.MitigationAction(nil), o.plan.MitigationActions...)
	o.busy.Dispatch = true
	o.mu.Unlock()
	o.notifyChange()

	entries, err := o.executor.ExecuteDispatch(ctx, actions)
	if err != nil {
		o.mu.Lock()
		o.busy.Dispatch = false
		o.mu.Unlock()
		o.notifyChange()
		o.notice("Failed to execute dispatch network services.")
		return fmt.Errorf("execute dispatch: %w", err)
	}

	o.mu.Lock()
	o.log = emptyIfNil(entries)
	o.busy.Dispatch = false
	o.mu.Unlock()
	o.notifyChange()

	o.settle(ctx)

	o.mu.Lock()
	o.stage = StageDispatchNetwork
	o.mu.Unlock()
	o.notifyChange()
	return nil
}

// Reset returns the workflow to the simulation stage and clears all
// run-scoped data and busy flags. No network calls.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.stage = StageSimulation
	o.scenario = nil
	o.assets = []model.Asset{}
	o.risks = []model.Risk{}
	o.plan = nil
	o.log = []model.DispatchLogEntry{}
	o.busy = Busy{}
	o.mu.Unlock()
	o.notifyChange()
}

func (o *Orchestrator) settle(ctx context.Context) {
	if o.SettleDelay <= 0 {
		return
	}
	t := time.NewTimer(o.SettleDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
