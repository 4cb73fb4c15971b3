// The operator command walks the full resilience workflow against a running
// server: simulate, review risks and the AI plan, dispatch, print the log.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/deg-labs/resilience-agent/internal/client"
	"github.com/deg-labs/resilience-agent/internal/config"
	"github.com/deg-labs/resilience-agent/internal/model"
	"github.com/deg-labs/resilience-agent/internal/panels"
	"github.com/deg-labs/resilience-agent/internal/workflow"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8000", "resilience-agent server URL")
	cfgPath := flag.String("config", "config/config.toml", "path to the config file")
	template := flag.String("template", "", "run a predefined scenario template by id")
	location := flag.String("location", "London", "scenario location")
	event := flag.String("event", "heatwave", "event type: heatwave or flood")
	hours := flag.Int("hours", 72, "event duration in hours")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Printf("Warning: could not load %s: %v. Using defaults\n", *cfgPath, err)
		cfg = config.Default()
	}

	sc := model.Scenario{
		Location:      *location,
		EventType:     model.EventType(*event),
		StartDate:     time.Now().UTC().Format(time.RFC3339),
		DurationHours: *hours,
	}
	if *template != "" {
		tpl, ok := cfg.Template(*template)
		if !ok {
			fmt.Printf("Unknown scenario template %q. Available:\n", *template)
			for _, t := range cfg.ScenarioTemplates {
				fmt.Printf("  %s - %s\n", t.ID, t.Name)
			}
			os.Exit(1)
		}
		sc.Location = tpl.Location
		sc.EventType = model.EventType(tpl.EventType)
		sc.DurationHours = tpl.DurationHours
		fmt.Printf("Using template: %s\n", tpl.Name)
	}

	api := client.New(*baseURL)
	orch := workflow.NewOrchestrator(api, api, api)
	orch.SettleDelay = time.Duration(cfg.Workflow.SettleDelayMS) * time.Millisecond
	orch.OnNotice(func(msg string) {
		fmt.Println("! " + msg)
	})

	ctx := context.Background()

	fmt.Println("1. Running scenario simulation...")
	if err := orch.RunScenario(ctx, sc); err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(1)
	}
	st := orch.State()
	fmt.Println(panels.StepIndicator(st))
	fmt.Println(panels.Scenario(st))
	fmt.Println(panels.MapSummary(st))

	fmt.Println("2. Requesting AI mitigation plan...")
	if err := orch.RequestMitigation(ctx); err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(1)
	}
	st = orch.State()
	fmt.Println(panels.RiskAssessment(st))

	fmt.Println("3. Executing dispatch network services...")
	if err := orch.ExecuteDispatch(ctx); err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(1)
	}
	st = orch.State()
	fmt.Println(panels.StepIndicator(st))
	fmt.Println(panels.DispatchLog(st))
}
