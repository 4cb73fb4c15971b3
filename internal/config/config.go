package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type BecknConfig struct {
	BapID          string `toml:"bap_id"`
	BapURI         string `toml:"bap_uri"`
	BppURI         string `toml:"bpp_uri"`
	PollIntervalMS int    `toml:"poll_interval_ms"`
	PollTimeoutS   int    `toml:"poll_timeout_s"`
}

type WorkflowConfig struct {
	SettleDelayMS int `toml:"settle_delay_ms"`
}

// ScenarioTemplate is a predefined quick scenario offered by the operator
// walkthrough.
type ScenarioTemplate struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	Location      string `toml:"location"`
	EventType     string `toml:"event_type"`
	DurationHours int    `toml:"duration_hours"`
}

type Config struct {
	Server            ServerConfig       `toml:"server"`
	LLM               LLMConfig          `toml:"llm"`
	Beckn             BecknConfig        `toml:"beckn"`
	Workflow          WorkflowConfig     `toml:"workflow"`
	ScenarioTemplates []ScenarioTemplate `toml:"scenario_templates"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a usable config when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Template returns the scenario template with the given id.
func (c *Config) Template(id string) (ScenarioTemplate, bool) {
	for _, t := range c.ScenarioTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return ScenarioTemplate{}, false
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}
	if c.Beckn.BapID == "" {
		c.Beckn.BapID = "deg-agent-bap"
	}
	if c.Beckn.BapURI == "" {
		c.Beckn.BapURI = "http://localhost:" + c.Server.Port + "/beckn"
	}
	if c.Beckn.BppURI == "" {
		c.Beckn.BppURI = "http://localhost:" + c.Server.Port + "/mock-bpp"
	}
	if c.Beckn.PollIntervalMS <= 0 {
		c.Beckn.PollIntervalMS = 500
	}
	if c.Beckn.PollTimeoutS <= 0 {
		c.Beckn.PollTimeoutS = 10
	}
	if c.Workflow.SettleDelayMS == 0 {
		c.Workflow.SettleDelayMS = 500
	}
}
