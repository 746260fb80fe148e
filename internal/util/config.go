package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultScoreExpression caps composite score and momentum, adds a bonus for
// rank 1 and subtracts a volatility penalty
const DefaultScoreExpression = `clamp(
	min(compositeScore, 50.0) +
	min(priceChange5d, 20.0) +
	topRank * 15.0 -
	min(volatility30d, 20.0) * 0.5,
	0.0, 100.0
)`

type ScreenSourceConfig struct {
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
}

type Config struct {
	DataDir    string `json:"dataDir"`
	ArchiveDir string `json:"archiveDir"`
	ReportDir  string `json:"reportDir"`

	PortfolioKeywords []string             `json:"portfolioKeywords"`
	ScreenSources     []ScreenSourceConfig `json:"screenSources"`

	DeployFraction  float64  `json:"deployFraction"`
	PositionCap     float64  `json:"positionCap"`
	TrailingStopPct float64  `json:"trailingStopPct"`
	CashTickers     []string `json:"cashTickers"`
	// used instead of cash rows from the export when > 0
	ManualCash float64 `json:"manualCash"`

	ScoreExpression string `json:"scoreExpression"`

	BriefSchedule string `json:"briefSchedule"`
	Timezone      string `json:"timezone"`
	BundleWeekly  bool   `json:"bundleWeekly"`
	ArchiveWeekly bool   `json:"archiveWeekly"`
	Port          int    `json:"port"`
}

func DefaultConfig() Config {
	return Config{
		DataDir:           "data",
		ArchiveDir:        "archive",
		ReportDir:         "reports",
		PortfolioKeywords: []string{"Portfolio"},
		ScreenSources: []ScreenSourceConfig{
			{Label: "Growth1", Keywords: []string{"Growth1"}},
			{Label: "Growth2", Keywords: []string{"Growth2"}},
			{Label: "DefensiveDividend", Keywords: []string{"Defensive", "Dividend"}},
		},
		DeployFraction:  0.85,
		PositionCap:     0.15,
		TrailingStopPct: 0.05,
		CashTickers:     []string{"CASH", "SPAXX", "FCASH", "CORE", "PENDING"},
		ScoreExpression: DefaultScoreExpression,
		BriefSchedule:   "0 7 * * 0",
		Timezone:        "America/Chicago",
		BundleWeekly:    true,
		Port:            3009,
	}
}

func configFile() string {
	switch strings.ToLower(os.Getenv("FOXVALLEY_ENV")) {
	case "dev":
		return "config-dev.json"
	case "test":
		return "config-test.json"
	}
	if f := os.Getenv("FOXVALLEY_CONFIG"); f != "" {
		return f
	}
	return "config.json"
}

// LoadConfig layers defaults, the env-selected json file and environment
// overrides. a missing config file is fine, a malformed one is not.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	f, err := os.ReadFile(configFile())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not open %s: %w", configFile(), err)
	} else if err == nil {
		err = json.Unmarshal(f, &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configFile(), err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FOXVALLEY_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("FOXVALLEY_ARCHIVE_DIR"); v != "" {
		c.ArchiveDir = v
	}
	if v := os.Getenv("FOXVALLEY_REPORT_DIR"); v != "" {
		c.ReportDir = v
	}
	if v := os.Getenv("FOXVALLEY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("FOXVALLEY_MANUAL_CASH"); v != "" {
		if cash, err := strconv.ParseFloat(v, 64); err == nil {
			c.ManualCash = cash
		}
	}
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("dataDir is required")
	}
	if c.DeployFraction <= 0 || c.DeployFraction > 1 {
		return fmt.Errorf("deployFraction must be in (0, 1], got %f", c.DeployFraction)
	}
	if c.PositionCap <= 0 || c.PositionCap > 1 {
		return fmt.Errorf("positionCap must be in (0, 1], got %f", c.PositionCap)
	}
	if c.TrailingStopPct < 0 || c.TrailingStopPct >= 1 {
		return fmt.Errorf("trailingStopPct must be in [0, 1), got %f", c.TrailingStopPct)
	}
	if c.ManualCash < 0 {
		return fmt.Errorf("manualCash cannot be negative")
	}
	if len(c.ScreenSources) == 0 {
		return fmt.Errorf("at least one screen source is required")
	}
	for _, s := range c.ScreenSources {
		if s.Label == "" || len(s.Keywords) == 0 {
			return fmt.Errorf("screen source needs a label and keywords: %+v", s)
		}
	}
	if len(c.PortfolioKeywords) == 0 {
		return fmt.Errorf("at least one portfolio keyword is required")
	}
	return nil
}
