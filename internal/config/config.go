// Package config loads runtime configuration from defaults, an optional YAML
// file, and SIMREC_-prefixed environment variables, in that order of
// precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the environment variables honored by Load.
// SIMREC_SIMULATION_DAYS -> simulation.days
const EnvPrefix = "SIMREC_"

// defaultConfigPaths are searched in order when no --config flag is given.
var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/simrec/config.yaml",
}

// Config is the full runtime configuration tree.
type Config struct {
	Seed      int64           `koanf:"seed"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Storage   StorageConfig   `koanf:"storage"`
	Spotify   SpotifyConfig   `koanf:"spotify"`
	Simulate  SimulateConfig  `koanf:"simulation"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig locates the song dataset.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// StorageConfig locates the playlist database.
type StorageConfig struct {
	Path string `koanf:"path"`
}

// SpotifyConfig carries live-lookup credentials. Both fields empty disables
// the live client; the simulation never needs it.
type SpotifyConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	BaseURL      string `koanf:"base_url"`
}

// SimulateConfig shapes the agent population and run length.
type SimulateConfig struct {
	Days            int    `koanf:"days"`
	PopAgents       int    `koanf:"pop_agents"`
	ClassicalAgents int    `koanf:"classical_agents"`
	GeneralAgents   int    `koanf:"general_agents"`
	Workers         int    `koanf:"workers"`
	PlaylistMode    string `koanf:"playlist_mode"`
	RecommendEvery  int    `koanf:"recommend_every"`
	Recommendations int    `koanf:"recommendations"`
	ReportDir       string `koanf:"report_dir"`
}

// RecommendConfig tunes the hybrid engine.
type RecommendConfig struct {
	ContentWeight       float64       `koanf:"content_weight"`
	CollabWeight        float64       `koanf:"collab_weight"`
	CandidateMultiplier int           `koanf:"candidate_multiplier"`
	RecencyWindow       time.Duration `koanf:"recency_window"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

func defaultConfig() *Config {
	return &Config{
		Seed:    42,
		Catalog: CatalogConfig{Path: "data/spotify_songs.csv"},
		Storage: StorageConfig{Path: "simrec.db"},
		Spotify: SpotifyConfig{},
		Simulate: SimulateConfig{
			Days:            30,
			PopAgents:       1,
			ClassicalAgents: 1,
			GeneralAgents:   1,
			Workers:         4,
			PlaylistMode:    "genre",
			RecommendEvery:  7,
			Recommendations: 5,
			ReportDir:       "results",
		},
		Recommend: RecommendConfig{
			ContentWeight:       0.7,
			CollabWeight:        0.3,
			CandidateMultiplier: 2,
			RecencyWindow:       24 * time.Hour,
		},
		Logging: LoggingConfig{Level: "info", Pretty: true},
	}
}

// Load assembles the configuration. path may be empty, in which case the
// default locations are searched; a missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envTransform maps SIMREC_SIMULATION_POP_AGENTS to simulation.pop_agents.
// The first underscore separates the section; the rest stay joined so
// multi-word keys survive.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if i := strings.Index(s, "_"); i > 0 {
		section := s[:i]
		switch section {
		case "catalog", "storage", "spotify", "simulation", "recommend", "logging":
			return section + "." + s[i+1:]
		}
	}
	return s
}

func findConfigFile() string {
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path must be set")
	}
	if c.Simulate.Days < 1 {
		return fmt.Errorf("simulation.days must be at least 1, got %d", c.Simulate.Days)
	}
	if c.Simulate.Workers < 1 {
		return fmt.Errorf("simulation.workers must be at least 1, got %d", c.Simulate.Workers)
	}
	if c.Simulate.PopAgents+c.Simulate.ClassicalAgents+c.Simulate.GeneralAgents < 1 {
		return fmt.Errorf("at least one agent is required")
	}
	switch c.Simulate.PlaylistMode {
	case "genre", "mixed":
	default:
		return fmt.Errorf("simulation.playlist_mode must be genre or mixed, got %q", c.Simulate.PlaylistMode)
	}
	if c.Recommend.ContentWeight < 0 || c.Recommend.CollabWeight < 0 {
		return fmt.Errorf("recommend weights must be non-negative")
	}
	if c.Recommend.ContentWeight+c.Recommend.CollabWeight == 0 {
		return fmt.Errorf("recommend weights must not both be zero")
	}
	if c.Recommend.CandidateMultiplier < 1 {
		return fmt.Errorf("recommend.candidate_multiplier must be at least 1, got %d", c.Recommend.CandidateMultiplier)
	}
	if c.Recommend.RecencyWindow < 0 {
		return fmt.Errorf("recommend.recency_window must not be negative")
	}
	return nil
}
