// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"jobsearch-engine/internal/domain"

	"gopkg.in/yaml.v3"
)

// Expansion is an ordered key → phrases entry. Lists keep YAML order so that
// lookups which scan the table are deterministic.
type Expansion struct {
	Key      string   `yaml:"key" json:"key"`
	Variants []string `yaml:"variants" json:"variants"`
}

type Bucket struct {
	Name  string   `yaml:"name" json:"name"`
	Terms []string `yaml:"terms" json:"terms"`
}

type DegreeLevel struct {
	Name  string `yaml:"name" json:"name"`
	Level int    `yaml:"level" json:"level"`
}

// Tables holds every static lookup table used by the expander and scorers.
type Tables struct {
	Roles        []Expansion `yaml:"roles" json:"roles"`
	Tech         []Expansion `yaml:"tech" json:"tech"`
	RoleVariants []Expansion `yaml:"role_variants" json:"role_variants"`
	Areas        []string    `yaml:"areas" json:"areas"`
	TechSignals  []string    `yaml:"tech_signals" json:"tech_signals"`

	Exclusion         []string `yaml:"exclusion" json:"exclusion"`
	TechDomains       []Bucket `yaml:"tech_domains" json:"tech_domains"`
	InternshipMarkers []string `yaml:"internship_markers" json:"internship_markers"`
	SeniorityMarkers  []string `yaml:"seniority_markers" json:"seniority_markers"`
	QuerySeniority    []string `yaml:"query_seniority" json:"query_seniority"`

	Degrees       []DegreeLevel `yaml:"degrees" json:"degrees"`
	DegreeSignals []string      `yaml:"degree_signals" json:"degree_signals"`
	StopWords     []string      `yaml:"stop_words" json:"stop_words"`
}

type HTTPConfig struct {
	UserAgent      string  `yaml:"user_agent" json:"user_agent"`
	TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
	RatePerSecond  float64 `yaml:"rate_per_second" json:"rate_per_second"`
	Burst          int     `yaml:"burst" json:"burst"`
}

func (h HTTPConfig) Timeout() time.Duration {
	if h.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(h.TimeoutSeconds) * time.Second
}

type SearchConfig struct {
	Sites              []string `yaml:"sites" json:"sites"`
	ResultsWanted      int      `yaml:"results_wanted" json:"results_wanted"`
	Distance           int      `yaml:"distance" json:"distance"`
	Threshold          float64  `yaml:"threshold" json:"threshold"`
	MaxExpansions      int      `yaml:"max_expansions" json:"max_expansions"`
	MaxTotalExpansions int      `yaml:"max_total_expansions" json:"max_total_expansions"`
}

type Config struct {
	App struct {
		Addr    string `yaml:"addr" json:"addr"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	HTTP HTTPConfig `yaml:"http" json:"http"`

	Scrape struct {
		MaxConcurrency int `yaml:"max_concurrency" json:"max_concurrency"`
	} `yaml:"scrape" json:"scrape"`

	Search SearchConfig `yaml:"search" json:"search"`

	Boards struct {
		Endpoint       string `yaml:"endpoint" json:"endpoint"`
		TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	} `yaml:"boards" json:"boards"`

	Sources []domain.SourceDefinition `yaml:"sources" json:"sources"`
	Tables  Tables                    `yaml:"tables" json:"tables"`
}

// Load reads a YAML file on top of Default(). Lists present in the file
// replace the defaults wholesale; absent keys keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
