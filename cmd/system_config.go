package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yevsky/NiDUC/sim"
	"github.com/yevsky/NiDUC/sim/sla"
)

// ComponentSpec describes one component in a system file.
type ComponentSpec struct {
	Name           string  `yaml:"name"`
	FailureRate    float64 `yaml:"failure_rate"`
	MeanRepairTime float64 `yaml:"mean_repair_time"`
	RepairCost     float64 `yaml:"repair_cost"`
}

// GroupSpec describes one redundancy group.
type GroupSpec struct {
	Name       string          `yaml:"name"`
	Components []ComponentSpec `yaml:"components"`
}

// SimulationSpec holds optional run parameters; zero values mean "use the default".
type SimulationSpec struct {
	Duration float64 `yaml:"duration"`
	Trials   int     `yaml:"trials"`
	Seed     *int64  `yaml:"seed"`
}

// SystemConfig represents the full system file structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type SystemConfig struct {
	Name                  string          `yaml:"name"`
	Description           string          `yaml:"description"`
	RevenuePenaltyPerHour float64         `yaml:"revenue_penalty_per_hour"`
	Groups                []GroupSpec     `yaml:"groups"`
	Components            []ComponentSpec `yaml:"components"` // legacy flat list: one group per component
	SLA                   *sla.Thresholds `yaml:"sla"`
	Simulation            SimulationSpec  `yaml:"simulation"`
}

// ParseSystemConfig decodes a YAML or JSON system description.
// Unknown fields are rejected so that typos cause errors.
func ParseSystemConfig(r io.Reader) (*SystemConfig, error) {
	var cfg SystemConfig
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty system configuration", sim.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%w: %v", sim.ErrInvalidConfig, err)
	}
	if cfg.SLA != nil {
		if err := cfg.SLA.Validate(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// LoadSystemConfig reads and parses a system file.
func LoadSystemConfig(path string) (*SystemConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read system file %s: %w", path, err)
	}
	cfg, err := ParseSystemConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse system file %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = path
	}
	return cfg, nil
}

// Build converts the configuration into a validated sim.System.
// Flat components are appended as singleton groups after the explicit groups.
func (c *SystemConfig) Build() (*sim.System, error) {
	var groups []sim.Group
	for i, g := range c.Groups {
		group := sim.Group{Name: g.Name}
		if group.Name == "" {
			group.Name = fmt.Sprintf("group_%d", i)
		}
		for _, spec := range g.Components {
			comp, err := spec.build()
			if err != nil {
				return nil, err
			}
			group.Components = append(group.Components, comp)
		}
		groups = append(groups, group)
	}
	for _, spec := range c.Components {
		comp, err := spec.build()
		if err != nil {
			return nil, err
		}
		groups = append(groups, sim.Group{Name: comp.Name, Components: []*sim.Component{comp}})
	}
	return sim.NewSystem(c.Name, groups, c.RevenuePenaltyPerHour)
}

func (s ComponentSpec) build() (*sim.Component, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("%w: component without a name", sim.ErrInvalidConfig)
	}
	return sim.NewComponent(s.Name, s.FailureRate, s.MeanRepairTime, s.RepairCost)
}
