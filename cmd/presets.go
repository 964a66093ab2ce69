package cmd

import (
	"fmt"
	"strings"

	"github.com/yevsky/NiDUC/sim/sla"
)

func server(name string, rate, repair, cost float64) ComponentSpec {
	return ComponentSpec{Name: name, FailureRate: rate, MeanRepairTime: repair, RepairCost: cost}
}

func tier(t sla.Thresholds) *sla.Thresholds { return &t }

// presets are the reference systems, each paired with the SLA tier it targets.
var presets = map[string]SystemConfig{
	"budget": {
		Name:                  "Budget",
		Description:           "three servers, no redundancy",
		RevenuePenaltyPerHour: 500,
		Components: []ComponentSpec{
			server("Budget_Server1", 0.01, 10, 100),
			server("Budget_Server2", 0.01, 11, 100),
			server("Budget_Server3", 0.008, 10, 100),
		},
		SLA: tier(sla.Budget),
	},
	"standard": {
		Name:                  "Standard",
		Description:           "three more reliable servers, no redundancy",
		RevenuePenaltyPerHour: 1000,
		Components: []ComponentSpec{
			server("Standard_Server1", 0.005, 5, 200),
			server("Standard_Server2", 0.004, 5, 200),
			server("Standard_Server3", 0.004, 5, 200),
		},
		SLA: tier(sla.Standard),
	},
	"premium": {
		Name:                  "Premium",
		Description:           "redundant primary server plus two single servers",
		RevenuePenaltyPerHour: 1500,
		Groups: []GroupSpec{{
			Name: "primary",
			Components: []ComponentSpec{
				server("Premium_Server1", 0.001, 2, 300),
				server("Premium_Server1_alt", 0.001, 2, 300),
			},
		}},
		Components: []ComponentSpec{
			server("Premium_Server2", 0.001, 2, 300),
			server("Premium_Server3", 0.001, 2, 300),
		},
		SLA: tier(sla.Premium),
	},
}

// presetOrder lists presets from least to most demanding.
var presetOrder = []string{"budget", "standard", "premium"}

// PresetNames returns the known preset keys in display order.
func PresetNames() []string {
	return append([]string(nil), presetOrder...)
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*SystemConfig, error) {
	cfg, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (known: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return &cfg, nil
}
