package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yevsky/NiDUC/sim"
)

const groupedYAML = `
name: lab
revenue_penalty_per_hour: 250
groups:
  - name: db
    components:
      - {name: db1, failure_rate: 0.002, mean_repair_time: 4, repair_cost: 120}
      - {name: db2, failure_rate: 0.002, mean_repair_time: 4, repair_cost: 120}
components:
  - {name: web, failure_rate: 0.01, mean_repair_time: 1, repair_cost: 50}
sla:
  name: Lab
  availability: 0.99
  max_breaks: 5
simulation:
  duration: 500
  trials: 20
  seed: 7
`

func TestParseSystemConfig_GroupsAndFlatComponents(t *testing.T) {
	cfg, err := ParseSystemConfig(strings.NewReader(groupedYAML))
	require.NoError(t, err)

	assert.Equal(t, "lab", cfg.Name)
	assert.Equal(t, 250.0, cfg.RevenuePenaltyPerHour)
	require.NotNil(t, cfg.SLA)
	assert.Equal(t, "Lab", cfg.SLA.Name)
	require.NotNil(t, cfg.SLA.MaxBreaks)
	assert.Equal(t, 5, *cfg.SLA.MaxBreaks)
	assert.Nil(t, cfg.SLA.MaxBreakTime)
	assert.Equal(t, 500.0, cfg.Simulation.Duration)
	require.NotNil(t, cfg.Simulation.Seed)
	assert.Equal(t, int64(7), *cfg.Simulation.Seed)

	system, err := cfg.Build()
	require.NoError(t, err)
	groups := system.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "db", groups[0].Name)
	assert.Len(t, groups[0].Components, 2)
	// flat components follow the explicit groups as singleton groups
	assert.Equal(t, "web", groups[1].Name)
	assert.Len(t, groups[1].Components, 1)
	assert.Equal(t, 3, system.NumComponents())
}

func TestParseSystemConfig_JSON(t *testing.T) {
	// GIVEN the same schema written as JSON
	input := `{"name": "json", "revenue_penalty_per_hour": 10,
  "components": [{"name": "a", "failure_rate": 0.1, "mean_repair_time": 2, "repair_cost": 1}]}`

	cfg, err := ParseSystemConfig(strings.NewReader(input))
	require.NoError(t, err)

	system, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, system.NumComponents())
	assert.Nil(t, cfg.SLA)
}

func TestParseSystemConfig_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"unknown top-level field", "name: x\nrevenue_penalty: 5\n"},
		{"typo in component field", "components:\n  - {name: a, failure_rat: 0.1, mean_repair_time: 1}\n"},
		{"availability above one", "sla: {availability: 1.5}\n"},
		{"negative break limit", "sla: {max_breaks: -1}\n"},
		{"malformed yaml", "groups: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSystemConfig(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, sim.ErrInvalidConfig)
		})
	}
}

func TestSystemConfig_Build_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  SystemConfig
	}{
		{"no components", SystemConfig{Name: "empty"}},
		{"empty group", SystemConfig{Groups: []GroupSpec{{Name: "g"}}}},
		{"unnamed component", SystemConfig{Components: []ComponentSpec{{MeanRepairTime: 1}}}},
		{"duplicate names", SystemConfig{Components: []ComponentSpec{
			server("a", 0.1, 1, 0), server("a", 0.1, 1, 0),
		}}},
		{"negative repair time", SystemConfig{Components: []ComponentSpec{server("a", 0.1, -1, 0)}}},
		{"negative penalty", SystemConfig{RevenuePenaltyPerHour: -1, Components: []ComponentSpec{server("a", 0.1, 1, 0)}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.Build()
			assert.ErrorIs(t, err, sim.ErrInvalidConfig)
		})
	}
}

func TestSystemConfig_Build_NamesUnlabelledGroups(t *testing.T) {
	cfg := SystemConfig{Groups: []GroupSpec{
		{Components: []ComponentSpec{server("a", 0.1, 1, 0)}},
		{Components: []ComponentSpec{server("b", 0.1, 1, 0)}},
	}}

	system, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, "group_0", system.Groups()[0].Name)
	assert.Equal(t, "group_1", system.Groups()[1].Name)
}

func TestLoadSystemConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("name defaults to path", func(t *testing.T) {
		path := filepath.Join(dir, "unnamed.yaml")
		require.NoError(t, os.WriteFile(path, []byte("components:\n  - {name: a, failure_rate: 0.1, mean_repair_time: 1}\n"), 0644))

		cfg, err := LoadSystemConfig(path)
		require.NoError(t, err)
		assert.Equal(t, path, cfg.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSystemConfig(filepath.Join(dir, "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("parse error names the file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("bogus: 1\n"), 0644))

		_, err := LoadSystemConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.yaml")
		assert.ErrorIs(t, err, sim.ErrInvalidConfig)
	})
}
