package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunConfig_Validate(t *testing.T) {
	valid := RunConfig{Duration: 2000, Trials: 1000, Seed: 42}

	tests := []struct {
		name    string
		mutate  func(*RunConfig)
		wantErr bool
	}{
		{"defaults", func(c *RunConfig) {}, false},
		{"parallel workers", func(c *RunConfig) { c.Workers = 8 }, false},
		{"events trace", func(c *RunConfig) { c.TraceLevel = "events" }, false},
		{"zero duration", func(c *RunConfig) { c.Duration = 0 }, true},
		{"negative duration", func(c *RunConfig) { c.Duration = -1 }, true},
		{"NaN duration", func(c *RunConfig) { c.Duration = math.NaN() }, true},
		{"infinite duration", func(c *RunConfig) { c.Duration = math.Inf(1) }, true},
		{"zero trials", func(c *RunConfig) { c.Trials = 0 }, true},
		{"negative workers", func(c *RunConfig) { c.Workers = -2 }, true},
		{"unknown trace level", func(c *RunConfig) { c.TraceLevel = "verbose" }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
