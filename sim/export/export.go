// Package export writes averaged simulation results in the Prometheus
// text exposition format, for pickup by a node-exporter textfile collector.
package export

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yevsky/NiDUC/sim"
	"github.com/yevsky/NiDUC/sim/sla"
)

const namespace = "niduc"

// Collector holds the gauges for one or more simulated systems.
type Collector struct {
	registry *prometheus.Registry

	availability   *prometheus.GaugeVec
	availabilityCI *prometheus.GaugeVec
	breaks         *prometheus.GaugeVec
	totalBreak     *prometheus.GaugeVec
	maxBreak       *prometheus.GaugeVec
	revenueLost    *prometheus.GaugeVec
	costPerYear    *prometheus.GaugeVec
	trials         *prometheus.GaugeVec
	compliant      *prometheus.GaugeVec
}

func gauge(name, help string, labels ...string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
}

// NewCollector creates a Collector backed by a private registry.
func NewCollector() *Collector {
	c := &Collector{
		registry:       prometheus.NewRegistry(),
		availability:   gauge("availability_mean", "Mean availability across trials.", "system"),
		availabilityCI: gauge("availability_ci95", "Half-width of the 95% confidence interval of mean availability.", "system"),
		breaks:         gauge("breaks_mean", "Mean number of component failures per trial.", "system"),
		totalBreak:     gauge("total_break_hours_mean", "Mean total system downtime per trial in hours.", "system"),
		maxBreak:       gauge("max_break_hours_mean", "Mean longest system downtime per trial in hours.", "system"),
		revenueLost:    gauge("revenue_lost_mean", "Mean revenue lost per trial.", "system"),
		costPerYear:    gauge("cost_per_year", "Mean revenue lost scaled to one year.", "system"),
		trials:         gauge("trials", "Number of simulated trials.", "system"),
		compliant:      gauge("sla_compliant", "1 if the averaged metrics meet the SLA tier, 0 otherwise.", "system", "sla"),
	}
	c.registry.MustRegister(c.availability, c.availabilityCI, c.breaks, c.totalBreak,
		c.maxBreak, c.revenueLost, c.costPerYear, c.trials, c.compliant)
	return c
}

// Registry returns the registry holding the gauges.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Observe sets the gauges of one system. report may be nil when no SLA was checked.
func (c *Collector) Observe(system string, results *sim.Results, report *sla.Report) {
	avg := results.Averages()
	summary := results.Summary()

	c.availability.WithLabelValues(system).Set(avg.Availability)
	c.availabilityCI.WithLabelValues(system).Set(summary.Availability.CI95)
	c.breaks.WithLabelValues(system).Set(avg.Breaks)
	c.totalBreak.WithLabelValues(system).Set(avg.TotalBreakTime)
	c.maxBreak.WithLabelValues(system).Set(avg.MaxBreakTime)
	c.revenueLost.WithLabelValues(system).Set(avg.RevenueLost)
	c.costPerYear.WithLabelValues(system).Set(avg.CostPerYear)
	c.trials.WithLabelValues(system).Set(float64(results.Len()))
	if report != nil {
		v := 0.0
		if report.Compliant {
			v = 1
		}
		c.compliant.WithLabelValues(system, report.Name).Set(v)
	}
}

// WriteTextfile writes every observed gauge to path atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
