package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yevsky/NiDUC/sim"
	"github.com/yevsky/NiDUC/sim/sla"
	"github.com/yevsky/NiDUC/sim/trace"
)

// SystemRun is the outcome of simulating one configured system.
type SystemRun struct {
	Name    string
	Config  sim.RunConfig
	Output  *sim.SimulationResult
	Report  *sla.Report // nil if no SLA was configured
	Average sim.Averages
}

// PrintReport writes the averaged metrics, SLA checks and an availability
// histogram for one system.
func PrintReport(w io.Writer, run SystemRun, bins int) {
	avg := run.Average
	summary := run.Output.Results.Summary()

	fmt.Fprintf(w, "=== %s ===\n", run.Name)
	fmt.Fprintf(w, "Trials                   : %d × %.2f h (seed %d)\n", run.Config.Trials, run.Config.Duration, run.Config.Seed)
	fmt.Fprintf(w, "Average Availability     : %.4f%% (±%.4f%%)\n", avg.Availability*100, summary.Availability.CI95*100)
	fmt.Fprintf(w, "Average Number of Breaks : %.2f\n", avg.Breaks)
	fmt.Fprintf(w, "Average Total Break Time : %.2f h\n", avg.TotalBreakTime)
	fmt.Fprintf(w, "Average Max Break Time   : %.2f h\n", avg.MaxBreakTime)
	fmt.Fprintf(w, "Average Repair Time      : %.2f h\n", avg.AverageRepairTime)
	fmt.Fprintf(w, "Average Revenue Lost     : %.2f\n", avg.RevenueLost)
	fmt.Fprintf(w, "Cost Per Year            : %.2f\n", avg.CostPerYear)

	if run.Report != nil {
		fmt.Fprintf(w, "SLA %-21s: compliant=%v\n", run.Report.Name, run.Report.Compliant)
		for _, c := range run.Report.Checks {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}

	if bins > 0 {
		fmt.Fprintln(w, "Availability distribution:")
		PrintHistogram(w, sim.Histogram(run.Output.Results.Availability, bins), 40)
	}

	if run.Output.Trace != nil {
		ts := trace.Summarize(run.Output.Trace)
		fmt.Fprintf(w, "Trace (trial %d)          : %d downtime intervals, longest %.2f h, %d events\n",
			run.Output.Trace.Trial, ts.Intervals, ts.LongestDowntime, ts.EventsRecorded)
	}
}

// PrintHistogram draws bins as horizontal bars scaled to width characters.
func PrintHistogram(w io.Writer, bins []sim.Bin, width int) {
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}
	for _, b := range bins {
		bar := 0
		if peak > 0 {
			bar = b.Count * width / peak
		}
		fmt.Fprintf(w, "  [%.4f, %.4f] %-*s %d\n", b.Lower, b.Upper, width, strings.Repeat("#", bar), b.Count)
	}
}

// PrintComparison writes one row per system, least to most demanding as given.
func PrintComparison(w io.Writer, runs []SystemRun) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYSTEM\tAVAILABILITY\tBREAKS\tTOTAL BREAK (h)\tMAX BREAK (h)\tREVENUE LOST\tSLA\tCOMPLIANT")
	for _, r := range runs {
		slaName, compliant := "-", "-"
		if r.Report != nil {
			slaName = r.Report.Name
			compliant = fmt.Sprintf("%v", r.Report.Compliant)
		}
		fmt.Fprintf(tw, "%s\t%.4f%%\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
			r.Name, r.Average.Availability*100, r.Average.Breaks, r.Average.TotalBreakTime,
			r.Average.MaxBreakTime, r.Average.RevenueLost, slaName, compliant)
	}
	tw.Flush()
}

// resultsFile is the JSON document written by --output.
type resultsFile struct {
	RunID   string       `json:"run_id"`
	Systems []systemJSON `json:"systems"`
}

type systemJSON struct {
	Name      string       `json:"name"`
	Duration  float64      `json:"duration_hours"`
	Trials    int          `json:"trials"`
	Seed      int64        `json:"seed"`
	WallTimeS float64      `json:"wall_time_s"`
	Averages  sim.Averages `json:"averages"`
	Summary   sim.Summary  `json:"summary"`
	SLA       *slaJSON     `json:"sla,omitempty"`
	Sequences sequences    `json:"sequences"`
}

type slaJSON struct {
	Name      string   `json:"name"`
	Compliant bool     `json:"compliant"`
	Failed    []string `json:"failed,omitempty"`
}

type sequences struct {
	Availability   []float64 `json:"availability"`
	BreakCount     []int     `json:"break_count"`
	TotalBreakTime []float64 `json:"total_break_time"`
	MaxBreakTime   []float64 `json:"max_break_time"`
	RevenueLost    []float64 `json:"revenue_lost"`
}

func toJSON(r SystemRun) systemJSON {
	res := r.Output.Results
	out := systemJSON{
		Name:      r.Name,
		Duration:  r.Config.Duration,
		Trials:    r.Config.Trials,
		Seed:      r.Config.Seed,
		WallTimeS: r.Output.WallTime.Seconds(),
		Averages:  r.Average,
		Summary:   res.Summary(),
		Sequences: sequences{
			Availability:   res.Availability,
			BreakCount:     res.BreakCount,
			TotalBreakTime: res.TotalBreakTime,
			MaxBreakTime:   res.MaxBreakTime,
			RevenueLost:    res.RevenueLost,
		},
	}
	if r.Report != nil {
		out.SLA = &slaJSON{Name: r.Report.Name, Compliant: r.Report.Compliant}
		for _, c := range r.Report.Failed() {
			out.SLA.Failed = append(out.SLA.Failed, c.Metric)
		}
	}
	return out
}

// SaveResults writes every run, including the per-trial sequences, as JSON.
func SaveResults(path string, runs []SystemRun) error {
	doc := resultsFile{RunID: uuid.NewString()}
	for _, r := range runs {
		doc.Systems = append(doc.Systems, toJSON(r))
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results %s: %w", path, err)
	}
	logrus.Infof("Results of run %s written to %s", doc.RunID, path)
	return nil
}
