// cmd/batch.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pageflight/pageflight/internal/graphio"
	"github.com/pageflight/pageflight/internal/report"
	"github.com/pageflight/pageflight/sim"
)

var (
	batchConfigPath string
	batchPreset     string
	batchMetricsOut string
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Estimate every graph fixture in a directory and summarize the distribution of results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(batchConfigPath, batchPreset)
		if err != nil {
			return err
		}

		matches, err := filepath.Glob(filepath.Join(args[0], "*.json"))
		if err != nil {
			return fmt.Errorf("listing fixtures: %w", err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no *.json fixtures found in %s", args[0])
		}

		recorder := report.NewMetricsRecorder()
		elapsed := make([]float64, 0, len(matches))

		for _, path := range matches {
			g, err := graphio.Load(path)
			if err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}
			result, err := sim.Estimate(g, cfg)
			if err != nil {
				return fmt.Errorf("estimate %s: %w", path, err)
			}
			logrus.WithField("fixture", path).WithField("elapsed_ms", result.TotalElapsedTime).Debug("fixture estimated")
			elapsed = append(elapsed, result.TotalElapsedTime)
			recorder.Observe(result.TotalElapsedTime)
		}

		summary := report.Summarize(elapsed)
		fmt.Fprintf(os.Stdout, "runs=%d mean=%.1fms stddev=%.1fms p50=%.1fms p90=%.1fms p99=%.1fms min=%.1fms max=%.1fms\n",
			summary.Runs, summary.Mean, summary.StdDev, summary.P50, summary.P90, summary.P99, summary.Min, summary.Max)

		if batchMetricsOut != "" {
			f, err := os.Create(batchMetricsOut)
			if err != nil {
				return fmt.Errorf("creating metrics file: %w", err)
			}
			defer f.Close()
			if err := recorder.WriteExposition(f); err != nil {
				return fmt.Errorf("writing metrics: %w", err)
			}
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to a YAML network condition config")
	batchCmd.Flags().StringVar(&batchPreset, "preset", "", fmt.Sprintf("Named network condition preset (%s)", joinPresets()))
	batchCmd.Flags().StringVar(&batchMetricsOut, "metrics", "", "Write Prometheus text exposition to this file")
}
