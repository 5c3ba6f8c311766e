// cmd/estimate.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pageflight/pageflight/internal/graphio"
	"github.com/pageflight/pageflight/internal/report"
	"github.com/pageflight/pageflight/sim"
)

var (
	estimateConfigPath string
	estimatePreset     string
	estimateTimeline   bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <graph.json>",
	Short: "Estimate total page-load elapsed time for a single dependency graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := graphio.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading graph: %w", err)
		}

		cfg, err := resolveConfig(estimateConfigPath, estimatePreset)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"graph":  args[0],
			"rtt_ms": cfg.RTT,
		}).Info("running estimate")

		result, err := sim.Estimate(g, cfg)
		if err != nil {
			return fmt.Errorf("estimate: %w", err)
		}

		if estimateTimeline {
			report.PrintTimeline(os.Stdout, result)
		} else {
			fmt.Printf("total elapsed time: %.1fms\n", result.TotalElapsedTime)
		}
		return nil
	},
}

// resolveConfig applies, in order of precedence: an explicit --config file,
// a named --preset, or the package defaults. configPath and preset are
// mutually exclusive.
func resolveConfig(configPath, preset string) (sim.Config, error) {
	switch {
	case configPath != "" && preset != "":
		return sim.Config{}, fmt.Errorf("--config and --preset are mutually exclusive")
	case configPath != "":
		return sim.LoadConfig(configPath)
	case preset != "":
		return sim.NewPresetConfig(preset)
	default:
		return sim.NewConfig(), nil
	}
}

func init() {
	estimateCmd.Flags().StringVar(&estimateConfigPath, "config", "", "Path to a YAML network condition config")
	estimateCmd.Flags().StringVar(&estimatePreset, "preset", "", fmt.Sprintf("Named network condition preset (%s)", joinPresets()))
	estimateCmd.Flags().BoolVar(&estimateTimeline, "timeline", false, "Print a per-node start/end timeline instead of just the total")
}

func joinPresets() string {
	names := sim.ValidPresetNames()
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
