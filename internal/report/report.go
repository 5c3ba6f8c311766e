// Package report renders estimator output for the CLI: a colorized
// per-node timeline table and cross-run aggregate statistics. Nothing
// here is imported by the sim package — reporting is ambient plumbing
// around the pure core, per spec.md's "CLI and reporting" out-of-scope
// note.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/pageflight/pageflight/sim"
)

// critical returns the set of nodes on the critical path: the node with
// the latest End time, and its chain of dependencies back to the root,
// following whichever dependency finished latest at each step.
func critical(timeline sim.Timeline) map[*sim.Node]bool {
	var latest *sim.Node
	for n, timing := range timeline {
		if latest == nil || timing.End > timeline[latest].End {
			latest = n
		}
	}
	path := make(map[*sim.Node]bool)
	for n := latest; n != nil; {
		path[n] = true
		var next *sim.Node
		for _, dep := range n.Dependencies() {
			if next == nil || timeline[dep].End > timeline[next].End {
				next = dep
			}
		}
		n = next
	}
	return path
}

// PrintTimeline writes a per-node start/end table to w, highlighting the
// critical path in green when color output is enabled.
func PrintTimeline(w io.Writer, result sim.Result) {
	onCriticalPath := critical(result.Timeline)

	type row struct {
		node   *sim.Node
		timing sim.NodeTiming
	}
	rows := make([]row, 0, len(result.Timeline))
	for n, timing := range result.Timeline {
		rows = append(rows, row{n, timing})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].timing.Start < rows[j].timing.Start })

	critLine := color.New(color.FgGreen, color.Bold)
	fmt.Fprintf(w, "%-8s %10s %10s %10s  %s\n", "KIND", "START", "END", "DURATION", "CRITICAL")
	for _, r := range rows {
		duration := r.timing.End - r.timing.Start
		line := fmt.Sprintf("%-8s %10.1f %10.1f %10.1f", r.node.Kind, r.timing.Start, r.timing.End, duration)
		if onCriticalPath[r.node] {
			critLine.Fprintln(w, line+"  *")
		} else {
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintf(w, "\ntotal elapsed time: %.1fms\n", result.TotalElapsedTime)
}
