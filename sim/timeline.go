package sim

// NodeTiming records when a node started and finished, for testability —
// spec.md §6 asks the core to expose this alongside the total elapsed
// time.
type NodeTiming struct {
	Start float64
	End   float64
}

// Timeline maps each completed node to its observed start/end times.
type Timeline map[*Node]NodeTiming

// Result is the core's output: the total elapsed time and the per-node
// timeline that produced it.
type Result struct {
	TotalElapsedTime float64
	Timeline         Timeline
}
