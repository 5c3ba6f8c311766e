package sim

import "errors"

// ErrUnsupportedNodeKind is returned when the scheduler is asked to
// progress a node whose Kind is neither NETWORK nor CPU, the only two kinds
// it has a progress path for. Both this and ErrSimulationDivergence are programmer
// errors: neither is recovered inside the core, both propagate to the
// caller and terminate the estimate.
var ErrUnsupportedNodeKind = errors.New("sim: unsupported node kind for this operation")

// ErrSimulationDivergence is returned when the main loop exceeds
// maxLoopIterations without draining the ready and in-flight sets —
// almost always a cycle in the graph.
var ErrSimulationDivergence = errors.New("sim: maximum depth exceeded")
