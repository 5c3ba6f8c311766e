// The discrete-event scheduler: admits ready nodes subject to the global
// concurrency limit and per-connection reuse, partitions throughput evenly
// across in-flight nodes, advances the clock to the next completion, and
// applies incremental progress to every in-flight node.
//
// Grounded in the teacher's simulator.go Run() loop shape (a clock that
// only ever advances, a single authoritative step function) but rewritten
// around spec.md §4.3's admit/rebalance/advance/complete steps instead of
// an event heap, since this spec's loop always steps to the single next
// completion rather than draining an arbitrary event queue.

package sim

import "math"

// maxLoopIterations bounds the main loop; exceeding it raises
// ErrSimulationDivergence, almost always because of a cycle in the graph.
const maxLoopIterations = 10000

// auxState is the scheduler-owned bookkeeping for one in-flight node. It
// is retained in the aux map after completion so Timeline can report it.
type auxState struct {
	startTime            float64
	endTime              float64
	timeElapsed          float64
	overshoot            float64
	bytesDownloaded      float64
	estimatedTimeElapsed float64
}

// Estimate simulates graph under cfg and returns the predicted total
// elapsed time plus a per-node timeline. It is a pure function: identical
// inputs always produce identical outputs, and performs no I/O.
func Estimate(g *Graph, cfg Config) (Result, error) {
	connections := buildConnections(g, cfg)

	maxConcurrent := cfg.MaximumConcurrentRequests
	if saturated := MaximumSaturatedConnections(cfg.RTT, cfg.Throughput); saturated < maxConcurrent {
		maxConcurrent = saturated
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	ready := newNodeSet()
	inProcess := newNodeSet()
	completed := newNodeSet()
	connectionsInUse := newStringSet()
	aux := make(map[*Node]*auxState)

	ready.Add(g.RootNode())

	var clock float64
	for iterations := 0; ready.Len() > 0 || inProcess.Len() > 0; iterations++ {
		if iterations >= maxLoopIterations {
			return Result{}, ErrSimulationDivergence
		}

		admit(ready, inProcess, connectionsInUse, aux, maxConcurrent, clock)
		if inProcess.Len() == 0 {
			continue
		}

		rebalance(inProcess, connections, cfg.Throughput)

		delta, err := findNextCompletion(inProcess, aux, connections)
		if err != nil {
			return Result{}, err
		}
		clock += delta

		if err := advance(inProcess, completed, ready, connectionsInUse, aux, connections, delta, clock); err != nil {
			return Result{}, err
		}
	}

	timeline := make(Timeline, completed.Len())
	for _, n := range completed.Items() {
		a := aux[n]
		timeline[n] = NodeTiming{Start: a.startTime, End: a.endTime}
	}
	return Result{TotalElapsedTime: clock, Timeline: timeline}, nil
}

// buildConnections collects every NETWORK node registered with the graph,
// groups them by connection ID, and creates one Connection per group: SSL
// taken from the first record seen in the group, response time the
// minimum of the group's present response times, falling back to
// cfg.DefaultResponseTime when none is present.
func buildConnections(g *Graph, cfg Config) map[string]*Connection {
	type group struct {
		ssl              bool
		minResponseTime  float64
		haveResponseTime bool
	}
	groups := make(map[string]*group)
	var order []string

	g.Traverse(func(n *Node) {
		if n.Kind != KindNetwork {
			return
		}
		r := n.Record
		grp, ok := groups[r.ConnectionID]
		if !ok {
			grp = &group{ssl: r.SSL, minResponseTime: math.Inf(1)}
			groups[r.ConnectionID] = grp
			order = append(order, r.ConnectionID)
		}
		if r.HasResponseTime {
			grp.haveResponseTime = true
			grp.minResponseTime = math.Min(grp.minResponseTime, r.ResponseTime)
		}
	})

	connections := make(map[string]*Connection, len(order))
	for _, id := range order {
		grp := groups[id]
		responseTime := cfg.DefaultResponseTime
		if grp.haveResponseTime {
			responseTime = grp.minResponseTime
		}
		connections[id] = NewConnection(cfg.RTT, cfg.Throughput, responseTime, grp.ssl)
	}
	return connections
}

// admit moves ready nodes into inProcess while the global concurrency cap
// and per-connection reuse rule allow it. Iterates a snapshot of ready so
// admissions within this pass don't perturb iteration order.
//
// CPU nodes skip the connection-reuse check (they use no connection) but
// still count toward the global concurrency cap, per spec.md §3's
// invariant that in-flight.size never exceeds maximumConcurrentRequests.
func admit(ready, inProcess *nodeSet, connectionsInUse *stringSet, aux map[*Node]*auxState, maxConcurrent int, clock float64) {
	for _, n := range append([]*Node(nil), ready.Items()...) {
		if inProcess.Len() >= maxConcurrent {
			continue
		}
		if n.Kind == KindNetwork {
			if connectionsInUse.Has(n.Record.ConnectionID) {
				continue
			}
			connectionsInUse.Add(n.Record.ConnectionID)
		}
		ready.Remove(n)
		inProcess.Add(n)
		aux[n] = &auxState{startTime: clock}
	}
}

// rebalance splits totalThroughput evenly across every in-flight node
// (network and CPU alike — CPU nodes occupy an inProcess slot even though
// they don't consume bandwidth, so they count toward the split divisor)
// and writes each in-use connection's share.
func rebalance(inProcess *nodeSet, connections map[string]*Connection, totalThroughput float64) {
	seen := make(map[*Connection]bool)
	share := totalThroughput / float64(inProcess.Len())
	for _, n := range inProcess.Items() {
		if n.Kind != KindNetwork {
			continue
		}
		conn := connections[n.Record.ConnectionID]
		if seen[conn] {
			continue
		}
		seen[conn] = true
		conn.SetThroughput(share)
	}
}

// nodeEstimate returns the time remaining until n would complete if left
// undisturbed: for NETWORK nodes the no-deadline connection query's
// TimeElapsed plus the node's overshoot, for CPU nodes the unconsumed part
// of CPUDuration. Any other kind yields ErrUnsupportedNodeKind.
func nodeEstimate(n *Node, a *auxState, connections map[string]*Connection) (float64, error) {
	switch n.Kind {
	case KindNetwork:
		conn := connections[n.Record.ConnectionID]
		remaining := float64(n.Record.TransferSize) - a.bytesDownloaded
		result := conn.CalculateTimeToDownload(remaining, a.timeElapsed, math.Inf(1))
		return result.TimeElapsed + a.overshoot, nil
	case KindCPU:
		return math.Max(n.CPUDuration-a.timeElapsed, 0), nil
	default:
		return 0, ErrUnsupportedNodeKind
	}
}

// findNextCompletion queries every in-flight node's estimated time to
// completion (storing it on its aux state for the tie-break in advance)
// and returns the minimum — the step length Δt for this iteration.
func findNextCompletion(inProcess *nodeSet, aux map[*Node]*auxState, connections map[string]*Connection) (float64, error) {
	delta := math.Inf(1)
	for _, n := range inProcess.Items() {
		a := aux[n]
		estimate, err := nodeEstimate(n, a, connections)
		if err != nil {
			return 0, err
		}
		a.estimatedTimeElapsed = estimate
		delta = math.Min(delta, estimate)
	}
	return delta, nil
}

// advance applies exactly delta ms of progress to every in-flight node.
// A node whose previously stored estimate equals delta is a finisher: its
// connection is marked warmed and freed, the node moves to completed, and
// every dependent with all dependencies completed becomes ready. Every
// other node accrues partial progress, tracking the RTT-quantization
// residue in its overshoot field.
func advance(inProcess, completed, ready *nodeSet, connectionsInUse *stringSet, aux map[*Node]*auxState, connections map[string]*Connection, delta, clock float64) error {
	for _, n := range append([]*Node(nil), inProcess.Items()...) {
		a := aux[n]
		finisher := a.estimatedTimeElapsed == delta

		switch n.Kind {
		case KindNetwork:
			conn := connections[n.Record.ConnectionID]
			remaining := float64(n.Record.TransferSize) - a.bytesDownloaded
			deadline := delta - a.overshoot
			result := conn.CalculateTimeToDownload(remaining, a.timeElapsed, deadline)
			conn.SetCongestionWindow(result.CongestionWindow)

			if finisher {
				conn.SetWarmed(true)
				connectionsInUse.Remove(n.Record.ConnectionID)
			} else {
				a.timeElapsed += result.TimeElapsed
				a.overshoot += result.TimeElapsed - delta
				a.bytesDownloaded += result.BytesDownloaded
			}
		case KindCPU:
			if !finisher {
				a.timeElapsed += delta
			}
		default:
			return ErrUnsupportedNodeKind
		}

		if finisher {
			inProcess.Remove(n)
			completed.Add(n)
			a.endTime = clock
			for _, dep := range n.Dependents() {
				if allDependenciesCompleted(dep, completed) {
					ready.Add(dep)
				}
			}
		}
	}
	return nil
}

func allDependenciesCompleted(n *Node, completed *nodeSet) bool {
	for _, dep := range n.Dependencies() {
		if !completed.Has(dep) {
			return false
		}
	}
	return true
}
