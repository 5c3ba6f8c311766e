// Package fixture builds synthetic dependency graphs for tests, the "gen"
// CLI subcommand, and manual experimentation: linear chains, fan-outs, and
// diamonds, the three shapes spec.md's end-to-end scenarios exercise.
//
// Connection IDs are minted with xid rather than hand-rolled counters so
// fixtures compose without ID collisions when concatenated. Nodes get no
// ID or Label here.
package fixture

import (
	"github.com/rs/xid"

	"github.com/pageflight/pageflight/sim"
)

// Shape selects which synthetic graph Build constructs.
type Shape string

const (
	// ShapeChain is a linear dependency chain: A -> B -> C -> ...
	ShapeChain Shape = "chain"
	// ShapeFanOut is N independent siblings hanging off one CPU root.
	ShapeFanOut Shape = "fanout"
	// ShapeDiamond is a root, two parallel branches, and a join node that
	// depends on both branches completing.
	ShapeDiamond Shape = "diamond"
)

// Options configures the generated graph.
type Options struct {
	Shape          Shape
	Count          int   // number of leaf/chain nodes (ignored for diamond)
	TransferSize   int64 // bytes per network node
	SSL            bool
	SameConnection bool // chain/fanout: true reuses one connection ID for every node
}

// Build constructs a graph of the requested shape. Every NETWORK node gets
// a freshly minted xid as its connection ID unless opts.SameConnection is
// set, in which case every NETWORK node of a chain or fan-out shares one
// connection ID. Diamond graphs ignore SameConnection and always use four
// distinct connection IDs.
func Build(opts Options) *sim.Graph {
	switch opts.Shape {
	case ShapeFanOut:
		return buildFanOut(opts)
	case ShapeDiamond:
		return buildDiamond(opts)
	default:
		return buildChain(opts)
	}
}

func newNetworkNode(connID string, opts Options) *sim.Node {
	return &sim.Node{
		Kind: sim.KindNetwork,
		Record: &sim.Record{
			ConnectionID: connID,
			TransferSize: opts.TransferSize,
			SSL:          opts.SSL,
		},
	}
}

func buildChain(opts Options) *sim.Graph {
	sharedConn := xid.New().String()
	root := newNetworkNode(connIDFor(sharedConn, opts), opts)
	g := sim.NewGraph(root)

	prev := root
	for i := 1; i < opts.Count; i++ {
		n := newNetworkNode(connIDFor(sharedConn, opts), opts)
		g.AddNode(n)
		g.AddDependency(prev, n)
		prev = n
	}
	return g
}

func buildFanOut(opts Options) *sim.Graph {
	root := &sim.Node{Kind: sim.KindCPU, CPUDuration: 0}
	g := sim.NewGraph(root)

	sharedConn := xid.New().String()
	for i := 0; i < opts.Count; i++ {
		n := newNetworkNode(connIDFor(sharedConn, opts), opts)
		g.AddNode(n)
		g.AddDependency(root, n)
	}
	return g
}

func buildDiamond(opts Options) *sim.Graph {
	root := newNetworkNode(xid.New().String(), opts)
	g := sim.NewGraph(root)

	left := newNetworkNode(xid.New().String(), opts)
	right := newNetworkNode(xid.New().String(), opts)
	g.AddNode(left)
	g.AddNode(right)
	g.AddDependency(root, left)
	g.AddDependency(root, right)

	join := newNetworkNode(xid.New().String(), opts)
	g.AddNode(join)
	g.AddDependency(left, join)
	g.AddDependency(right, join)

	return g
}

func connIDFor(shared string, opts Options) string {
	if opts.SameConnection {
		return shared
	}
	return xid.New().String()
}
