// Package graphio loads dependency-graph fixtures from JSON files for the
// "estimate" and "batch" CLI commands. Graph construction from a real
// browser trace is out of scope per spec.md §1 — this is a minimal
// hand-authored fixture format, not a trace parser.
//
// encoding/json is used deliberately: no repo in the retrieval pack reaches
// for a third-party JSON library for a format this small and internal; the
// few pack go.mod files listing one (json-iterator, easyjson) pull it in
// indirectly through an unrelated Kubernetes/cloud client, never as a
// direct choice for a hand-authored fixture schema like this one.
package graphio

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/pageflight/pageflight/sim"
)

// nodeDoc is the wire shape of one graph node.
type nodeDoc struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"` // "network" or "cpu"
	DependsOn    []string `json:"dependsOn"`
	ConnectionID string   `json:"connectionId,omitempty"`
	TransferSize int64    `json:"transferSize,omitempty"`
	SSL          bool     `json:"ssl,omitempty"`
	ResponseTime *float64 `json:"responseTimeMs,omitempty"`
	CPUDuration  float64  `json:"cpuDurationMs,omitempty"`
}

// graphDoc is the wire shape of an entire fixture file: a flat node list
// plus the ID of the root.
type graphDoc struct {
	Root  string    `json:"root"`
	Nodes []nodeDoc `json:"nodes"`
}

// Load reads and parses a JSON graph fixture from path.
func Load(path string) (*sim.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph: %w", err)
	}
	var doc graphDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing graph: %w", err)
	}
	return build(doc)
}

func build(doc graphDoc) (*sim.Graph, error) {
	nodes := make(map[string]*sim.Node, len(doc.Nodes))
	for _, d := range doc.Nodes {
		n, err := toNode(d)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", d.ID, err)
		}
		nodes[d.ID] = n
	}

	root, ok := nodes[doc.Root]
	if !ok {
		return nil, fmt.Errorf("root node %q not found among %d nodes", doc.Root, len(doc.Nodes))
	}
	g := sim.NewGraph(root)
	for _, d := range doc.Nodes {
		if d.ID != doc.Root {
			g.AddNode(nodes[d.ID])
		}
	}
	for _, d := range doc.Nodes {
		for _, depID := range d.DependsOn {
			dep, ok := nodes[depID]
			if !ok {
				return nil, fmt.Errorf("node %q depends on unknown node %q", d.ID, depID)
			}
			g.AddDependency(dep, nodes[d.ID])
		}
	}
	return g, nil
}

// Save writes g to path in the same JSON fixture format Load reads. Nodes
// are assigned synthetic IDs in traversal order: n0, n1, ... regardless of
// any Label set on the node, since Label is cosmetic and not guaranteed
// unique.
func Save(path string, g *sim.Graph) error {
	ids := make(map[*sim.Node]string)
	var nodes []nodeDoc
	i := 0
	g.Traverse(func(n *sim.Node) {
		id := "n" + strconv.Itoa(i)
		ids[n] = id
		i++
	})
	g.Traverse(func(n *sim.Node) {
		d := nodeDoc{ID: ids[n]}
		for _, dep := range n.Dependencies() {
			d.DependsOn = append(d.DependsOn, ids[dep])
		}
		switch n.Kind {
		case sim.KindCPU:
			d.Kind = "cpu"
			d.CPUDuration = n.CPUDuration
		case sim.KindNetwork:
			d.Kind = "network"
			d.ConnectionID = n.Record.ConnectionID
			d.TransferSize = n.Record.TransferSize
			d.SSL = n.Record.SSL
			if n.Record.HasResponseTime {
				rt := n.Record.ResponseTime
				d.ResponseTime = &rt
			}
		}
		nodes = append(nodes, d)
	})

	doc := graphDoc{Root: ids[g.RootNode()], Nodes: nodes}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing graph: %w", err)
	}
	return nil
}

func toNode(d nodeDoc) (*sim.Node, error) {
	switch d.Kind {
	case "cpu":
		return &sim.Node{Kind: sim.KindCPU, CPUDuration: d.CPUDuration, Label: d.ID}, nil
	case "network", "":
		record := &sim.Record{
			ConnectionID: d.ConnectionID,
			TransferSize: d.TransferSize,
			SSL:          d.SSL,
		}
		if d.ResponseTime != nil {
			record.ResponseTime = *d.ResponseTime
			record.HasResponseTime = true
		}
		return &sim.Node{Kind: sim.KindNetwork, Record: record, Label: d.ID}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", d.Kind)
	}
}
