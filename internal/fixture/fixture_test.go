package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageflight/pageflight/sim"
)

func TestBuild_Chain_LinksNodesSequentially(t *testing.T) {
	g := Build(Options{Shape: ShapeChain, Count: 3, TransferSize: 1000, SameConnection: true})

	var visited int
	g.Traverse(func(n *sim.Node) { visited++ })
	assert.Equal(t, 3, visited)

	root := g.RootNode()
	assert.Len(t, root.Dependents(), 1)
}

func TestBuild_FanOut_AllSiblingsDependOnCPURoot(t *testing.T) {
	g := Build(Options{Shape: ShapeFanOut, Count: 20, TransferSize: 500})

	root := g.RootNode()
	assert.Equal(t, sim.KindCPU, root.Kind)
	assert.Len(t, root.Dependents(), 20)
}

func TestBuild_Diamond_JoinDependsOnBothBranches(t *testing.T) {
	g := Build(Options{Shape: ShapeDiamond, TransferSize: 1000})

	root := g.RootNode()
	assert.Len(t, root.Dependents(), 2)
	join := root.Dependents()[0].Dependents()[0]
	assert.Len(t, join.Dependencies(), 2)
}

func TestBuild_DistinctConnectionIDsByDefault(t *testing.T) {
	g := Build(Options{Shape: ShapeChain, Count: 2, TransferSize: 1000})
	root := g.RootNode()
	child := root.Dependents()[0]
	assert.NotEqual(t, root.Record.ConnectionID, child.Record.ConnectionID)
}
