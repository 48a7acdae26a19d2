package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/secrust-go/secrust/cfg"
	"github.com/secrust-go/secrust/contracts"
	"github.com/secrust-go/secrust/source"
)

const triangularSum = `
package fixture

import "github.com/secrust-go/secrust/secrustlang"

func TriangularSum(n int) int {
	secrustlang.Pre(n >= 0)
	sum := 0
	i := 0
	for i <= n {
		secrustlang.Invariant(sum == i*(i-1)/2)
		sum = sum + i
		i = i + 1
	}
	secrustlang.Post(sum == n*(n+1)/2)
	return sum
}
`

func build(t *testing.T, src string) *cfg.Graph {
	t.Helper()
	prog, err := source.Parse("fixture.go", src)
	require.NoError(t, err)
	fns := prog.Functions()
	require.Len(t, fns, 1)
	b := cfg.NewBuilder(prog, contracts.Table{}, false)
	g, err := b.Build(fns[0])
	require.NoError(t, err)
	return g
}

func TestBuildTriangularSum(t *testing.T) {
	g := build(t, triangularSum)

	var (
		hasPre, hasPost, hasInvariant, hasReturn bool
		conditionCount                           int
	)
	for _, n := range g.Nodes() {
		switch n.(type) {
		case *cfg.PreconditionNode:
			hasPre = true
		case *cfg.PostconditionNode:
			hasPost = true
		case *cfg.InvariantNode:
			hasInvariant = true
		case *cfg.ReturnNode:
			hasReturn = true
		case *cfg.ConditionNode:
			conditionCount++
		}
	}

	require.True(t, hasPre, "expected a precondition node")
	require.True(t, hasPost, "expected a postcondition node")
	require.True(t, hasInvariant, "expected the loop's invariant node")
	require.True(t, hasReturn, "expected a return node")
	require.Equal(t, 1, conditionCount, "expected exactly one loop condition node")
}

const ifElseBoth = `
package fixture

import "github.com/secrust-go/secrust/secrustlang"

func Abs(x int) int {
	secrustlang.Pre(true)
	if x < 0 {
		x = 0 - x
	} else {
		x = x
	}
	secrustlang.Post(x >= 0)
	return x
}
`

func TestBuildIfElseMerges(t *testing.T) {
	g := build(t, ifElseBoth)

	var conditionCount, mergeCount int
	for _, n := range g.Nodes() {
		switch n.(type) {
		case *cfg.ConditionNode:
			conditionCount++
		case *cfg.MergePointNode:
			mergeCount++
		}
	}
	require.Equal(t, 1, conditionCount)
	// Simplify should have spliced the two-predecessor,
	// single-successor merge point away.
	require.Equal(t, 0, mergeCount)
}

func TestMissingInvariantSynthesizesCutoff(t *testing.T) {
	src := `
package fixture

import "github.com/secrust-go/secrust/secrustlang"

func Count(n int) int {
	secrustlang.Pre(n >= 0)
	i := 0
	for i < n {
		i = i + 1
	}
	secrustlang.Post(i == n)
	return i
}
`
	g := build(t, src)

	var hasCutoff, hasInvariant bool
	for _, n := range g.Nodes() {
		switch n.(type) {
		case *cfg.CutoffNode:
			hasCutoff = true
		case *cfg.InvariantNode:
			hasInvariant = true
		}
	}
	require.True(t, hasCutoff, "expected a synthesized cutoff node for the missing invariant")
	require.False(t, hasInvariant)
}
