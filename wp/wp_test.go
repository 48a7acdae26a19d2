package wp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/secrust-go/secrust/cfg"
	"github.com/secrust-go/secrust/contracts"
	"github.com/secrust-go/secrust/paths"
	"github.com/secrust-go/secrust/source"
	"github.com/secrust-go/secrust/wp"
)

const straightLine = `
package fixture

import "github.com/secrust-go/secrust/secrustlang"

func Inc(x int) int {
	secrustlang.Pre(x >= 0)
	x = x + 1
	secrustlang.Post(x >= 1)
	return x
}
`

func TestCalculateStraightLine(t *testing.T) {
	prog, err := source.Parse("fixture.go", straightLine)
	require.NoError(t, err)
	fns := prog.Functions()
	require.Len(t, fns, 1)

	b := cfg.NewBuilder(prog, contracts.Table{}, false)
	g, err := b.Build(fns[0])
	require.NoError(t, err)

	bp := paths.EnumerateBasic(g)
	require.NotEmpty(t, bp)

	var found bool
	for _, p := range bp {
		if _, ok := p.Start.(*cfg.PreconditionNode); !ok {
			continue
		}
		if _, ok := p.End.(*cfg.PostconditionNode); !ok {
			continue
		}
		found = true
		f, err := wp.Calculate(prog, p)
		require.NoError(t, err)
		// wp(x = x+1, x >= 1) is x+1 >= 1, chained behind the
		// precondition's assumption via ">>".
		require.Contains(t, f.String(), ">>")
		require.Contains(t, f.String(), "x+1 >= 1")
	}
	require.True(t, found, "expected a Pre -> Post basic path")
}
