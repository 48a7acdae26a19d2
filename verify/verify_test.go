package verify_test

import (
	"go/ast"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/secrust-go/secrust/cfg"
	"github.com/secrust-go/secrust/solve"
	"github.com/secrust-go/secrust/source"
	"github.com/secrust-go/secrust/verify"
	"github.com/secrust-go/secrust/wp"
)

// writeFixture writes src to a temp file under t's scratch directory
// and returns its path, so each scenario can be driven through the
// real verify.Run entry point (file in, report out) rather than
// reaching into the pipeline's internals.
func writeFixture(t *testing.T, name, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

// parseCondition parses a bare boolean expression into a wp.Formula,
// for scenarios that check a formula directly rather than through a
// full verify.Run (scenario 6's standalone satisfiability check).
func parseCondition(t *testing.T, src string) wp.Formula {
	t.Helper()
	prog, err := source.Parse("cond.go", "package fixture\nvar _ = "+src+"\n")
	require.NoError(t, err)
	decl := prog.File.Decls[0].(*ast.GenDecl)
	spec := decl.Specs[0].(*ast.ValueSpec)
	return wp.Formula{Expr: spec.Values[0], Fset: prog}
}

func runDefault(t *testing.T, path string) verify.Report {
	t.Helper()
	report, err := verify.Run(path, verify.Options{SolverBound: 20})
	require.NoError(t, err)
	return report
}

// scenario 1 (spec.md §8): triangular sum, three basic paths, all valid.
func TestTriangularSumAllPathsValid(t *testing.T) {
	path := writeFixture(t, "triangular_sum.go", `
package fixture

import "github.com/secrust-go/secrust/secrustlang"

func TriangularSum(n int) int {
	secrustlang.Pre(n >= 0)
	i := 1
	sum := 0
	for i <= n {
		secrustlang.Invariant(i <= n+1 && sum == (i-1)*i/2)
		sum = sum + i
		i = i + 1
	}
	secrustlang.Post(sum == n*(n+1)/2)
	return sum
}
`)
	report := runDefault(t, path)
	require.Len(t, report.Functions, 1)
	fn := report.Functions[0]
	require.Equal(t, verify.Proved, fn.Verdict, "expected every basic path to be valid")
	require.GreaterOrEqual(t, len(fn.Paths), 3, "expect at least pre->inv, inv&&!guard->post, inv&&guard->inv'")
	for _, p := range fn.Paths {
		require.Equal(t, solve.Valid, p.Result.Verdict, p.Formula.String())
	}

	var sawPreToInv, sawInvToInv, sawInvToPost bool
	for _, p := range fn.Paths {
		_, startPre := p.Path.Start.(*cfg.PreconditionNode)
		_, startInv := p.Path.Start.(*cfg.InvariantNode)
		_, endInv := p.Path.End.(*cfg.InvariantNode)
		_, endPost := p.Path.End.(*cfg.PostconditionNode)
		switch {
		case startPre && endInv:
			sawPreToInv = true
		case startInv && endInv:
			sawInvToInv = true
		case startInv && endPost:
			sawInvToPost = true
		}
	}
	require.True(t, sawPreToInv, "expected a pre -> invariant path")
	require.True(t, sawInvToInv, "expected an invariant -> invariant (loop preservation) path")
	require.True(t, sawInvToPost, "expected an invariant -> postcondition path")
}

// scenario 2: off-by-one postcondition; the inv&&!guard->post path has
// a counterexample.
func TestOffByOnePostconditionDisproved(t *testing.T) {
	path := writeFixture(t, "off_by_one.go", `
package fixture

import "github.com/secrust-go/secrust/secrustlang"

func TriangularSumBroken(n int) int {
	secrustlang.Pre(n >= 0)
	i := 1
	sum := 0
	for i <= n {
		secrustlang.Invariant(i <= n+1 && sum == (i-1)*i/2)
		sum = sum + i
		i = i + 1
	}
	secrustlang.Post(sum == n*(n-1)/2)
	return sum
}
`)
	report := runDefault(t, path)
	require.Len(t, report.Functions, 1)
	fn := report.Functions[0]
	require.Equal(t, verify.Disproved, fn.Verdict)

	var sawInvalid bool
	for _, p := range fn.Paths {
		if p.Result.Verdict == solve.Invalid {
			sawInvalid = true
			require.Contains(t, p.Result.Model, "n")
		}
	}
	require.True(t, sawInvalid, "expected the postcondition path to carry a counterexample")
}

// scenario 3: same as scenario 1 but with the invariant line dropped;
// a synthetic Cutoff takes its place, the generated obligations are
// weaker, and the run still completes without erroring.
func TestMissingInvariantSynthesizesCutoff(t *testing.T) {
	path := writeFixture(t, "missing_invariant.go", `
package fixture

import "github.com/secrust-go/secrust/secrustlang"

func TriangularSumNoInvariant(n int) int {
	secrustlang.Pre(n >= 0)
	i := 1
	sum := 0
	for i <= n {
		sum = sum + i
		i = i + 1
	}
	secrustlang.Post(sum == n*(n+1)/2)
	return sum
}
`)
	report := runDefault(t, path)
	require.Len(t, report.Functions, 1)
	fn := report.Functions[0]
	require.NotEqual(t, verify.Errored, fn.Verdict)
	require.NotEmpty(t, fn.Paths)

	var hasCutoff, hasInvariant bool
	for _, n := range fn.Graph.Nodes() {
		switch n.(type) {
		case *cfg.CutoffNode:
			hasCutoff = true
		case *cfg.InvariantNode:
			hasInvariant = true
		}
	}
	require.True(t, hasCutoff, "expected a synthesized cutoff replacing the omitted invariant")
	require.False(t, hasInvariant)

	var sawTrivialPreservation bool
	for _, p := range fn.Paths {
		if _, ok := p.Path.Start.(*cfg.CutoffNode); ok {
			if _, ok := p.Path.End.(*cfg.CutoffNode); ok {
				sawTrivialPreservation = true
				require.Equal(t, solve.Valid, p.Result.Verdict, "a cutoff carries no obligation, so its self-loop path is vacuously valid")
			}
		}
	}
	require.True(t, sawTrivialPreservation)
}

// scenario 4: if/else, two basic paths, each valid.
func TestIfElseBothBranchesValid(t *testing.T) {
	path := writeFixture(t, "if_else.go", `
package fixture

import "github.com/secrust-go/secrust/secrustlang"

func Sign(x int) {
	secrustlang.Pre(true)
	if x > 0 {
		secrustlang.Post(x >= 0)
	} else {
		secrustlang.Post(x <= 0)
	}
}
`)
	report := runDefault(t, path)
	require.Len(t, report.Functions, 1)
	fn := report.Functions[0]
	require.Equal(t, verify.Proved, fn.Verdict)

	var sawTrueBranch, sawFalseBranch bool
	for _, p := range fn.Paths {
		if _, ok := p.Path.Start.(*cfg.PreconditionNode); !ok {
			continue
		}
		if post, ok := p.Path.End.(*cfg.PostconditionNode); ok {
			switch post.Text {
			case "x >= 0":
				sawTrueBranch = true
			case "x <= 0":
				sawFalseBranch = true
			}
		}
	}
	require.True(t, sawTrueBranch, "expected a pre -> post(x >= 0) path")
	require.True(t, sawFalseBranch, "expected a pre -> post(x <= 0) path")
}

// scenario 5: substitution through an invariant: after WP, x is
// replaced by its bound value and the formula becomes a closed
// arithmetic fact.
func TestSubstitutionThroughInvariant(t *testing.T) {
	path := writeFixture(t, "subst.go", `
package fixture

import "github.com/secrust-go/secrust/secrustlang"

func Const() {
	secrustlang.Pre(true)
	x := 2
	secrustlang.Invariant(x+1 == 3)
}
`)
	report := runDefault(t, path)
	require.Len(t, report.Functions, 1)
	fn := report.Functions[0]
	require.Equal(t, verify.Proved, fn.Verdict)

	var sawSubstituted bool
	for _, p := range fn.Paths {
		if p.Result.Verdict == solve.Valid {
			sawSubstituted = true
		}
	}
	require.True(t, sawSubstituted)
}

// scenario 6: pre!(i > 0 && i < 0) is unsatisfiable on its own, checked
// directly with CheckSat rather than through an implication's validity
// (SPEC_FULL.md §5 item 1's verify_unsat / CheckSat distinction).
func TestContradictionStandaloneUnsat(t *testing.T) {
	e := parseCondition(t, "i > 0 && i < 0")
	res, err := solve.CheckSat(e, 10)
	require.NoError(t, err)
	require.False(t, res.Satisfiable, "i > 0 && i < 0 should be unsatisfiable")
}
