package solve_test

import (
	"go/ast"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/secrust-go/secrust/solve"
	"github.com/secrust-go/secrust/source"
	"github.com/secrust-go/secrust/wp"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog, err := source.Parse("f.go", "package f\nvar _ = "+src+"\n")
	require.NoError(t, err)
	vs := prog.File.Decls[0].(*ast.GenDecl).Specs[0].(*ast.ValueSpec)
	return vs.Values[0]
}

func TestCheckValidHoldsUnderBound(t *testing.T) {
	e := parseExpr(t, "x >= 0 || x < 0")
	prog, _ := source.Parse("f.go", "package f\n")
	res, err := solve.CheckValid(wp.Formula{Expr: e, Fset: prog}, 10)
	require.NoError(t, err)
	require.Equal(t, solve.Valid, res.Verdict)
}

func TestCheckValidFindsCounterexample(t *testing.T) {
	e := parseExpr(t, "x > 0")
	prog, _ := source.Parse("f.go", "package f\n")
	res, err := solve.CheckValid(wp.Formula{Expr: e, Fset: prog}, 5)
	require.NoError(t, err)
	require.Equal(t, solve.Invalid, res.Verdict)
	require.Contains(t, res.Model, "x")
	require.LessOrEqual(t, res.Model["x"], int64(0))
}

func TestCheckSatContradiction(t *testing.T) {
	e := parseExpr(t, "x > 0 && x < 0")
	prog, _ := source.Parse("f.go", "package f\n")
	res, err := solve.CheckSat(wp.Formula{Expr: e, Fset: prog}, 5)
	require.NoError(t, err)
	require.False(t, res.Satisfiable, "x > 0 && x < 0 should be unsatisfiable")
}

func TestImplicationChain(t *testing.T) {
	// (x >= 0) >> (x + 1 >= 1) should be valid for all bounded x.
	lhs := &ast.BinaryExpr{X: ast.NewIdent("x"), Op: token.GEQ, Y: &ast.BasicLit{Kind: token.INT, Value: "0"}}
	rhs := &ast.BinaryExpr{
		X:  &ast.BinaryExpr{X: ast.NewIdent("x"), Op: token.ADD, Y: &ast.BasicLit{Kind: token.INT, Value: "1"}},
		Op: token.GEQ,
		Y:  &ast.BasicLit{Kind: token.INT, Value: "1"},
	}
	f := &ast.BinaryExpr{X: lhs, Op: token.SHR, Y: rhs}

	prog, _ := source.Parse("f.go", "package f\n")
	res, err := solve.CheckValid(wp.Formula{Expr: f, Fset: prog}, 20)
	require.NoError(t, err)
	require.Equal(t, solve.Valid, res.Verdict)
}
