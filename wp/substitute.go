package wp

import (
	"go/ast"
	"go/token"

	"github.com/pkg/errors"
)

// Assignment is a single variable assignment extracted from a
// StatementNode, as wp_calculus.rs's parse_assignment does for the
// original's own assignment statements.
type Assignment struct {
	Name string
	RHS  ast.Expr
}

// ParseAssignment recognizes `x = e`, `x := e`, `var x = e`, and
// `x op= e` forms, plus `x++`/`x--` (as `x = x + 1`/`x = x - 1`).
// Anything else (multi-assignment, non-ident targets) is reported as
// not an assignment rather than an error: most statement nodes simply
// aren't substitutable and the caller skips them.
func ParseAssignment(stmt ast.Stmt) (Assignment, bool) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		if len(s.Lhs) != 1 || len(s.Rhs) != 1 {
			return Assignment{}, false
		}
		id, ok := s.Lhs[0].(*ast.Ident)
		if !ok {
			return Assignment{}, false
		}
		rhs := s.Rhs[0]
		if op, ok := compoundOp(s.Tok); ok {
			rhs = &ast.BinaryExpr{X: id, Op: op, Y: rhs}
		}
		return Assignment{Name: id.Name, RHS: rhs}, true
	case *ast.IncDecStmt:
		id, ok := s.X.(*ast.Ident)
		if !ok {
			return Assignment{}, false
		}
		op := token.ADD
		if s.Tok == token.DEC {
			op = token.SUB
		}
		return Assignment{
			Name: id.Name,
			RHS:  &ast.BinaryExpr{X: id, Op: op, Y: &ast.BasicLit{Kind: token.INT, Value: "1"}},
		}, true
	case *ast.DeclStmt:
		gd, ok := s.Decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR || len(gd.Specs) != 1 {
			return Assignment{}, false
		}
		vs, ok := gd.Specs[0].(*ast.ValueSpec)
		if !ok || len(vs.Names) != 1 || len(vs.Values) != 1 {
			return Assignment{}, false
		}
		return Assignment{Name: vs.Names[0].Name, RHS: vs.Values[0]}, true
	default:
		return Assignment{}, false
	}
}

// compoundOp maps `+=`-family tokens to their underlying binary
// operator.
func compoundOp(tok token.Token) (token.Token, bool) {
	switch tok {
	case token.ADD_ASSIGN:
		return token.ADD, true
	case token.SUB_ASSIGN:
		return token.SUB, true
	case token.MUL_ASSIGN:
		return token.MUL, true
	case token.QUO_ASSIGN:
		return token.QUO, true
	case token.REM_ASSIGN:
		return token.REM, true
	case token.ASSIGN, token.DEFINE:
		return 0, false
	default:
		return 0, false
	}
}

// Substitute returns a copy of expr with every free occurrence of the
// identifier name replaced by repl, restating wp_calculus.rs's
// token-stream substitution over go/ast's structured tree instead of a
// reparsed token stream.
func Substitute(expr ast.Expr, name string, repl ast.Expr) (ast.Expr, error) {
	if expr == nil {
		return nil, nil
	}
	return substitute(expr, name, repl)
}

func substitute(e ast.Expr, name string, repl ast.Expr) (ast.Expr, error) {
	switch x := e.(type) {
	case *ast.Ident:
		if x.Name == name {
			return cloneExpr(repl), nil
		}
		return x, nil
	case *ast.BasicLit:
		return x, nil
	case *ast.ParenExpr:
		inner, err := substitute(x.X, name, repl)
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpr{X: inner}, nil
	case *ast.UnaryExpr:
		inner, err := substitute(x.X, name, repl)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: x.Op, X: inner}, nil
	case *ast.BinaryExpr:
		lhs, err := substitute(x.X, name, repl)
		if err != nil {
			return nil, err
		}
		rhs, err := substitute(x.Y, name, repl)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{X: lhs, Op: x.Op, Y: rhs}, nil
	case *ast.IndexExpr:
		xe, err := substitute(x.X, name, repl)
		if err != nil {
			return nil, err
		}
		idx, err := substitute(x.Index, name, repl)
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpr{X: xe, Index: idx}, nil
	case *ast.SelectorExpr:
		xe, err := substitute(x.X, name, repl)
		if err != nil {
			return nil, err
		}
		return &ast.SelectorExpr{X: xe, Sel: x.Sel}, nil
	case *ast.CallExpr:
		args := make([]ast.Expr, len(x.Args))
		for i, a := range x.Args {
			na, err := substitute(a, name, repl)
			if err != nil {
				return nil, err
			}
			args[i] = na
		}
		return &ast.CallExpr{Fun: x.Fun, Args: args}, nil
	default:
		return nil, errors.Errorf("wp: substitution unsupported for %T", e)
	}
}

// cloneExpr returns a shallow, structurally-equal copy of e so a
// replacement expression can be spliced into multiple positions without
// aliasing mutable AST nodes across them.
func cloneExpr(e ast.Expr) ast.Expr {
	switch x := e.(type) {
	case *ast.Ident:
		cp := *x
		return &cp
	case *ast.BasicLit:
		cp := *x
		return &cp
	case *ast.ParenExpr:
		cp := *x
		cp.X = cloneExpr(x.X)
		return &cp
	case *ast.UnaryExpr:
		cp := *x
		cp.X = cloneExpr(x.X)
		return &cp
	case *ast.BinaryExpr:
		cp := *x
		cp.X = cloneExpr(x.X)
		cp.Y = cloneExpr(x.Y)
		return &cp
	default:
		return e
	}
}
