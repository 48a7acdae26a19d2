package solve

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/pkg/errors"
)

// collectVars returns the free variable names of expr (every Ident
// that isn't the boolean literal true/false), in first-seen order,
// restating z3_parser.rs's variable-declaration pass, which registers
// each identifier with the solver's symbol table before asserting
// anything that mentions it.
func collectVars(expr ast.Expr) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch x := e.(type) {
		case *ast.Ident:
			if x.Name == "true" || x.Name == "false" {
				return
			}
			if !seen[x.Name] {
				seen[x.Name] = true
				out = append(out, x.Name)
			}
		case *ast.ParenExpr:
			walk(x.X)
		case *ast.UnaryExpr:
			walk(x.X)
		case *ast.BinaryExpr:
			walk(x.X)
			walk(x.Y)
		case *ast.CallExpr:
			for _, a := range x.Args {
				walk(a)
			}
		case *ast.IndexExpr:
			walk(x.X)
			walk(x.Index)
		case *ast.SelectorExpr:
			walk(x.X)
		}
	}
	walk(expr)
	return out
}

// eval computes expr's value under env, representing booleans as 0/1
// the way a C-shaped evaluator (and the original's own boolean
// encoding into Z3's arithmetic-adjacent bool sort) does, so relational
// and logical operators compose uniformly with arithmetic ones.
func eval(expr ast.Expr, env map[string]int64) (int64, error) {
	switch x := expr.(type) {
	case *ast.Ident:
		switch x.Name {
		case "true":
			return 1, nil
		case "false":
			return 0, nil
		}
		v, ok := env[x.Name]
		if !ok {
			return 0, errors.Errorf("solve: unbound variable %q", x.Name)
		}
		return v, nil

	case *ast.BasicLit:
		if x.Kind != token.INT {
			return 0, errors.Errorf("solve: unsupported literal kind %v", x.Kind)
		}
		n, err := strconv.ParseInt(x.Value, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "solve: parsing literal %q", x.Value)
		}
		return n, nil

	case *ast.ParenExpr:
		return eval(x.X, env)

	case *ast.UnaryExpr:
		v, err := eval(x.X, env)
		if err != nil {
			return 0, err
		}
		switch x.Op {
		case token.NOT:
			return boolInt(v == 0), nil
		case token.SUB:
			return -v, nil
		default:
			return 0, errors.Errorf("solve: unsupported unary operator %v", x.Op)
		}

	case *ast.BinaryExpr:
		// Implication (">>", wp's chaining operator) and the logical
		// connectives short-circuit is unnecessary here: this is a
		// pure, side-effect-free formula evaluator, so both sides are
		// always evaluated.
		l, err := eval(x.X, env)
		if err != nil {
			return 0, err
		}
		r, err := eval(x.Y, env)
		if err != nil {
			return 0, err
		}
		switch x.Op {
		case token.ADD:
			return l + r, nil
		case token.SUB:
			return l - r, nil
		case token.MUL:
			return l * r, nil
		case token.QUO:
			if r == 0 {
				return 0, errors.New("solve: division by zero")
			}
			return l / r, nil
		case token.REM:
			if r == 0 {
				return 0, errors.New("solve: modulo by zero")
			}
			return l % r, nil
		case token.EQL:
			return boolInt(l == r), nil
		case token.NEQ:
			return boolInt(l != r), nil
		case token.LSS:
			return boolInt(l < r), nil
		case token.LEQ:
			return boolInt(l <= r), nil
		case token.GTR:
			return boolInt(l > r), nil
		case token.GEQ:
			return boolInt(l >= r), nil
		case token.LAND:
			return boolInt(l != 0 && r != 0), nil
		case token.LOR:
			return boolInt(l != 0 || r != 0), nil
		case token.SHR: // implication: lhs >> rhs
			return boolInt(l == 0 || r != 0), nil
		default:
			return 0, errors.Errorf("solve: unsupported binary operator %v", x.Op)
		}

	default:
		return 0, errors.Errorf("solve: unsupported expression %T", expr)
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
