// Package wp computes the weakest precondition of a basic path, per
// spec.md §4.3: walking the path's statements in reverse, substituting
// each assignment into the goal formula, and chaining every branch
// assumption picked up along the way into an implication. Grounded
// directly on wp_calculus/wp_calculus.rs, restated over go/ast.Expr
// instead of the original's own expression IR — an explicit instance
// of the Open Question spec.md §9 leaves to implementers ("a structured
// IR may be used in place of re-parsed text").
package wp

import (
	"go/ast"
	"go/token"

	"github.com/pkg/errors"

	"github.com/secrust-go/secrust/cfg"
	"github.com/secrust-go/secrust/paths"
	"github.com/secrust-go/secrust/source"
)

// Formula wraps a computed verification-condition expression together
// with the fset needed to print it.
type Formula struct {
	Expr ast.Expr
	Fset *source.Program
}

func (f Formula) String() string {
	if f.Expr == nil {
		return "true"
	}
	return source.Print(f.Fset.Fset, f.Expr)
}

// Calculate computes the verification condition for a single basic
// path by walking its nodes in a single reverse pass, exactly as
// spec.md §4.3 describes: at each assignment, substitute into the
// *entire* formula accumulated so far (not just the still-open goal),
// so that a branch assumption picked up closer to the path's end is
// carried back through every earlier assignment the same way the
// obligation itself is. Folding assumptions and assignments into two
// separate lists first and only substituting into the goal (as a
// straight two-pass split might suggest) would leave a guard's
// assumption referring to a pre-assignment value of a variable the
// guard is actually evaluated on post-assignment — a single pass
// walking strictly backwards avoids that mismatch. A Cutoff start or
// end contributes no formula (there is nothing sound to assume or
// prove at a synthesized cut point).
func Calculate(fset *source.Program, p paths.Basic) (Formula, error) {
	nodes := make([]cfg.Node, 0, len(p.Steps)+1)
	nodes = append(nodes, p.Start)
	for _, s := range p.Steps {
		nodes = append(nodes, s.Node)
	}

	// outLabel[i] is the label of the edge leaving nodes[i] towards
	// nodes[i+1]; p.Steps[i].Label is that same edge's label seen from
	// the arriving side.
	outLabel := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		outLabel[i] = s.Label
	}

	var working ast.Expr
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		switch x := n.(type) {
		case *cfg.StatementNode:
			if a, ok := ParseAssignment(x.Stmt); ok {
				substituted, err := Substitute(working, a.Name, a.RHS)
				if err != nil {
					return Formula{}, err
				}
				working = substituted
			}
		case *cfg.ConditionNode:
			if i == len(nodes)-1 {
				break
			}
			if e := branchAssumption(x, outLabel[i]); e != nil {
				working = implies(e, working)
			}
		case *cfg.PreconditionNode:
			working = implies(x.Expr, working)
		case *cfg.InvariantNode:
			working = implies(x.Expr, working)
		case *cfg.PostconditionNode:
			working = implies(x.Expr, working)
		case *cfg.CutoffNode, *cfg.MergePointNode, *cfg.FunctionNode, *cfg.ReturnNode:
			// no effect: these contribute neither an assumption nor a goal.
		default:
			return Formula{}, errors.Errorf("wp: unhandled node type %T", n)
		}
	}

	return Formula{Expr: working, Fset: fset}, nil
}

// implies builds `lhs >> rhs`, reusing Go's token.SHR as the
// implication operator exactly as the original reuses Rust's
// BinOp::Shr, so that a sequence of assumptions chains right-associated
// the same way z3_parser.rs's extract_chain expects.
func implies(lhs, rhs ast.Expr) ast.Expr {
	if rhs == nil {
		return lhs
	}
	return &ast.BinaryExpr{X: lhs, Op: token.SHR, Y: rhs}
}

// branchAssumption extracts the boolean test a Condition node's "true"
// or "false" edge contributes to the path's working formula.
func branchAssumption(cond *cfg.ConditionNode, label string) ast.Expr {
	var e ast.Expr
	switch c := cond.Cond.(type) {
	case cfg.IfCond:
		e = c.Cond
	case cfg.WhileCond:
		e = c.Cond
	default:
		return nil
	}
	switch label {
	case "true":
		return e
	case "false":
		return &ast.UnaryExpr{Op: token.NOT, X: &ast.ParenExpr{X: e}}
	default:
		return nil
	}
}
