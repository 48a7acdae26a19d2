// Package cfg builds, post-processes and exports the control-flow graph
// described in spec.md §3-4.1: a directed multigraph whose nodes are
// semantic blocks (function entry, pre/post/invariant, statements,
// branches, returns, merge points) and whose edges carry branch labels.
//
// The graph itself is a gonum/graph/multi.DirectedGraph, the same
// "index-based graph library with opaque integer node handles" the
// teacher (github.com/graphism/exp/cfg) wraps for its own control-flow
// graphs; multi (rather than simple) is used because spec.md §3 defines
// the CFG as a multigraph and a Condition node's "true"/"false" edges
// can both land on the same merge point.
package cfg

import (
	"go/ast"

	"gonum.org/v1/gonum/graph/encoding"
)

// Node is the tagged union of CFG node kinds from spec.md §3. Go has no
// sum types, so this is modelled the idiomatic way: an interface
// implemented by one struct per variant, dispatched with a type switch
// wherever spec.md describes variant-specific behaviour (see
// postprocess.go, wp.Calculate).
type Node interface {
	// ID returns the node's graph-internal identity (satisfies
	// gonum's graph.Node).
	ID() int64

	// Attributes returns the node's DOT attributes (satisfies gonum's
	// encoding.Attributer), used by WriteDOT.
	Attributes() []encoding.Attribute

	// Label is the node's display text, used both for DOT rendering
	// and for diagnostics.
	Label() string

	// node is unexported so only this package can add Node variants.
	node()
}

// shape is the DOT node shape table from spec.md §6.
type shape string

const (
	shapeFunction shape = "Mdiamond"
	shapeEllipse  shape = "ellipse"
	shapeBox      shape = "box"
	shapeDiamond  shape = "diamond"
	shapeCircle   shape = "circle"
)

// base is embedded by every concrete Node, supplying graph identity.
// This mirrors the teacher's own cfg.Node, which embeds a bare
// gonum graph.Node for the same reason.
type base struct {
	id int64
}

func (b *base) ID() int64 { return b.id }

func attrs(shape shape, label string) []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "shape", Value: string(shape)},
		{Key: "label", Value: label},
	}
}

// FunctionNode is the CFG's entry marker, carrying the function's name
// and its original declaration.
type FunctionNode struct {
	base
	Name string
	Decl *ast.FuncDecl
}

func (n *FunctionNode) Label() string                    { return n.Name }
func (n *FunctionNode) Attributes() []encoding.Attribute  { return attrs(shapeFunction, n.Name) }
func (*FunctionNode) node()                               {}

// PreconditionNode is an assumption injected at function entry (or
// ahead of an external method call whose contract requires it).
type PreconditionNode struct {
	base
	Text string
	Expr ast.Expr
}

func (n *PreconditionNode) Label() string                   { return "Pre: " + n.Text }
func (n *PreconditionNode) Attributes() []encoding.Attribute { return attrs(shapeEllipse, n.Label()) }
func (*PreconditionNode) node()                              {}

// PostconditionNode is an obligation discharged at function exit (or
// after an external method call).
type PostconditionNode struct {
	base
	Text string
	Expr ast.Expr
}

func (n *PostconditionNode) Label() string                   { return "Post: " + n.Text }
func (n *PostconditionNode) Attributes() []encoding.Attribute { return attrs(shapeEllipse, n.Label()) }
func (*PostconditionNode) node()                              {}

// InvariantNode is both a loop cut point and an obligation: it must
// hold on entry to the loop and again after every iteration.
type InvariantNode struct {
	base
	Text string
	Expr ast.Expr
}

func (n *InvariantNode) Label() string                   { return "@Inv: " + n.Text }
func (n *InvariantNode) Attributes() []encoding.Attribute { return attrs(shapeEllipse, n.Label()) }
func (*InvariantNode) node()                              {}

// CutoffNode is a synthetic loop cut point inserted when the user
// omitted an invariant.
type CutoffNode struct {
	base
	Text string
}

func (n *CutoffNode) Label() string                   { return "@Cutoff " + n.Text }
func (n *CutoffNode) Attributes() []encoding.Attribute { return attrs(shapeEllipse, n.Label()) }
func (*CutoffNode) node()                              {}

// StatementNode is a plain block: an assignment, a local binding, or any
// other expression statement that isn't a recognized control construct.
type StatementNode struct {
	base
	Text string
	Stmt ast.Stmt
}

func (n *StatementNode) Label() string                   { return n.Text }
func (n *StatementNode) Attributes() []encoding.Attribute { return attrs(shapeBox, n.Text) }
func (*StatementNode) node()                              {}

// ConditionNode is a branch: an if, a while-shaped for, or a for-range
// loop header.
type ConditionNode struct {
	base
	Text string
	Cond ConditionalExpr
}

func (n *ConditionNode) Label() string                   { return n.Text }
func (n *ConditionNode) Attributes() []encoding.Attribute { return attrs(shapeDiamond, n.Text) }
func (*ConditionNode) node()                              {}

// ReturnNode is a sink: a return statement.
type ReturnNode struct {
	base
	Text string
	Stmt *ast.ReturnStmt
}

func (n *ReturnNode) Label() string                   { return "return: " + n.Text }
func (n *ReturnNode) Attributes() []encoding.Attribute { return attrs(shapeEllipse, n.Label()) }
func (*ReturnNode) node()                              {}

// MergePointNode is a join; the post-processor tries to remove every
// one it can (see postprocess.go).
type MergePointNode struct {
	base
}

func (n *MergePointNode) Label() string                   { return "Merge" }
func (n *MergePointNode) Attributes() []encoding.Attribute { return attrs(shapeCircle, "Merge") }
func (*MergePointNode) node()                              {}

// IsCutPoint reports whether n is one of the four cut-point kinds from
// spec.md §3/§4.2: Precondition, Postcondition, Invariant, Cutoff.
func IsCutPoint(n Node) bool {
	switch n.(type) {
	case *PreconditionNode, *PostconditionNode, *InvariantNode, *CutoffNode:
		return true
	default:
		return false
	}
}
