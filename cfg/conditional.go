package cfg

import "go/ast"

// ConditionalExpr is the tagged union of branch headers a ConditionNode
// can wrap, per spec.md §3's host-language mapping: an if/else-if chain,
// a condition-only for loop (the host stand-in for "while"), or a
// for-range loop (the host stand-in for "for pat in e").
type ConditionalExpr interface {
	Text() string
	conditional()
}

// IfCond is a single `if cond { ... }` test; else-if chains are a
// sequence of ConditionNodes linked by the "false" edge, matching
// handle_condition.rs's recursive else-if dispatch.
type IfCond struct {
	Cond ast.Expr
	Src  string
}

func (c IfCond) Text() string { return c.Src }
func (IfCond) conditional()   {}

// WhileCond is a condition-only `for cond { ... }`, the mapping chosen
// for spec.md's `while` construct (see SPEC_FULL.md §0).
type WhileCond struct {
	Cond ast.Expr
	Src  string
}

func (c WhileCond) Text() string { return c.Src }
func (WhileCond) conditional()   {}

// ForRangeCond is a `for pat := range e` loop, the mapping chosen for
// spec.md's `for pat in e` construct.
type ForRangeCond struct {
	Key, Value ast.Expr
	X          ast.Expr
	Src        string
}

func (c ForRangeCond) Text() string { return c.Src }
func (ForRangeCond) conditional()   {}
