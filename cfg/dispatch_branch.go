package cfg

import "go/ast"

// ifStmt restates handle_condition.rs's dispatch: emit a ConditionNode,
// walk the "then" branch off its "true" edge, walk the "else" branch
// (recursively, for else-if chains) off its "false" edge, then join
// both live branch ends at a single merge point.
func (b *Builder) ifStmt(s *ast.IfStmt) {
	text := b.print(s.Cond)
	cond := b.cg.NewConditionNode(text, IfCond{Cond: s.Cond, Src: text})
	entry, entryLabel := b.cursor, b.label
	b.cg.AddEdge(entry, cond, entryLabel)

	merge := b.cg.NewMergePointNode()

	b.cursor, b.label, b.dead = cond, "true", false
	b.block(s.Body)
	if !b.dead {
		b.cg.AddEdge(b.cursor, merge, b.label)
	}
	thenDead := b.dead

	b.cursor, b.label, b.dead = cond, "false", false
	switch els := s.Else.(type) {
	case *ast.BlockStmt:
		b.block(els)
	case *ast.IfStmt:
		b.ifStmt(els)
	case nil:
		// No else: the false edge falls straight through to merge.
	default:
		panic("cfg: unsupported else clause")
	}
	if !b.dead {
		b.cg.AddEdge(b.cursor, merge, b.label)
	}
	elseDead := b.dead

	b.cursor, b.label = merge, ""
	b.dead = thenDead && elseDead
	if b.dead {
		// Both branches returned: merge is unreachable, so it is
		// removed from the graph and the walk continues as dead.
		b.cg.RemoveNode(merge)
	}
}

// loopHeader is shared between forStmt and rangeStmt: it resolves the
// loop's cut point, the node the loop is entered through (ahead of its
// Condition node) and the node its back-edge returns to, reusing a
// user-supplied Invariant when present (the first statement of the
// body is invariant(...)), otherwise synthesizing a Cutoff, per
// handle_loops.rs's "reuse or synthesize" rule.
func (b *Builder) loopHeader(body *ast.BlockStmt, condText string) (head Node, bodyStart []ast.Stmt) {
	if len(body.List) > 0 {
		if es, ok := body.List[0].(*ast.ExprStmt); ok {
			if call, ok := es.X.(*ast.CallExpr); ok {
				if kind, ok := annotationKind(call); ok && kind == "invariant" {
					var arg ast.Expr
					if len(call.Args) > 0 {
						arg = call.Args[0]
					}
					text := ""
					if arg != nil {
						text = b.print(arg)
					}
					inv := b.cg.NewInvariantNode(text, arg)
					return inv, body.List[1:]
				}
			}
		}
	}
	return b.cg.NewCutoffNode(condText), body.List
}

// forStmt handles the condition-only `for cond { ... }` shape chosen
// for spec.md's while construct. Init/Post-bearing for-loops are a
// different host construct not produced by SPEC_FULL.md's mapping and
// are rejected rather than silently mis-translated.
func (b *Builder) forStmt(s *ast.ForStmt) {
	if s.Init != nil || s.Post != nil || s.Cond == nil {
		panic("cfg: unsupported for-loop shape (expected condition-only while loop)")
	}

	condText := b.print(s.Cond)
	head, rest := b.loopHeader(s.Body, condText)
	b.link(head)
	cond := b.cg.NewConditionNode(condText, WhileCond{Cond: s.Cond, Src: condText})
	b.cg.AddEdge(head, cond, "")

	b.cursor, b.label, b.dead = cond, "true", false
	for _, stmt := range rest {
		if b.dead {
			break
		}
		b.stmt(stmt)
	}
	if !b.dead {
		back := "loop-back"
		if b.cursor == Node(cond) {
			back = "true" // empty body: the guard's true edge is the back-edge
		}
		b.cg.AddEdge(b.cursor, head, back)
	}

	b.cursor, b.label, b.dead = cond, "false", false
}

// rangeStmt handles `for k, v := range x { ... }`, the host stand-in
// for spec.md's `for pat in e`.
func (b *Builder) rangeStmt(s *ast.RangeStmt) {
	text := b.print(s)
	head, rest := b.loopHeader(s.Body, text)
	b.link(head)
	cond := b.cg.NewConditionNode(text, ForRangeCond{Key: s.Key, Value: s.Value, X: s.X, Src: text})
	b.cg.AddEdge(head, cond, "")

	b.cursor, b.label, b.dead = cond, "true", false
	for _, stmt := range rest {
		if b.dead {
			break
		}
		b.stmt(stmt)
	}
	if !b.dead {
		back := "loop-back"
		if b.cursor == Node(cond) {
			back = "true" // empty body: the guard's true edge is the back-edge
		}
		b.cg.AddEdge(b.cursor, head, back)
	}

	b.cursor, b.label, b.dead = cond, "false", false
}
