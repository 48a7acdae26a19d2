package cfg

// Simplify collapses every MergePointNode with at most one outgoing
// edge — whether it has one predecessor (nothing was really merged) or
// several (a genuine join, but one that just continues straight through
// to a single successor) — by splicing its neighbours directly
// together and removing it. Only a MergePoint that is a genuine sink
// with more than one predecessor (both arms of an if/else returning, or
// running off the end of the function with nothing following) survives
// as the join itself carries the only remaining structure worth naming.
// This restates the original's interval-collapsing cleanup pass
// (cfg_builder/builder.rs's post-processing step), adapted to the
// fixpoint-merge model spec.md §4.1 describes instead of the original's
// literal collapse rule, and is exactly what spec.md §8's structural
// invariant requires: after post-processing, no MergePoint has exactly
// one outgoing edge whose target is a non-MergePoint.
//
// It runs to a fixpoint because collapsing one merge point can turn a
// neighbour into a new collapse candidate (a chain of if/else blocks
// produces a chain of merge points, each reducible only after the one
// after it has been).
func (cg *Graph) Simplify() {
	for {
		changed := false
		for _, n := range cg.Nodes() {
			mp, ok := n.(*MergePointNode)
			if !ok {
				continue
			}
			if cg.collapse(mp) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// collapse removes mp if it is redundant, reconnecting around it, and
// reports whether it did so.
func (cg *Graph) collapse(mp *MergePointNode) bool {
	preds := cg.Predecessors(mp)
	succs := cg.Successors(mp)

	switch {
	case len(succs) == 0 && len(preds) > 1:
		// A true join with nowhere to go (end of function): keep it,
		// it's the last node on these paths.
		return false

	case len(succs) <= 1:
		// Nothing branches past mp: redirect every incoming edge
		// straight to the sole successor (if any), keeping its own
		// branch label, and drop mp, regardless of how many arms
		// joined here — the join itself carries no obligation, so
		// once it stops being a fork point it isn't worth keeping as
		// a node.
		if len(succs) == 1 {
			for _, pred := range preds {
				ls := cg.g.Lines(pred.ID(), mp.ID())
				for ls.Next() {
					label := ls.Line().(*Edge).Label
					if label == "" {
						label = succs[0].Label
					}
					cg.AddEdge(pred, succs[0].Node, label)
				}
			}
		}
		cg.RemoveNode(mp)
		return true

	default:
		return false
	}
}
