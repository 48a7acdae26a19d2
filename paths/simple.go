package paths

import "github.com/secrust-go/secrust/cfg"

// EnumerateSimple is the secondary path-enumeration mode grounded
// directly on cfg_builder/find_paths.rs: a plain root-to-sink DFS that
// does not stop at intermediate cut points, collecting every node on
// the way. As spec.md §3/§4.2 describe, it relabels Condition nodes in
// place as it crosses their "true"/"false" edges, overwriting the
// node's own label with "assume: c" or "assume: !c" — an edge that
// doesn't exist anywhere in the graph, synthesized only for this mode.
// This is the "documented source-code smell" spec.md §9 calls out
// explicitly (aliasing a Condition node shared by every other path that
// crosses it, rather than copying it): preserved here deliberately,
// not cleaned up, since cleaning it up would just turn this into
// Basic. It diverges from Basic in one more way: a loop is not cut off
// at its invariant; instead a node already on the current path is not
// re-entered (the walk records the path so far and stops there), so
// each loop is followed at most once per path and the walk terminates
// on any CFG. EnumerateBasic, not this, is the path enumerator the
// verifier uses; EnumerateSimple exists for diagnostics.
func EnumerateSimple(g *cfg.Graph) [][]Step {
	var out [][]Step
	simpleWalk(g, g.Entry, nil, map[int64]bool{}, &out)
	return out
}

func simpleWalk(g *cfg.Graph, cur cfg.Node, steps []Step, seen map[int64]bool, out *[][]Step) {
	if seen[cur.ID()] {
		// A cycle (this walk does not stop at cut points): stop here
		// rather than recursing forever. This is the one place Simple differs
		// from a faithful port of find_paths.rs, which assumes its
		// input is acyclic.
		*out = append(*out, steps)
		return
	}
	seen2 := make(map[int64]bool, len(seen)+1)
	for k, v := range seen {
		seen2[k] = v
	}
	seen2[cur.ID()] = true

	succs := g.Successors(cur)
	if len(succs) == 0 {
		*out = append(*out, steps)
		return
	}
	for _, succ := range succs {
		assumeEdge(cur, succ.Label)
		nextSteps := append(append([]Step{}, steps...), Step{Node: succ.Node, Label: succ.Label})
		simpleWalk(g, succ.Node, nextSteps, seen2, out)
	}
}

// assumeEdge overwrites cond's own label in place when the edge being
// followed is a branch, per spec.md §3's "assume: <formula>" edge kind.
// This mutates the node shared by every other path through it — the
// in-place relabeling spec.md §9 documents as a smell, kept here rather
// than cloning the node, since that's the mode's own defining behaviour.
func assumeEdge(cur cfg.Node, label string) {
	cond, ok := cur.(*cfg.ConditionNode)
	if !ok {
		return
	}
	switch label {
	case "true":
		cond.Text = "assume: " + cond.Text
	case "false":
		cond.Text = "assume: !" + cond.Text
	}
}
