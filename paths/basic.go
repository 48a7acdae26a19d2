package paths

import (
	"github.com/pkg/errors"

	"github.com/secrust-go/secrust/cfg"
)

// EnumerateBasic walks g from each of its cut points, producing one
// Basic path for every cut-point-to-cut-point run, per spec.md §4.2.
// Restated from the original's textual description of basic-path
// enumeration (the original's own Rust source for this variant was not
// available to ground against directly; cfg_builder/find_paths.rs's
// simple-path DFS, implemented here as EnumerateSimple, grounds the
// traversal shape this builds on).
func EnumerateBasic(g *cfg.Graph) []Basic {
	var out []Basic
	for _, n := range cutPoints(g) {
		out = append(out, fromCutPoint(g, n)...)
	}
	return out
}

// cutPoints returns every node a basic path may start or end at: every
// Precondition/Postcondition/Invariant/Cutoff node, per spec.md §3/§4.2
// ("n₀ and n_k are each one of {Precondition, Postcondition, Invariant,
// Cutoff}"). The function entry itself is not a cut point — it always
// has a Precondition (or, if the user wrote none, no assumption at all)
// as its sole successor, so the first real obligation/assumption a path
// can start from is that Precondition, never the FunctionNode itself.
func cutPoints(g *cfg.Graph) []cfg.Node {
	var out []cfg.Node
	for _, n := range g.Nodes() {
		if cfg.IsCutPoint(n) {
			out = append(out, n)
		}
	}
	return out
}

// fromCutPoint enumerates every basic path starting at start: a DFS
// over start's successors that stops the instant it reaches a cut point
// (another one, or start itself again around a loop: that path is
// complete) or has no successors left (a dead end).
// Branching interior nodes (if/else without an intervening cut point)
// fan out into multiple basic paths, one per branch.
func fromCutPoint(g *cfg.Graph, start cfg.Node) []Basic {
	var out []Basic
	for _, succ := range g.Successors(start) {
		walk(g, start, []Step{{Node: succ.Node, Label: succ.Label}}, map[int64]bool{start.ID(): true}, &out)
	}
	if len(g.Successors(start)) == 0 {
		out = append(out, Basic{Start: start, End: nil, Steps: nil})
	}
	return out
}

func walk(g *cfg.Graph, start cfg.Node, steps []Step, seen map[int64]bool, out *[]Basic) {
	cur := steps[len(steps)-1].Node
	if cfg.IsCutPoint(cur) {
		*out = append(*out, Basic{Start: start, End: cur, Steps: steps})
		return
	}

	if seen[cur.ID()] {
		panic(errors.Errorf("paths: cycle through non-cut-point node %q; CFG is malformed", cur.Label()))
	}

	succs := g.Successors(cur)
	if len(succs) == 0 {
		*out = append(*out, Basic{Start: start, End: nil, Steps: steps})
		return
	}

	seen2 := make(map[int64]bool, len(seen)+1)
	for k, v := range seen {
		seen2[k] = v
	}
	seen2[cur.ID()] = true

	for _, succ := range succs {
		nextSteps := append(append([]Step{}, steps...), Step{Node: succ.Node, Label: succ.Label})
		walk(g, start, nextSteps, seen2, out)
	}
}
