// Package paths enumerates the basic paths of a control-flow graph: the
// straight-line node sequences between one cut point (a precondition,
// postcondition, invariant, or synthesized cutoff) and the next, per
// spec.md §4.2. Every cycle in a well-formed CFG passes through at
// least one cut point (loop headers are always Invariant or Cutoff
// nodes), so no node but a cut point recurs on a basic path (a loop
// body's path ends back at the cut point it started from);
// EnumerateBasic panics if it ever revisits any other node, since that
// can only mean the CFG violates that invariant.
package paths

import (
	"github.com/secrust-go/secrust/cfg"
)

// Step is one element of a basic path: either a branch assumption
// picked up by following a labelled condition edge, or an ordinary
// statement.
type Step struct {
	Node  cfg.Node
	Label string // "" , "true", "false", or "loop-back"
}

// Basic is one maximal straight-line run from a start cut point to the
// next cut point (or to a dead end with no successors, i.e. a return
// with no trailing postcondition).
type Basic struct {
	Start cfg.Node
	End   cfg.Node // nil if the path ran off the end of the graph
	Steps []Step
}
