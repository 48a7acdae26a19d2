package cfg

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/multi"
)

// Edge is a labelled control-flow edge ("true", "false", "loop-back",
// or "" for an unconditional fall-through), wrapping a gonum graph.Line
// the same way the teacher's cfg.Edge wraps gonum's simple.Edge to add
// a DOT-visible label.
type Edge struct {
	F, T  graph.Node
	UID   int64
	Label string
}

func (e *Edge) From() graph.Node         { return e.F }
func (e *Edge) To() graph.Node           { return e.T }
func (e *Edge) ID() int64                { return e.UID }
func (e *Edge) ReversedEdge() graph.Edge { return &Edge{F: e.T, T: e.F, UID: e.UID, Label: e.Label} }
func (e *Edge) ReversedLine() graph.Line { return &Edge{F: e.T, T: e.F, UID: e.UID, Label: e.Label} }

// Attributes implements encoding.Attributer so gonum/graph/encoding/dot
// renders the branch label on the edge.
func (e *Edge) Attributes() []encoding.Attribute {
	if e.Label == "" {
		return nil
	}
	return []encoding.Attribute{{Key: "label", Value: e.Label}}
}

// Graph is the control-flow graph built by Builder and consumed by the
// paths package: a thin, panic-on-misuse wrapper around
// gonum/graph/multi.DirectedGraph, following the teacher's own cfg.Graph
// (github.com/graphism/exp/cfg/graph.go), which wraps a gonum graph the
// same way rather than using gonum's bare types directly.
type Graph struct {
	g       *multi.DirectedGraph
	nodes   map[int64]Node
	nextID  int64
	nextUID int64
	Entry   Node
}

// NewGraph returns an empty control-flow graph.
func NewGraph() *Graph {
	return &Graph{
		g:     multi.NewDirectedGraph(),
		nodes: make(map[int64]Node),
	}
}

// newID and newUID hand out monotonically increasing identities; gonum's
// own NewNode()/NewLine() helpers do this too, but this package needs
// the ID before constructing the concrete *FunctionNode/etc. struct, so
// it manages the counters itself, as the teacher's AddNode override
// does for the same reason.
func (cg *Graph) newID() int64 {
	id := cg.nextID
	cg.nextID++
	return id
}

func (cg *Graph) newUID() int64 {
	uid := cg.nextUID
	cg.nextUID++
	return uid
}

// AddNode inserts n into the graph. Callers obtain n's id from one of
// the New*Node constructors in constructors.go, which allocate it from
// this graph.
// Every concrete Node already satisfies gonum's graph.Node (both
// require only ID() int64), so no adapter is needed here.
func (cg *Graph) AddNode(n Node) {
	cg.g.AddNode(n)
	cg.nodes[n.ID()] = n
}

// AddEdge inserts a labelled directed edge from -> to.
func (cg *Graph) AddEdge(from, to Node, label string) *Edge {
	e := &Edge{
		F:     from,
		T:     to,
		UID:   cg.newUID(),
		Label: label,
	}
	cg.g.SetLine(e)
	return e
}

// RemoveNode deletes n and every edge touching it, used by the
// merge-point collapsing pass in postprocess.go.
func (cg *Graph) RemoveNode(n Node) {
	cg.g.RemoveNode(n.ID())
	delete(cg.nodes, n.ID())
}

// RemoveEdge deletes the single edge e.
func (cg *Graph) RemoveEdge(e *Edge) {
	cg.g.RemoveLine(e.F.ID(), e.T.ID(), e.UID)
}

// Node looks up a node by id, panicking if it isn't present: an
// internal consistency violation, not a user-facing error, matching the
// teacher's own panic-on-missing-node style in cfg/graph.go.
func (cg *Graph) Node(id int64) Node {
	n, ok := cg.nodes[id]
	if !ok {
		panic(errors.Errorf("cfg: no node with id %d", id))
	}
	return n
}

// Nodes returns every node in the graph, sorted by id for deterministic
// iteration (tests and DOT output both depend on stable ordering).
func (cg *Graph) Nodes() []Node {
	out := make([]Node, 0, len(cg.nodes))
	for _, n := range cg.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Succ is one outgoing edge: the node it lands on and its branch label.
type Succ struct {
	Node  Node
	Label string
}

// Successors returns the nodes reachable from n via a single outgoing
// edge, together with the edge's label, in edge-insertion order.
func (cg *Graph) Successors(n Node) []Succ {
	type succ struct {
		s   Succ
		uid int64
	}
	var succs []succ
	to := cg.g.From(n.ID())
	for to.Next() {
		t := to.Node()
		ls := cg.g.Lines(n.ID(), t.ID())
		for ls.Next() {
			e := ls.Line().(*Edge)
			succs = append(succs, succ{s: Succ{Node: cg.nodes[t.ID()], Label: e.Label}, uid: e.UID})
		}
	}
	sort.Slice(succs, func(i, j int) bool { return succs[i].uid < succs[j].uid })
	out := make([]Succ, len(succs))
	for i, s := range succs {
		out[i] = s.s
	}
	return out
}

// Predecessors returns the nodes with an edge into n.
func (cg *Graph) Predecessors(n Node) []Node {
	var out []Node
	from := cg.g.To(n.ID())
	for from.Next() {
		out = append(out, cg.nodes[from.Node().ID()])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// InDegree and OutDegree expose gonum's degree counts: the number of
// distinct nodes with an edge into, or out of, n.
func (cg *Graph) InDegree(n Node) int  { return cg.g.To(n.ID()).Len() }
func (cg *Graph) OutDegree(n Node) int { return cg.g.From(n.ID()).Len() }

var _ graph.Node = (*FunctionNode)(nil)
