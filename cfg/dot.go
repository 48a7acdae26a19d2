package cfg

import (
	"bytes"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/encoding/dot"
)

// dotGraph wraps a Graph. WriteDOT does not use it: the wrapped
// *multi.DirectedGraph already satisfies what dot.MarshalMulti needs,
// and its nodes and lines are encoding.Attributers, so WriteDOT
// marshals that graph directly.
type dotGraph struct {
	*Graph
}

// WriteDOT renders the graph in Graphviz DOT format, with the node
// shapes described in spec.md §6 (Mdiamond/ellipse/box/diamond/circle)
// and edge labels for branch direction ("true"/"false"/"loop-back").
func (cg *Graph) WriteDOT(name string) ([]byte, error) {
	b, err := dot.MarshalMulti(cg.g, name, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshalling CFG to DOT")
	}
	return b, nil
}

// WriteDOTTo appends the DOT-encoded graph to buf.
func (cg *Graph) WriteDOTTo(buf *bytes.Buffer, name string) error {
	b, err := cg.WriteDOT(name)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
