package autodiff

import (
	"strconv"

	"github.com/born-ml/cgraph/internal/graph"
)

// Format renders the expression rooted at n in infix notation, for example
// "((x*y) + 3)". Shared sub-expressions are rendered at every use.
func (g *Graph) Format(n Node) string {
	tr, err := g.traverse(n)
	if err != nil {
		return "<invalid>"
	}
	sub := tr.Graph()
	rendered := make(map[graph.NodeID]string, sub.NumNodes())
	for _, id := range tr.Forward() {
		rec := g.records[id]
		switch rec.kind {
		case KindSymbol:
			rendered[id] = rec.name
		case KindConstant:
			rendered[id] = strconv.FormatFloat(rec.value, 'g', -1, 64)
		case KindOperation:
			operands := operandIDs(sub, id)
			parts := make([]string, len(operands))
			for i, src := range operands {
				parts[i] = rendered[src]
			}
			rendered[id] = rec.op.Format(parts)
		}
	}
	return rendered[n.id]
}
