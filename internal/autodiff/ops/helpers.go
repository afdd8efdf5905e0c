package ops

import (
	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// ones returns a gradient of ones matching the output shape.
func ones(out tensor.Value) tensor.Value {
	return tensor.OnesLike(out)
}

// zeros returns a gradient of zeros matching the output shape.
func zeros(out tensor.Value) tensor.Value {
	return tensor.Full(out.Shape(), 0)
}

// Shorthands used by symbolic gradients.

func sSub(b Builder, x, y graph.NodeID) graph.NodeID { return b.Apply(Sub, x, y) }
func sMul(b Builder, x, y graph.NodeID) graph.NodeID { return b.Apply(Mul, x, y) }
func sDiv(b Builder, x, y graph.NodeID) graph.NodeID { return b.Apply(Div, x, y) }
func sPow(b Builder, x, y graph.NodeID) graph.NodeID { return b.Apply(Pow, x, y) }
func sNeg(b Builder, x graph.NodeID) graph.NodeID    { return b.Apply(Neg, x) }
func sLog(b Builder, x graph.NodeID) graph.NodeID    { return b.Apply(Log, x) }
