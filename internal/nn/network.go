package nn

import "fmt"

// Network is an ordered stack of layers. Forward feeds activations through
// every layer; Backward propagates the loss gradient in reverse, letting each
// layer accumulate its parameter gradients.
type Network struct {
	layers []Layer
}

func NewNetwork(layers ...Layer) *Network {
	return &Network{layers: layers}
}

func (n *Network) Layers() []Layer { return n.layers }

func (n *Network) Forward(x Vector) Vector {
	for _, l := range n.layers {
		x = l.Forward(x)
	}
	return x
}

func (n *Network) Backward(grad Vector) {
	for i := len(n.layers) - 1; i >= 0; i-- {
		grad = n.layers[i].Backward(grad)
	}
}

// Predict runs a forward pass and returns the argmax class index.
func (n *Network) Predict(x Vector) int {
	return n.Forward(x).ArgMax()
}

func (n *Network) Params() []Vector {
	var params []Vector
	for _, l := range n.layers {
		params = append(params, l.Params()...)
	}
	return params
}

func (n *Network) Grads() []Vector {
	var grads []Vector
	for _, l := range n.layers {
		grads = append(grads, l.Grads()...)
	}
	return grads
}

func (n *Network) ZeroGrads() {
	for _, l := range n.layers {
		l.ZeroGrads()
	}
}

func (n *Network) SetTraining(training bool) {
	for _, l := range n.layers {
		if ta, ok := l.(TrainAware); ok {
			ta.SetTraining(training)
		}
	}
}

// NumParams returns the total scalar parameter count.
func (n *Network) NumParams() int {
	total := 0
	for _, p := range n.Params() {
		total += len(p)
	}
	return total
}

// Snapshot copies all parameters into a flat slice-of-slices, suitable for
// checkpointing or restoring a best-epoch state.
func (n *Network) Snapshot() [][]float64 {
	params := n.Params()
	snap := make([][]float64, len(params))
	for i, p := range params {
		snap[i] = make([]float64, len(p))
		copy(snap[i], p)
	}
	return snap
}

// Restore writes a snapshot back into the network parameters.
func (n *Network) Restore(snap [][]float64) error {
	params := n.Params()
	if len(snap) != len(params) {
		return fmt.Errorf("snapshot has %d parameter groups, network has %d: %w",
			len(snap), len(params), ErrDimensionMismatch)
	}
	for i, p := range params {
		if len(snap[i]) != len(p) {
			return fmt.Errorf("parameter group %d has %d values, expected %d: %w",
				i, len(snap[i]), len(p), ErrDimensionMismatch)
		}
		copy(p, snap[i])
	}
	return nil
}

// ParamsValid reports whether every parameter is finite.
func (n *Network) ParamsValid() bool {
	for _, p := range n.Params() {
		if !p.IsValid() {
			return false
		}
	}
	return true
}
