// Package sequential implements a named sequential network of layer stages
package sequential

import "encoding/json"
import "fmt"
import "io"
import "text/tabwriter"

import "github.com/openfluke/loom/nn"

import "github.com/neurlang/circlecount/layer"

// Network is the sequential network description. Each added layer is resolved
// against the output shape of the previous one.
type Network struct {
	name   string
	input  layer.Shape
	stages []layer.Stage
}

// New creates an empty network called name taking input of shape input.
func New(name string, input layer.Shape) *Network {
	return &Network{name: name, input: input}
}

// Name is the network display name, also its persisted record key.
func (n *Network) Name() string {
	return n.name
}

// Input is the input shape.
func (n *Network) Input() layer.Shape {
	return n.input
}

// Output is the output shape of the last stage, or the input shape if empty.
func (n *Network) Output() layer.Shape {
	if len(n.stages) == 0 {
		return n.input
	}
	return n.stages[len(n.stages)-1].Out
}

// Stages returns the resolved stages in order.
func (n *Network) Stages() []layer.Stage {
	return append([]layer.Stage(nil), n.stages...)
}

// Len returns the number of stages.
func (n *Network) Len() int {
	return len(n.stages)
}

// LenLayers returns the number of loom layers the stages lay out into.
func (n *Network) LenLayers() (o int) {
	for _, s := range n.stages {
		o += len(s.Definitions)
	}
	return
}

// Last returns the final stage. It reports false on an empty network.
func (n *Network) Last() (layer.Stage, bool) {
	if len(n.stages) == 0 {
		return layer.Stage{}, false
	}
	return n.stages[len(n.stages)-1], true
}

// NewLayer adds a layer to the end of network.
func (n *Network) NewLayer(l layer.Layer) error {
	if !n.input.Valid() {
		return fmt.Errorf("network %s: invalid input shape %s", n.name, n.input)
	}
	s, err := l.Lay(n.Output())
	if err != nil {
		return fmt.Errorf("network %s stage %d: %w", n.name, len(n.stages), err)
	}
	n.stages = append(n.stages, s)
	return nil
}

// MustNewLayer adds a layer to the end of network, panicking on shape errors.
func (n *Network) MustNewLayer(l layer.Layer) {
	if err := n.NewLayer(l); err != nil {
		panic(err.Error())
	}
}

type definition struct {
	ID            string             `json:"id"`
	BatchSize     int                `json:"batch_size"`
	GridRows      int                `json:"grid_rows"`
	GridCols      int                `json:"grid_cols"`
	LayersPerCell int                `json:"layers_per_cell"`
	Layers        []layer.Definition `json:"layers"`
}

// Definition renders the loom network description of a single grid cell.
func (n *Network) Definition(batch int) ([]byte, error) {
	if batch <= 0 {
		batch = 1
	}
	var d = definition{
		ID:        n.name,
		BatchSize: batch,
		GridRows:  1,
		GridCols:  1,
	}
	for _, s := range n.stages {
		d.Layers = append(d.Layers, s.Definitions...)
	}
	if len(d.Layers) == 0 {
		return nil, fmt.Errorf("network %s has no loom layers", n.name)
	}
	d.LayersPerCell = len(d.Layers)
	return json.MarshalIndent(d, "", "\t")
}

// Build builds the loom network and initializes its weights.
func (n *Network) Build() (*nn.Network, error) {
	def, err := n.Definition(1)
	if err != nil {
		return nil, err
	}
	net, err := nn.BuildNetworkFromJSON(string(def))
	if err != nil {
		return nil, fmt.Errorf("network %s: %w", n.name, err)
	}
	net.InitializeWeights()
	return net, nil
}

// Summary writes a table of the stages to w.
func (n *Network) Summary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Network: %q\n", n.name)
	fmt.Fprintln(tw, "#\tStage\tActivation\tOutput\tLoom layers")
	fmt.Fprintf(tw, "-\tinput\t\t%s\t\n", n.input)
	var emulated bool
	for i, s := range n.stages {
		var act = string(s.Activation)
		if act == "" {
			act = "-"
		}
		var kind = string(s.Kind)
		if s.Kind.Emulated() {
			kind += "*"
			emulated = true
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", i, kind, act, s.Out, len(s.Definitions))
	}
	fmt.Fprintf(tw, "total\t%d stages\t\t%s\t%d\n", len(n.stages), n.Output(), n.LenLayers())
	if emulated {
		fmt.Fprintln(tw, "* runs as a strided conv2d")
	}
	return tw.Flush()
}
