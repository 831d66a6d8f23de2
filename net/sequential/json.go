package sequential

import "encoding/json"
import "fmt"
import "io"
import "os"

import "github.com/neurlang/circlecount/layer"

// Manifest is the persisted description of a network's stages.
type Manifest struct {
	Name       string        `json:"name"`
	Input      layer.Shape   `json:"input"`
	Stages     []layer.Stage `json:"stages"`
	LoomLayers int           `json:"loom_layers"`
}

// Manifest describes the network.
func (n *Network) Manifest() Manifest {
	return Manifest{
		Name:       n.name,
		Input:      n.input,
		Stages:     n.Stages(),
		LoomLayers: n.LenLayers(),
	}
}

// WriteManifest writes the network manifest to a writer
func (n *Network) WriteManifest(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(n.Manifest())
}

// WriteManifestToFile writes the network manifest to a json file
func (n *Network) WriteManifestToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = n.WriteManifest(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadManifest reads a network manifest from a reader
func ReadManifest(r io.Reader) (m Manifest, err error) {
	err = json.NewDecoder(r).Decode(&m)
	return
}

// ReadManifestFromFile reads a network manifest from a json file
func ReadManifestFromFile(name string) (Manifest, error) {
	file, err := os.Open(name)
	if err != nil {
		return Manifest{}, err
	}
	defer file.Close()
	return ReadManifest(file)
}

// Matches reports whether the manifest describes the same graph as network n.
func (m Manifest) Matches(n *Network) error {
	if m.Name != n.name {
		return fmt.Errorf("manifest name %q does not match network %q", m.Name, n.name)
	}
	if m.Input != n.input {
		return fmt.Errorf("manifest input %s does not match network input %s", m.Input, n.input)
	}
	if len(m.Stages) != len(n.stages) {
		return fmt.Errorf("manifest has %d stages, network %s has %d", len(m.Stages), n.name, len(n.stages))
	}
	for i := range m.Stages {
		if m.Stages[i].Kind != n.stages[i].Kind || m.Stages[i].Out != n.stages[i].Out {
			return fmt.Errorf("manifest stage %d (%s) does not match network stage (%s)", i, m.Stages[i], n.stages[i])
		}
	}
	return nil
}
