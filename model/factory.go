package model

import "fmt"
import "sort"
import "strings"

var registry = make(map[string]Variant)

// Register makes a variant selectable by its name. Registering an abstract
// variant keeps the name known, resolving it fails with ErrAbstractVariant.
func Register(v Variant) {
	if v.Name == "" {
		panic("model: register variant without name")
	}
	registry[v.Name] = v
}

func init() {
	Register(BaseModel)
	Register(ConvModel)
	Register(ClassificationModel)
	Register(RegressionModel)
	Register(ConvClsModel)
	Register(ConvRegModel)
	Register(XorModel)
}

// Variants returns the names of all concrete variants, sorted
func Variants() (o []string) {
	for name, v := range registry {
		if !v.Abstract() {
			o = append(o, name)
		}
	}
	sort.Strings(o)
	return
}

// Resolve selects the variant of params. A params Variant wins over ModelType,
// an empty ModelType selects RegressionModel.
func Resolve(p Params) (Variant, error) {
	if p.Variant != nil {
		if p.Variant.Abstract() {
			return Variant{}, fmt.Errorf("%w %s", ErrAbstractVariant, p.Variant.Name)
		}
		return *p.Variant, nil
	}
	if p.ModelType == "" {
		return RegressionModel, nil
	}
	v, ok := registry[p.ModelType]
	if !ok {
		return Variant{}, fmt.Errorf("%w %q, known: %s", ErrUnknownVariant, p.ModelType, strings.Join(Variants(), ", "))
	}
	if v.Abstract() {
		return Variant{}, fmt.Errorf("%w %s", ErrAbstractVariant, v.Name)
	}
	return v, nil
}

// NewModel resolves the variant of params and returns an uninitialized model
func NewModel(p Params, opts Options) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	v, err := Resolve(p)
	if err != nil {
		return nil, err
	}
	return newModel(p, v, opts), nil
}

// New returns a built model
func New(p Params, opts Options) (*Model, error) {
	m, err := NewModel(p, opts)
	if err != nil {
		return nil, err
	}
	if err := m.Build(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load returns a model loaded from the store
func Load(p Params, compile bool, opts Options) (*Model, error) {
	m, err := NewModel(p, opts)
	if err != nil {
		return nil, err
	}
	if err := m.Load(compile); err != nil {
		return nil, err
	}
	return m, nil
}

// Resume loads the model when resume is set and a record exists, otherwise it
// builds a fresh one. It reports whether the model was loaded.
func Resume(p Params, resume bool, opts Options) (*Model, bool, error) {
	m, err := NewModel(p, opts)
	if err != nil {
		return nil, false, err
	}
	if resume && m.store().Exists(m.Name()) {
		if err := m.Load(false); err != nil {
			return nil, false, err
		}
		return m, true, nil
	}
	if err := m.Build(); err != nil {
		return nil, false, err
	}
	return m, false, nil
}
