package nn

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/grad/internal/tensor"
)

// Stateful is implemented by modules whose parameters can be exported and
// restored by name.
type Stateful interface {
	StateDict() map[string]tensor.Tensor
	LoadStateDict(stateDict map[string]tensor.Tensor) error
}

// StateDict returns copies of the layer's parameters keyed "weight" and
// "bias".
func (l *Linear) StateDict() map[string]tensor.Tensor {
	return map[string]tensor.Tensor{
		"weight": l.weight.Data().Clone(),
		"bias":   l.bias.Data().Clone(),
	}
}

// LoadStateDict overwrites the layer's parameters.
func (l *Linear) LoadStateDict(stateDict map[string]tensor.Tensor) error {
	weight, err := lookupState(stateDict, "weight", tensor.Shape{l.inFeatures, l.outFeatures})
	if err != nil {
		return err
	}
	bias, err := lookupState(stateDict, "bias", tensor.Shape{1, l.outFeatures})
	if err != nil {
		return err
	}

	l.weight.SetData(weight.Clone())
	l.bias.SetData(bias.Clone())
	return nil
}

// StateDict returns a map of parameter names to tensors.
//
// Parameters are prefixed with their module index (e.g., "0.weight",
// "0.bias", "2.weight") to avoid name collisions. Modules that do not
// implement Stateful are skipped.
func (s *Sequential[D]) StateDict() map[string]tensor.Tensor {
	stateDict := make(map[string]tensor.Tensor)
	for i, module := range s.modules {
		stateful, ok := module.(Stateful)
		if !ok {
			continue
		}
		for name, t := range stateful.StateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = t
		}
	}
	return stateDict
}

// LoadStateDict loads parameters from a state dictionary.
//
// Parameters should be prefixed with their module index (e.g., "0.weight").
func (s *Sequential[D]) LoadStateDict(stateDict map[string]tensor.Tensor) error {
	for i, module := range s.modules {
		stateful, ok := module.(Stateful)
		if !ok {
			continue
		}

		prefix := fmt.Sprintf("%d.", i)
		moduleStateDict := make(map[string]tensor.Tensor)
		for key, t := range stateDict {
			if name, found := strings.CutPrefix(key, prefix); found {
				moduleStateDict[name] = t
			}
		}

		if err := stateful.LoadStateDict(moduleStateDict); err != nil {
			return errors.Wrapf(err, "load module %d", i)
		}
	}
	return nil
}

// StateDict packs each layer's neurons into "<i>.weight" with shape
// [outputs, inputs] and "<i>.bias" with shape [outputs].
func (m *MLP) StateDict() map[string]tensor.Tensor {
	stateDict := make(map[string]tensor.Tensor, 2*len(m.layers))
	for i, l := range m.layers {
		nout, nin := len(l.neurons), len(l.neurons[0].weights)
		weight := tensor.Zeros(tensor.Shape{nout, nin})
		bias := tensor.Zeros(tensor.Shape{nout})

		w, b := weight.Data(), bias.Data()
		for j, n := range l.neurons {
			for k, p := range n.weights {
				w[j*nin+k] = float32(p.Data())
			}
			b[j] = float32(n.bias.Data())
		}

		stateDict[fmt.Sprintf("%d.weight", i)] = weight
		stateDict[fmt.Sprintf("%d.bias", i)] = bias
	}
	return stateDict
}

// LoadStateDict overwrites every neuron's parameters from a dictionary in
// the layout produced by StateDict.
func (m *MLP) LoadStateDict(stateDict map[string]tensor.Tensor) error {
	for i, l := range m.layers {
		nout, nin := len(l.neurons), len(l.neurons[0].weights)
		weight, err := lookupState(stateDict, fmt.Sprintf("%d.weight", i), tensor.Shape{nout, nin})
		if err != nil {
			return err
		}
		bias, err := lookupState(stateDict, fmt.Sprintf("%d.bias", i), tensor.Shape{nout})
		if err != nil {
			return err
		}

		for j, n := range l.neurons {
			for k, p := range n.weights {
				p.SetData(tensor.Scalar(weight.At(j, k)))
			}
			n.bias.SetData(tensor.Scalar(bias.At(j)))
		}
	}
	return nil
}

func lookupState(stateDict map[string]tensor.Tensor, name string, shape tensor.Shape) (tensor.Tensor, error) {
	t, ok := stateDict[name]
	if !ok {
		return tensor.Tensor{}, errors.Errorf("missing %s in state dict", name)
	}
	if !t.Shape().Equal(shape) {
		return tensor.Tensor{}, errors.Errorf("%s shape mismatch: expected %v, got %v", name, shape, t.Shape())
	}
	return t, nil
}

var (
	_ Stateful = (*Linear)(nil)
	_ Stateful = (*Sequential[tensor.Tensor])(nil)
	_ Stateful = (*MLP)(nil)
)
