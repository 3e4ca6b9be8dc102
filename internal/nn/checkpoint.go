package nn

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/baajur/yarnn/internal/serialization"
	"github.com/baajur/yarnn/internal/tensor"
)

// Parameterized is implemented by layers with trainable parameters that
// can be saved and restored.
type Parameterized[N tensor.Float] interface {
	// Parameters returns the layer's parameter tensors by local name.
	Parameters() map[string]*tensor.Tensor[N]
}

// StateDict returns every parameter of the network keyed as
// "layers.<index>.<name>", e.g. "layers.0.weight". The tensors are the live
// parameters, not copies.
func (s *Sequential[N]) StateDict() map[string]*tensor.Tensor[N] {
	dict := make(map[string]*tensor.Tensor[N])
	for i, layer := range s.layers {
		p, ok := layer.(Parameterized[N])
		if !ok {
			continue
		}
		for name, t := range p.Parameters() {
			dict[paramKey(i, name)] = t
		}
	}
	return dict
}

// LoadStateDict copies values from dict into the network's parameters.
// Every parameter must be present with a matching shape; extra entries are
// ignored. Nothing is modified when an error is returned.
func (s *Sequential[N]) LoadStateDict(dict map[string]*tensor.Tensor[N]) error {
	own := s.StateDict()

	var errs []error
	for key, dst := range own {
		src, ok := dict[key]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%w: %s", serialization.ErrMissingTensor, key))
		case !src.Shape().Equal(dst.Shape()):
			errs = append(errs, fmt.Errorf("%w: %s is %v, want %v", serialization.ErrShapeMismatch, key, src.Shape(), dst.Shape()))
		case !src.Allocated():
			errs = append(errs, fmt.Errorf("load %s: tensor holds no data", key))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	for key, dst := range own {
		s.backend.Copy(dst, dict[key])
	}
	s.logger.Debug("loaded parameters", "tensors", len(own))
	return nil
}

// Save writes the network parameters to path in SafeTensors format.
func (s *Sequential[N]) Save(path string, metadata map[string]string) error {
	if err := serialization.WriteFile(path, s.StateDict(), metadata); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load restores the network parameters from a SafeTensors file written by Save.
func (s *Sequential[N]) Load(path string) (map[string]string, error) {
	file, err := serialization.ReadFile[N](path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := s.LoadStateDict(file.Tensors); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return file.Metadata, nil
}

func paramKey(layer int, name string) string {
	return "layers." + strconv.Itoa(layer) + "." + name
}
