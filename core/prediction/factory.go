package prediction

import (
	"errors"

	"github.com/kilianp07/evload/core/factory"
)

// ErrUpstream marks failures of a remote inference dependency, as opposed to
// failures of an in-process model.
var ErrUpstream = errors.New("inference upstream unavailable")

var modelRegistry = factory.NewRegistry[Model]()

// RegisterModel adds a model factory identified by name.
func RegisterModel(name string, f factory.Factory[Model]) error {
	return modelRegistry.Register(name, f)
}

// NewModel loads the model described by cfg.
func NewModel(cfg factory.ModuleConfig) (Model, error) {
	return modelRegistry.Create(cfg)
}

// ModelTypes lists the registered model types.
func ModelTypes() []string { return modelRegistry.Types() }
