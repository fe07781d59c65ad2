// Package factory holds the generic registry used to build pluggable modules
// (models, metrics sinks) from configuration. A module is described by a type
// name and a raw settings map; the registered factory decodes the map into its
// own typed struct with Decode and returns the concrete implementation.
//
//	reg := factory.NewRegistry[prediction.Model]()
//	_ = reg.Register("constant", func(conf map[string]any) (prediction.Model, error) {
//	    var c struct{ Value float64 `json:"value"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return prediction.ConstantModel{Value: c.Value}, nil
//	})
//	m, err := reg.Create(factory.ModuleConfig{Type: "constant", Conf: map[string]any{"value": 4.2}})
package factory
