package model

import (
	"github.com/kilianp07/evload/core/factory"
	"github.com/kilianp07/evload/core/prediction"
)

// init registers built-in model types.
func init() {
	_ = prediction.RegisterModel("linear", func(conf map[string]any) (prediction.Model, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path != "" {
			return LoadLinear(c.Path)
		}
		// Inline artifact under model.conf.
		var a LinearArtifact
		if err := factory.Decode(conf, &a); err != nil {
			return nil, err
		}
		return NewLinearModel(a, "inline")
	})

	_ = prediction.RegisterModel("remote", func(conf map[string]any) (prediction.Model, error) {
		var c RemoteConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewRemoteModel(c)
	})

	_ = prediction.RegisterModel("constant", func(conf map[string]any) (prediction.Model, error) {
		var c struct {
			Value float64 `json:"value"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return prediction.ConstantModel{Value: c.Value}, nil
	})
}
