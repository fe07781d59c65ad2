// Package model provides the prediction.Model implementations selectable
// through the `model.type` configuration key:
//
//   - linear: a linear regression artifact (JSON or YAML) evaluated with gonum
//   - remote: an HTTP inference service, optionally behind OAuth2
//   - constant: a fixed prediction, for demos and smoke tests
//
// Importing the package registers all three types.
package model
