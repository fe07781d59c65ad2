// Package prediction defines the contract of the trained load model. A model
// receives a feature table, one row per forecast hour with columns in the
// fixed schema order, and returns one predicted charging load (kW) per row.
// Models are loaded once at start-up and must tolerate concurrent Predict
// calls.
package prediction
