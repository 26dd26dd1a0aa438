// Package analytics turns per-symbol daily price series into indicators,
// crossover signals, cross-sectional aggregates and investment simulations.
//
// Every function is a pure transformation of its inputs: the dataset is read,
// never modified, and no state survives between calls.
package analytics
