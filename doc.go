// Package lsqfit is an educational least-squares toolkit built around
// two demonstrations: fitting polynomials of increasing degree to noisy
// samples of a known curve, which makes underfitting and overfitting
// visible, and fitting a multivariate linear model to a delimited
// numeric table with a positional holdout.
//
// The pieces compose in the usual order: dataset loads or generates
// data, preprocessing expands or standardizes features, linear solves
// the least-squares problem by SVD (minimum-norm when rank deficient),
// metrics scores the result and experiment wires the whole pipeline
// into reproducible studies. The cmd/curvefit and cmd/tablefit commands
// expose both studies on the command line.
package lsqfit
