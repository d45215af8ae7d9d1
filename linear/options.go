package linear

import (
	"github.com/mizuhira/lsqfit/pkg/log"
)

// Option configures a LinearRegression before fitting.
type Option func(*LinearRegression)

// WithIntercept controls whether a constant term is estimated alongside
// the feature weights. The default is true; disable it when the data is
// already centered or the model must pass through the origin.
func WithIntercept(enabled bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = enabled
	}
}

// WithRCond sets the relative cutoff for small singular values. Singular
// values below rcond times the largest singular value are treated as
// zero when solving. Values <= 0 restore the default cutoff of
// max(n_samples, n_columns) times the machine epsilon.
func WithRCond(rcond float64) Option {
	return func(lr *LinearRegression) {
		lr.rcond = rcond
	}
}

// WithLogger replaces the logger the model emits training and prediction
// records to. Passing nil silences the model.
func WithLogger(logger log.Logger) Option {
	return func(lr *LinearRegression) {
		lr.logger = logger
	}
}
