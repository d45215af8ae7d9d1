package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the interface for models that learn from data.
type Estimator interface {
	// Fit trains the model on the given features and targets.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that produce predictions.
type Predictor interface {
	// Predict returns predictions for the given features.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can evaluate themselves.
type Scorer interface {
	// Score returns the coefficient of determination R² of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces a regression model satisfies.
type Regressor interface {
	Estimator
	Predictor
	Scorer
}

// Transformer is the interface for feature transformations.
type Transformer interface {
	// Fit learns any parameters the transformation needs.
	Fit(X mat.Matrix) error

	// Transform applies the transformation.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits and transforms in one step.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]interface{}) error
}
