// Package linear provides ordinary least squares regression.
//
// The centerpiece is LinearRegression, which fits a linear model by
// singular value decomposition of the design matrix:
//
//   - Overdetermined systems get the usual least squares solution
//   - Rank-deficient and underdetermined systems get the minimum-norm
//     solution, with small singular values cut off by a configurable
//     relative tolerance
//   - The effective rank and the singular values are kept on the model
//     for inspection after fitting
//
// Example usage:
//
//	lr := linear.NewLinearRegression()
//	err := lr.Fit(X, y) // X: features, y: target values
//	if err != nil {
//		log.Fatal(err)
//	}
//	predictions, err := lr.Predict(XTest)
//
// Fitted models can be persisted two ways: binary snapshots through
// core/model SaveModel/LoadModel, and a portable JSON parameter format
// through ExportParams/ImportParams:
//
//	err = lr.ExportParams("model.json")
//
//	lr2 := linear.NewLinearRegression()
//	err = lr2.ImportParams("model.json")
package linear

import (
	"fmt"
	"io"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/mizuhira/lsqfit/core/model"
	"github.com/mizuhira/lsqfit/core/parallel"
	"github.com/mizuhira/lsqfit/metrics"
	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
	"github.com/mizuhira/lsqfit/pkg/log"
)

// paramsModelName identifies this estimator in JSON parameter files.
const paramsModelName = "LinearRegression"

// parallelThreshold is the row count below which matrix assembly and
// prediction loops run sequentially.
const parallelThreshold = 1000

// eps is the double-precision machine epsilon, used for the default
// singular value cutoff.
const eps = 0x1p-52

// LinearRegression is an ordinary least squares regression model.
type LinearRegression struct {
	State     *model.StateManager // State manager (composition instead of embedding) - public for gob encoding
	Weights   *mat.VecDense       // Model weights (coefficients)
	Intercept float64             // Model intercept
	NFeatures int                 // Number of features
	Rank      int                 // Effective rank of the design matrix
	Singular  []float64           // Singular values of the design matrix, descending

	fitIntercept bool
	rcond        float64
	logger       log.Logger
}

// NewLinearRegression creates a new linear regression model.
//
// The model solves the least squares problem through an SVD of the design
// matrix, which handles overdetermined, underdetermined and rank-deficient
// inputs without forming the normal equations. The returned model must be
// trained with Fit before making predictions.
//
// Example:
//
//	lr := linear.NewLinearRegression()
//	err := lr.Fit(X, y)
//	predictions, err := lr.Predict(XTest)
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		State:        model.NewStateManager(),
		fitIntercept: true,
	}

	lr.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, "LinearRegression",
		log.ComponentKey, "linear",
	)

	for _, opt := range opts {
		opt(lr)
	}

	return lr
}

// Fit trains the model on the given data.
//
// X is the feature matrix of shape (n_samples, n_features) and y the
// target column of shape (n_samples, 1). When the intercept is enabled a
// column of ones is prepended to the design matrix, and the system is
// solved by thin SVD. Singular values below rcond times the largest one
// are treated as zero, so rank-deficient systems yield the minimum-norm
// solution instead of failing.
//
// Returns an *errors.InvalidInputError when the inputs are empty, the row
// counts differ, or y is not a single column.
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer lsqErrors.Recover(&err, "LinearRegression.Fit")

	startTime := time.Now()
	r, c := X.Dims()
	ry, cy := y.Dims()

	if lr.logger != nil {
		lr.logger.Info("Training started",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	if r == 0 || c == 0 {
		return lsqErrors.NewInvalidInputError("LinearRegression.Fit", "empty data")
	}
	if ry != r {
		return lsqErrors.NewInvalidInputErrorf("LinearRegression.Fit", "X has %d rows but y has %d", r, ry)
	}
	if cy != 1 {
		return lsqErrors.NewInvalidInputError("LinearRegression.Fit", "y must be a column vector")
	}

	lr.NFeatures = c

	// Design matrix, with a leading column of ones when the intercept
	// is estimated.
	p := c
	offset := 0
	if lr.fitIntercept {
		p = c + 1
		offset = 1
	}
	design := mat.NewDense(r, p, nil)

	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			if lr.fitIntercept {
				design.Set(i, 0, 1.0)
			}
			for j := 0; j < c; j++ {
				design.Set(i, j+offset, X.At(i, j))
			}
		}
	})

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	coeffs, rank, singular, err := lr.solveLeastSquares(design, yVec)
	if err != nil {
		return err
	}
	lr.Rank = rank
	lr.Singular = singular

	if lr.fitIntercept {
		lr.Intercept = coeffs.AtVec(0)
		lr.Weights = mat.NewVecDense(c, nil)
		for i := 0; i < c; i++ {
			lr.Weights.SetVec(i, coeffs.AtVec(i+1))
		}
	} else {
		lr.Intercept = 0
		lr.Weights = coeffs
	}

	if err := lsqErrors.CheckVector("LinearRegression.Fit", lr.GetWeights()); err != nil {
		return err
	}

	if rank < p && lr.logger != nil {
		lr.logger.Warn("Design matrix is rank deficient, minimum-norm solution used",
			log.OperationKey, log.OperationFit,
			log.RankKey, rank,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	lr.State.SetFitted()
	lr.State.SetDimensions(lr.NFeatures, r)

	duration := time.Since(startTime)
	if lr.logger != nil {
		lr.logger.Info("Training completed",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.DurationMsKey, duration.Milliseconds(),
			log.SamplesKey, r,
			log.FeaturesKey, c,
			log.RankKey, rank,
		)
	}

	return nil
}

// solveLeastSquares computes the minimum-norm least squares solution of
// design * w = y through a thin SVD, returning the coefficients, the
// effective rank and the singular values.
func (lr *LinearRegression) solveLeastSquares(design *mat.Dense, y *mat.VecDense) (*mat.VecDense, int, []float64, error) {
	r, p := design.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(design, mat.SVDThin); !ok {
		return nil, 0, nil, lsqErrors.NewModelError("LinearRegression.Fit", "SVD factorization did not converge", nil)
	}

	// Values are returned in descending order, so the first entry sets
	// the cutoff scale.
	singular := svd.Values(nil)

	rcond := lr.rcond
	if rcond <= 0 {
		rcond = float64(max(r, p)) * eps
	}
	tol := 0.0
	if len(singular) > 0 {
		tol = rcond * singular[0]
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// w = V * Σ⁺ * Uᵀ * y with small singular values dropped
	k := len(singular)
	var uty mat.VecDense
	uty.MulVec(u.T(), y)

	rank := 0
	scaled := mat.NewVecDense(k, nil)
	for i := 0; i < k; i++ {
		if singular[i] > tol {
			scaled.SetVec(i, uty.AtVec(i)/singular[i])
			rank++
		}
	}

	coeffs := mat.NewVecDense(p, nil)
	coeffs.MulVec(&v, scaled)

	return coeffs, rank, singular, nil
}

// Predict computes y = X * weights + intercept for each input row.
//
// The returned matrix has shape (n_samples, 1). The model must be fitted,
// and X must have the same number of columns as the training data,
// otherwise an *errors.NotFittedError or *errors.SchemaMismatchError is
// returned.
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer lsqErrors.Recover(&err, "LinearRegression.Predict")

	if !lr.State.IsFitted() {
		return nil, lsqErrors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, lsqErrors.NewSchemaMismatchError("LinearRegression.Predict", lr.NFeatures, c)
	}

	if lr.logger != nil {
		lr.logger.Debug("Prediction started",
			log.OperationKey, log.OperationPredict,
			log.PhaseKey, log.PhaseInference,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	predictions := mat.NewDense(r, 1, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := lr.Intercept
			for j := 0; j < c; j++ {
				pred += X.At(i, j) * lr.Weights.AtVec(j)
			}
			predictions.Set(i, 0, pred)
		}
	})

	if lr.logger != nil {
		lr.logger.Debug("Prediction completed",
			log.OperationKey, log.OperationPredict,
			log.PredsKey, r,
		)
	}

	return predictions, nil
}

// Score calculates the coefficient of determination R² on the given data.
//
// A constant target has no variance for the model to explain, so that
// case returns an *errors.InvalidInputError rather than a conventional
// score.
func (lr *LinearRegression) Score(X, y mat.Matrix) (_ float64, err error) {
	defer lsqErrors.Recover(&err, "LinearRegression.Score")

	if !lr.State.IsFitted() {
		return 0, lsqErrors.NewNotFittedError("LinearRegression", "Score")
	}

	rX, _ := X.Dims()
	r, cy := y.Dims()
	if cy != 1 {
		return 0, lsqErrors.NewInvalidInputError("LinearRegression.Score", "y must be a column vector")
	}
	if r != rX {
		return 0, lsqErrors.NewInvalidInputErrorf("LinearRegression.Score", "X has %d rows but y has %d", rX, r)
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	yTrueVec := mat.NewVecDense(r, nil)
	yPredVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrueVec.SetVec(i, y.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}

	return metrics.R2Score(yTrueVec, yPredVec)
}

// GetWeights returns a copy of the learned weights (coefficients).
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}

	weights := make([]float64, lr.Weights.Len())
	for i := 0; i < lr.Weights.Len(); i++ {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// GetIntercept returns the learned intercept.
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.State.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// ImportParams loads model parameters from a JSON file.
//
// Example:
//
//	lr := NewLinearRegression()
//	err := lr.ImportParams("model.json")
func (lr *LinearRegression) ImportParams(filename string) (err error) {
	defer lsqErrors.Recover(&err, "LinearRegression.ImportParams")

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return lr.ImportParamsFromReader(file)
}

// ImportParamsFromReader loads model parameters from JSON data.
//
// The payload must be a parameter envelope for a model named
// "LinearRegression" with format version 1.0, as written by ExportParams
// or by an external exporter following the same format.
func (lr *LinearRegression) ImportParamsFromReader(r io.Reader) (err error) {
	defer lsqErrors.Recover(&err, "LinearRegression.ImportParamsFromReader")

	env, err := model.LoadParamsFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to load params: %w", err)
	}

	params, err := model.DecodeLinearModelParams(env, paramsModelName)
	if err != nil {
		return fmt.Errorf("failed to decode linear regression params: %w", err)
	}

	lr.NFeatures = params.NFeatures
	lr.Intercept = params.Intercept
	lr.Weights = mat.NewVecDense(len(params.Coefficients), params.Coefficients)

	// rank and singular values are not part of the parameter format
	lr.Rank = 0
	lr.Singular = nil

	lr.State.SetFitted()
	// sample count is not recorded in the params file
	lr.State.SetDimensions(lr.NFeatures, 0)

	return nil
}

// ExportParams writes the fitted parameters to a JSON file.
func (lr *LinearRegression) ExportParams(filename string) (err error) {
	defer lsqErrors.Recover(&err, "LinearRegression.ExportParams")

	if !lr.State.IsFitted() {
		return lsqErrors.NewNotFittedError("LinearRegression", "ExportParams")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return lr.ExportParamsToWriter(file)
}

// ExportParamsToWriter writes the fitted parameters as JSON.
func (lr *LinearRegression) ExportParamsToWriter(w io.Writer) (err error) {
	defer lsqErrors.Recover(&err, "LinearRegression.ExportParamsToWriter")

	if !lr.State.IsFitted() {
		return lsqErrors.NewNotFittedError("LinearRegression", "ExportParamsToWriter")
	}

	params := model.LinearModelParams{
		Coefficients: lr.GetWeights(),
		Intercept:    lr.Intercept,
		NFeatures:    lr.NFeatures,
	}

	return model.ExportParams(paramsModelName, params, w)
}

// IsFitted returns whether the model has been fitted.
func (lr *LinearRegression) IsFitted() bool {
	return lr.State.IsFitted()
}

// GetParams returns the model's hyperparameters.
func (lr *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.fitIntercept,
		"rcond":         lr.rcond,
		"n_features":    lr.NFeatures,
		"fitted":        lr.State.IsFitted(),
	}
}

// SetParams sets the model's hyperparameters.
func (lr *LinearRegression) SetParams(params map[string]interface{}) error {
	if v, ok := params["fit_intercept"]; ok {
		enabled, ok := v.(bool)
		if !ok {
			return lsqErrors.NewInvalidInputError("LinearRegression.SetParams", "fit_intercept must be a bool")
		}
		lr.fitIntercept = enabled
	}
	if v, ok := params["rcond"]; ok {
		rcond, ok := v.(float64)
		if !ok {
			return lsqErrors.NewInvalidInputError("LinearRegression.SetParams", "rcond must be a float64")
		}
		lr.rcond = rcond
	}
	return nil
}
