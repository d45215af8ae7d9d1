// Package metrics provides evaluation metrics for regression models.
//
// The package implements the standard error and goodness-of-fit measures
// used when studying model capacity:
//
//   - MSE / RMSE: mean squared error and its root
//   - MAE: mean absolute error, more robust to outliers
//   - R²: coefficient of determination
//   - MAPE: mean absolute percentage error
//   - Explained variance score
//
// All functions take gonum vectors, validate their inputs, and return an
// *errors.InvalidInputError when the inputs are empty, mismatched in
// length, or degenerate (for example a constant target for R²).
//
// Example usage:
//
//	mse, err := metrics.MSE(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("MSE: %.4f\n", mse)
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
)

// validateLengths checks that both vectors are non-empty and equally sized,
// returning the shared length.
func validateLengths(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, lsqErrors.NewInvalidInputError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, lsqErrors.NewInvalidInputErrorf(op, "length mismatch: yTrue has %d elements, yPred has %d", n, yPred.Len())
	}
	return n, nil
}

// MSE calculates the Mean Squared Error between true and predicted values.
//
// MSE measures the average squared difference between predictions and
// actual values. Lower values indicate better model performance, and the
// result is always non-negative. MSE is sensitive to outliers because the
// differences are squared.
//
// Returns an *errors.InvalidInputError when the vectors are empty or their
// lengths differ.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validateLengths("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// MSEMatrix calculates MSE for column-vector matrix inputs (n×1).
//
// Prediction methods return mat.Matrix, so this wrapper saves callers the
// conversion when comparing predictions against a target column. Inputs
// with more than one column are rejected.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, lsqErrors.NewInvalidInputError("MSEMatrix", "empty matrix")
	}
	if rTrue != rPred || cTrue != cPred {
		return 0, lsqErrors.NewInvalidInputErrorf("MSEMatrix", "dimension mismatch: yTrue is %dx%d, yPred is %dx%d", rTrue, cTrue, rPred, cPred)
	}
	if cTrue != 1 {
		return 0, lsqErrors.NewInvalidInputError("MSEMatrix", "inputs must be column vectors (n×1 matrices)")
	}

	yTrueVec := mat.NewVecDense(rTrue, nil)
	yPredVec := mat.NewVecDense(rPred, nil)
	for i := 0; i < rTrue; i++ {
		yTrueVec.SetVec(i, yTrue.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}

	return MSE(yTrueVec, yPredVec)
}

// RMSE calculates the Root Mean Squared Error, the square root of MSE.
// It reports the error in the same units as the target variable.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the Mean Absolute Error between true and predicted values.
//
// MAE averages the absolute differences, so single large residuals weigh
// less than they do under MSE. Lower values indicate better performance.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validateLengths("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}

	return sum / float64(n), nil
}

// R2Score calculates the coefficient of determination (R²).
//
// R² is the proportion of the variance in the target that the predictions
// explain. The best possible score is 1.0; a model that always predicts
// the target mean scores 0, and arbitrarily worse models go negative.
//
// When the target is constant the total sum of squares is zero and R² is
// undefined; that case returns an *errors.InvalidInputError rather than a
// NaN or an arbitrary convention value.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validateLengths("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)

		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		return 0, lsqErrors.NewInvalidInputError("R2Score", "total sum of squares is zero (constant target), R² is undefined")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// MAPE calculates the Mean Absolute Percentage Error.
//
// MAPE expresses the error as a percentage of the true values, which makes
// it scale independent. Entries where yTrue is exactly zero are skipped;
// when every entry is zero the metric is undefined and an error is
// returned.
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validateLengths("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAPE = (100/n) * Σ|yTrue - yPred|/|yTrue|
	var sum float64
	validCount := 0
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		if yTrueVal != 0 {
			sum += math.Abs(yTrueVal-yPred.AtVec(i)) / math.Abs(yTrueVal)
			validCount++
		}
	}

	if validCount == 0 {
		return 0, lsqErrors.NewInvalidInputError("MAPE", "all yTrue values are zero, MAPE is undefined")
	}

	return (sum / float64(validCount)) * 100, nil
}

// ExplainedVarianceScore calculates the explained variance regression score.
//
// The score is 1 - Var(yTrue - yPred) / Var(yTrue). Unlike R² it ignores a
// systematic offset in the predictions. The best possible score is 1.0.
// A constant target has no variance to explain and yields an error.
func ExplainedVarianceScore(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validateLengths("ExplainedVarianceScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yTrueMean, diffMean float64
	for i := 0; i < n; i++ {
		yTrueMean += yTrue.AtVec(i)
		diffMean += yTrue.AtVec(i) - yPred.AtVec(i)
	}
	yTrueMean /= float64(n)
	diffMean /= float64(n)

	var varYTrue, varDiff float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		diff := yTrueVal - yPred.AtVec(i)

		varYTrue += (yTrueVal - yTrueMean) * (yTrueVal - yTrueMean)
		varDiff += (diff - diffMean) * (diff - diffMean)
	}
	varYTrue /= float64(n)
	varDiff /= float64(n)

	if varYTrue == 0 {
		return 0, lsqErrors.NewInvalidInputError("ExplainedVarianceScore", "no variance in yTrue")
	}

	return 1 - varDiff/varYTrue, nil
}
