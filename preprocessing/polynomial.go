// Package preprocessing provides feature transformations applied before
// fitting a model.
//
// Two transformers are included:
//
//   - PolynomialFeatures: expands a single input column x into the columns
//     [x, x², ..., x^degree], the feature map used for polynomial curve
//     fitting
//   - StandardScaler: standardizes features to zero mean and unit variance
//
// Both follow the Fit / Transform / FitTransform pattern so they can be
// chained in front of an estimator.
//
// Example usage:
//
//	poly, _ := preprocessing.NewPolynomialFeatures(3)
//	expanded, err := poly.Transform(x)
//	if err != nil {
//		log.Fatal(err)
//	}
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mizuhira/lsqfit/core/model"
	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
)

// PolynomialFeatures expands a single feature column into consecutive
// powers of that feature. Column j of the output holds x^(j+1), so a
// degree-3 transformer maps the column x to [x, x², x³].
//
// No bias column is produced. Estimators that want an intercept add their
// own constant term, and duplicating it here would make the design matrix
// rank deficient.
type PolynomialFeatures struct {
	model.StateManager

	// Degree is the highest power generated. The output has exactly
	// Degree columns.
	Degree int
}

// NewPolynomialFeatures creates a transformer producing powers 1..degree.
// The degree must be at least 1.
func NewPolynomialFeatures(degree int) (*PolynomialFeatures, error) {
	if degree < 1 {
		return nil, lsqErrors.NewInvalidInputErrorf("NewPolynomialFeatures", "degree must be >= 1, got %d", degree)
	}
	return &PolynomialFeatures{Degree: degree}, nil
}

// Fit validates the input shape and records its dimensions.
//
// The expansion itself is stateless, so fitting is not required before
// Transform. Fit exists so the transformer can participate in pipelines
// that drive every stage through the same lifecycle.
func (p *PolynomialFeatures) Fit(X mat.Matrix) (err error) {
	defer lsqErrors.Recover(&err, "PolynomialFeatures.Fit")

	r, err := p.validate("PolynomialFeatures.Fit", X)
	if err != nil {
		return err
	}

	p.SetDimensions(1, r)
	p.SetFitted()
	return nil
}

// Transform expands the single input column into power columns.
//
// The input must be an (n, 1) matrix; the output is an (n, Degree) matrix
// whose column j holds the input raised to the power j+1. Transform is a
// pure function of its input and works on an unfitted transformer.
func (p *PolynomialFeatures) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer lsqErrors.Recover(&err, "PolynomialFeatures.Transform")

	r, err := p.validate("PolynomialFeatures.Transform", X)
	if err != nil {
		return nil, err
	}

	result := mat.NewDense(r, p.Degree, nil)
	for i := 0; i < r; i++ {
		x := X.At(i, 0)
		pow := 1.0
		for j := 0; j < p.Degree; j++ {
			pow *= x
			result.Set(i, j, pow)
		}
	}

	return result, nil
}

// FitTransform fits the transformer and expands the data in one step.
func (p *PolynomialFeatures) FitTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer lsqErrors.Recover(&err, "PolynomialFeatures.FitTransform")
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// NumOutputFeatures returns the number of columns Transform produces.
func (p *PolynomialFeatures) NumOutputFeatures() int {
	return p.Degree
}

// FeatureNames returns display names for the generated columns, using the
// given name for the input variable: ["x", "x^2", ..., "x^degree"].
func (p *PolynomialFeatures) FeatureNames(input string) []string {
	names := make([]string, p.Degree)
	names[0] = input
	for j := 1; j < p.Degree; j++ {
		names[j] = fmt.Sprintf("%s^%d", input, j+1)
	}
	return names
}

// GetParams returns the transformer parameters.
func (p *PolynomialFeatures) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"degree": p.Degree,
	}
}

// String returns the string representation of the transformer.
func (p *PolynomialFeatures) String() string {
	return fmt.Sprintf("PolynomialFeatures(degree=%d)", p.Degree)
}

func (p *PolynomialFeatures) validate(op string, X mat.Matrix) (int, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return 0, lsqErrors.NewInvalidInputError(op, "empty data")
	}
	if c != 1 {
		return 0, lsqErrors.NewInvalidInputErrorf(op, "input must be a single column, got %d columns", c)
	}
	return r, nil
}
