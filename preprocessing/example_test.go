package preprocessing_test

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/mizuhira/lsqfit/preprocessing"
)

// ExamplePolynomialFeatures demonstrates expanding a column into powers
func ExamplePolynomialFeatures() {
	x := mat.NewDense(3, 1, []float64{1.0, 2.0, 3.0})

	poly, err := preprocessing.NewPolynomialFeatures(3)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	expanded, err := poly.Transform(x)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	// the row for x=2 holds [2, 4, 8]
	fmt.Printf("x=2 expands to: [%.0f, %.0f, %.0f]\n",
		expanded.At(1, 0), expanded.At(1, 1), expanded.At(1, 2))

	// Output: x=2 expands to: [2, 4, 8]
}

// ExamplePolynomialFeatures_featureNames demonstrates naming the columns
func ExamplePolynomialFeatures_featureNames() {
	poly, err := preprocessing.NewPolynomialFeatures(4)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(strings.Join(poly.FeatureNames("x"), ", "))

	// Output: x, x^2, x^3, x^4
}

// ExampleStandardScaler demonstrates basic usage of StandardScaler
func ExampleStandardScaler() {
	data := []float64{
		1.0, 2.0,
		3.0, 4.0,
		5.0, 6.0,
		7.0, 8.0,
	}
	X := mat.NewDense(4, 2, data)

	scaler := preprocessing.NewStandardScaler(true, true)
	if err := scaler.Fit(X); err != nil {
		fmt.Println("Error:", err)
		return
	}

	scaled, err := scaler.Transform(X)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Scaled first row: [%.2f, %.2f]\n", scaled.At(0, 0), scaled.At(0, 1))

	// Output: Scaled first row: [-1.34, -1.34]
}

// ExampleStandardScaler_fitTransform demonstrates FitTransform usage
func ExampleStandardScaler_fitTransform() {
	data := []float64{
		10.0, 100.0,
		20.0, 200.0,
		30.0, 300.0,
	}
	X := mat.NewDense(3, 2, data)

	scaler := preprocessing.NewStandardScaler(true, true)
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	if scaler.IsFitted() {
		fmt.Println("Scaler is fitted")
	}

	r, c := scaled.Dims()
	fmt.Printf("Scaled data shape: (%d, %d)\n", r, c)

	// Output: Scaler is fitted
	// Scaled data shape: (3, 2)
}
