package preprocessing_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/mizuhira/lsqfit/preprocessing"
	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
)

func TestPolynomialFeaturesRejectsBadDegree(t *testing.T) {
	for _, degree := range []int{0, -1, -10} {
		_, err := preprocessing.NewPolynomialFeatures(degree)
		if err == nil {
			t.Errorf("NewPolynomialFeatures(%d) should fail", degree)
			continue
		}
		var inputErr *lsqErrors.InvalidInputError
		if !lsqErrors.As(err, &inputErr) {
			t.Errorf("NewPolynomialFeatures(%d): expected InvalidInputError, got %v", degree, err)
		}
	}
}

func TestPolynomialFeaturesTransform(t *testing.T) {
	poly, err := preprocessing.NewPolynomialFeatures(3)
	if err != nil {
		t.Fatalf("NewPolynomialFeatures failed: %v", err)
	}

	X := mat.NewDense(3, 1, []float64{1.0, 2.0, 3.0})
	expanded, err := poly.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	r, c := expanded.Dims()
	if r != 3 || c != 3 {
		t.Fatalf("Expected 3x3 output, got %dx%d", r, c)
	}

	want := []float64{
		1.0, 1.0, 1.0,
		2.0, 4.0, 8.0,
		3.0, 9.0, 27.0,
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if got := expanded.At(i, j); math.Abs(got-want[i*c+j]) > epsilon {
				t.Errorf("expanded[%d][%d]: expected %f, got %f", i, j, want[i*c+j], got)
			}
		}
	}
}

func TestPolynomialFeaturesHandlesNegativeInputs(t *testing.T) {
	poly, err := preprocessing.NewPolynomialFeatures(3)
	if err != nil {
		t.Fatalf("NewPolynomialFeatures failed: %v", err)
	}

	X := mat.NewDense(1, 1, []float64{-2.0})
	expanded, err := poly.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	want := []float64{-2.0, 4.0, -8.0}
	for j, w := range want {
		if got := expanded.At(0, j); got != w {
			t.Errorf("column %d: expected %f, got %f", j, w, got)
		}
	}
}

func TestPolynomialFeaturesDegreeOneIsIdentity(t *testing.T) {
	poly, err := preprocessing.NewPolynomialFeatures(1)
	if err != nil {
		t.Fatalf("NewPolynomialFeatures failed: %v", err)
	}

	X := mat.NewDense(4, 1, []float64{0.5, -1.5, 2.0, 0.0})
	expanded, err := poly.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	r, c := expanded.Dims()
	if r != 4 || c != 1 {
		t.Fatalf("Expected 4x1 output, got %dx%d", r, c)
	}
	for i := 0; i < 4; i++ {
		if expanded.At(i, 0) != X.At(i, 0) {
			t.Errorf("Row %d: expected %f, got %f", i, X.At(i, 0), expanded.At(i, 0))
		}
	}
}

func TestPolynomialFeaturesTransformIsPure(t *testing.T) {
	// Transform must work without a prior Fit call
	poly, err := preprocessing.NewPolynomialFeatures(2)
	if err != nil {
		t.Fatalf("NewPolynomialFeatures failed: %v", err)
	}
	if poly.IsFitted() {
		t.Fatal("New transformer should not be fitted")
	}

	X := mat.NewDense(2, 1, []float64{3.0, 4.0})
	expanded, err := poly.Transform(X)
	if err != nil {
		t.Fatalf("Transform without Fit failed: %v", err)
	}
	if expanded.At(1, 1) != 16.0 {
		t.Errorf("expected 16.0 at [1][1], got %f", expanded.At(1, 1))
	}

	// repeated calls give identical output
	again, err := poly.Transform(X)
	if err != nil {
		t.Fatalf("Second Transform failed: %v", err)
	}
	if !mat.Equal(expanded, again) {
		t.Error("Repeated Transform calls should produce identical output")
	}
}

func TestPolynomialFeaturesFitTransform(t *testing.T) {
	poly, err := preprocessing.NewPolynomialFeatures(2)
	if err != nil {
		t.Fatalf("NewPolynomialFeatures failed: %v", err)
	}

	X := mat.NewDense(3, 1, []float64{1.0, 2.0, 3.0})
	expanded, err := poly.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	if !poly.IsFitted() {
		t.Error("FitTransform should leave the transformer fitted")
	}

	direct, err := poly.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if !mat.Equal(expanded, direct) {
		t.Error("FitTransform and Transform should agree")
	}
}

func TestPolynomialFeaturesRejectsMultiColumn(t *testing.T) {
	poly, err := preprocessing.NewPolynomialFeatures(2)
	if err != nil {
		t.Fatalf("NewPolynomialFeatures failed: %v", err)
	}

	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	_, err = poly.Transform(X)
	if err == nil {
		t.Fatal("Transform with two columns should fail")
	}

	var inputErr *lsqErrors.InvalidInputError
	if !lsqErrors.As(err, &inputErr) {
		t.Errorf("Expected InvalidInputError, got %v", err)
	}
}

func TestPolynomialFeaturesRejectsEmptyInput(t *testing.T) {
	poly, err := preprocessing.NewPolynomialFeatures(2)
	if err != nil {
		t.Fatalf("NewPolynomialFeatures failed: %v", err)
	}

	var empty mat.Dense
	if _, err := poly.Transform(&empty); err == nil {
		t.Fatal("Transform on empty matrix should fail")
	}
	if err := poly.Fit(&empty); err == nil {
		t.Fatal("Fit on empty matrix should fail")
	}
}

func TestPolynomialFeaturesNames(t *testing.T) {
	poly, err := preprocessing.NewPolynomialFeatures(4)
	if err != nil {
		t.Fatalf("NewPolynomialFeatures failed: %v", err)
	}

	if poly.NumOutputFeatures() != 4 {
		t.Errorf("NumOutputFeatures: expected 4, got %d", poly.NumOutputFeatures())
	}

	names := poly.FeatureNames("x")
	want := []string{"x", "x^2", "x^3", "x^4"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Name %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}
