package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
	"github.com/mizuhira/lsqfit/pkg/log"
)

// TargetFunc is a ground-truth curve y = f(x). Synthetic observations
// are drawn by adding Gaussian noise to its values.
type TargetFunc func(x float64) float64

// Linspace returns n evenly spaced points across [a, b], endpoints
// included. n must be at least 2.
func Linspace(a, b float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, lsqErrors.NewInvalidInputErrorf("Linspace",
			"need at least two points, got %d", n)
	}
	xs := make([]float64, n)
	floats.Span(xs, a, b)
	return xs, nil
}

// Column converts a slice of sample locations into the (n, 1) matrix
// shape the estimators and transformers expect. It panics if xs is
// empty, matching the gonum constructors.
func Column(xs []float64) *mat.Dense {
	out := mat.NewDense(len(xs), 1, nil)
	for i, x := range xs {
		out.Set(i, 0, x)
	}
	return out
}

// EvalCurve evaluates the target function at every point, without
// noise. Non-finite function values are rejected so a pathological
// target cannot poison a fit or an error measurement silently.
func EvalCurve(f TargetFunc, xs []float64) (*mat.VecDense, error) {
	if f == nil {
		return nil, lsqErrors.NewInvalidInputError("EvalCurve", "target function must not be nil")
	}
	if len(xs) == 0 {
		return nil, lsqErrors.NewInvalidInputError("EvalCurve", "no evaluation points")
	}

	out := mat.NewVecDense(len(xs), nil)
	for i, x := range xs {
		y := f(x)
		if err := lsqErrors.CheckScalar("EvalCurve", y); err != nil {
			return nil, lsqErrors.Wrapf(err, "target function returned non-finite value at x=%g", x)
		}
		out.SetVec(i, y)
	}
	return out, nil
}

// CurveSample holds synthetic observations drawn around a target
// function: the sample locations both as a raw slice and as the (n, 1)
// design input, and the noisy responses.
type CurveSample struct {
	Xs []float64
	X  *mat.Dense
	Y  *mat.VecDense
}

// SampleCurve draws n observations of f on an evenly spaced grid over
// [a, b], adding N(0, sigma²) noise from a generator seeded with seed.
// The same arguments always produce bit-identical samples. sigma may be
// zero, in which case the observations are exactly f(x).
func SampleCurve(f TargetFunc, a, b float64, n int, sigma float64, seed uint64) (*CurveSample, error) {
	if f == nil {
		return nil, lsqErrors.NewInvalidInputError("SampleCurve", "target function must not be nil")
	}
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return nil, lsqErrors.NewInvalidInputError("SampleCurve", "interval bounds must be finite")
	}
	if a >= b {
		return nil, lsqErrors.NewInvalidInputErrorf("SampleCurve",
			"interval must satisfy a < b, got [%g, %g]", a, b)
	}
	if sigma < 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, lsqErrors.NewInvalidInputErrorf("SampleCurve",
			"noise sigma must be finite and non-negative, got %g", sigma)
	}

	xs, err := Linspace(a, b, n)
	if err != nil {
		return nil, err
	}

	truth, err := EvalCurve(f, xs)
	if err != nil {
		return nil, err
	}

	y := mat.NewVecDense(n, nil)
	if sigma > 0 {
		rng := rand.New(rand.NewPCG(seed, seed))
		for i := 0; i < n; i++ {
			y.SetVec(i, truth.AtVec(i)+rng.NormFloat64()*sigma)
		}
	} else {
		y.CopyVec(truth)
	}

	logger := log.GetLoggerWithName("dataset")
	logger.Debug("Synthetic curve sampled",
		log.ComponentKey, "dataset",
		log.SamplesKey, n,
		log.RandomSeedKey, seed,
	)

	return &CurveSample{
		Xs: xs,
		X:  Column(xs),
		Y:  y,
	}, nil
}
