// Package experiment runs the two model-selection studies this library
// exists for: a polynomial curve study that demonstrates under- and
// overfitting on synthetic data, and a tabular study that fits a linear
// model to a delimited numeric table with a positional holdout.
//
// Both studies are deterministic for a fixed configuration: the curve
// study derives all randomness from the configured seed and the tabular
// study uses none. Reports carry a UUID so log lines and printed output
// from the same run can be correlated.
package experiment

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/mizuhira/lsqfit/dataset"
	"github.com/mizuhira/lsqfit/linear"
	"github.com/mizuhira/lsqfit/metrics"
	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
	"github.com/mizuhira/lsqfit/pkg/log"
	"github.com/mizuhira/lsqfit/preprocessing"
)

// defaultGridPoints is the evaluation grid size used when the
// configuration leaves GridPoints at zero.
const defaultGridPoints = 100

// CurveConfig describes one curve study: a ground-truth function, a
// sampling interval, how many noisy points to draw, and which
// polynomial degrees to sweep.
type CurveConfig struct {
	// Target is the ground-truth function observations are drawn from.
	Target dataset.TargetFunc
	// Name labels the target in reports, e.g. "sin(pi*x)".
	Name string
	// A and B bound the sampling interval, A < B.
	A, B float64
	// Points is the number of noisy training observations.
	Points int
	// NoiseSigma is the standard deviation of the Gaussian noise.
	NoiseSigma float64
	// Seed drives the noise generator. The same seed reproduces the
	// same training set exactly.
	Seed uint64
	// Degrees lists the polynomial degrees to fit, each at least 1.
	Degrees []int
	// GridPoints is the size of the dense evaluation grid used to
	// measure each fit against the noiseless target. Zero means 100.
	GridPoints int
}

// Validate checks the configuration without running anything.
func (c CurveConfig) Validate() error {
	const op = "CurveConfig.Validate"
	if c.Target == nil {
		return lsqErrors.NewInvalidInputError(op, "target function must not be nil")
	}
	if c.A >= c.B {
		return lsqErrors.NewInvalidInputErrorf(op, "interval must satisfy a < b, got [%g, %g]", c.A, c.B)
	}
	if c.Points < 2 {
		return lsqErrors.NewInvalidInputErrorf(op, "need at least two training points, got %d", c.Points)
	}
	if c.NoiseSigma < 0 {
		return lsqErrors.NewInvalidInputErrorf(op, "noise sigma must be non-negative, got %g", c.NoiseSigma)
	}
	if len(c.Degrees) == 0 {
		return lsqErrors.NewInvalidInputError(op, "no degrees to sweep")
	}
	for _, d := range c.Degrees {
		if d < 1 {
			return lsqErrors.NewInvalidInputErrorf(op, "degrees must be at least 1, got %d", d)
		}
	}
	if c.GridPoints != 0 && c.GridPoints < 2 {
		return lsqErrors.NewInvalidInputErrorf(op, "evaluation grid needs at least two points, got %d", c.GridPoints)
	}
	return nil
}

func (c CurveConfig) gridPoints() int {
	if c.GridPoints == 0 {
		return defaultGridPoints
	}
	return c.GridPoints
}

func (c CurveConfig) displayName() string {
	if c.Name == "" {
		return "f(x)"
	}
	return c.Name
}

// RunCurveStudy draws one noisy training set from the configured target,
// then fits a polynomial of every configured degree to it. Each fit is
// scored twice: on the training points (train MSE, train R²) and on a
// dense grid against the noiseless target (grid MSE), which is what a
// held-out measurement would converge to. The report marks the degree
// with the lowest grid MSE as best; ties keep the degree listed first.
func RunCurveStudy(cfg CurveConfig) (_ *CurveReport, err error) {
	defer lsqErrors.Recover(&err, "RunCurveStudy")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := uuid.New().String()
	logger := log.GetLoggerWithName("experiment").With(
		log.ComponentKey, "experiment",
		log.RunIDKey, runID,
	)
	logger.Info("Curve study started",
		log.OperationKey, "curve_study",
		log.SamplesKey, cfg.Points,
		log.RandomSeedKey, cfg.Seed,
	)

	sample, err := dataset.SampleCurve(cfg.Target, cfg.A, cfg.B, cfg.Points, cfg.NoiseSigma, cfg.Seed)
	if err != nil {
		return nil, lsqErrors.Wrap(err, "failed to sample training data")
	}

	grid, err := dataset.Linspace(cfg.A, cfg.B, cfg.gridPoints())
	if err != nil {
		return nil, lsqErrors.Wrap(err, "failed to build evaluation grid")
	}
	gridX := dataset.Column(grid)
	gridTruth, err := dataset.EvalCurve(cfg.Target, grid)
	if err != nil {
		return nil, lsqErrors.Wrap(err, "failed to evaluate target on grid")
	}

	report := &CurveReport{
		RunID:      runID,
		Target:     cfg.displayName(),
		A:          cfg.A,
		B:          cfg.B,
		Points:     cfg.Points,
		NoiseSigma: cfg.NoiseSigma,
		Seed:       cfg.Seed,
		GridPoints: cfg.gridPoints(),
		Results:    make([]DegreeResult, 0, len(cfg.Degrees)),
	}

	for _, degree := range cfg.Degrees {
		result, err := fitDegree(degree, sample, gridX, gridTruth)
		if err != nil {
			return nil, lsqErrors.Wrapf(err, "degree %d", degree)
		}
		report.Results = append(report.Results, result)

		logger.Info("Degree evaluated",
			log.DegreeKey, degree,
			log.MSEKey, result.TrainMSE,
			log.R2ScoreKey, result.TrainR2,
			log.RankKey, result.Rank,
		)
	}

	best := 0
	for i, r := range report.Results {
		if r.GridMSE < report.Results[best].GridMSE {
			best = i
		}
	}
	report.BestDegree = report.Results[best].Degree

	logger.Info("Curve study completed",
		log.DegreeKey, report.BestDegree,
		log.MSEKey, report.Results[best].GridMSE,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return report, nil
}

// fitDegree expands the training sample to the given degree, fits a
// linear model on the expanded features and measures it on the training
// points and on the noiseless grid.
func fitDegree(degree int, sample *dataset.CurveSample, gridX *mat.Dense, gridTruth *mat.VecDense) (DegreeResult, error) {
	poly, err := preprocessing.NewPolynomialFeatures(degree)
	if err != nil {
		return DegreeResult{}, err
	}

	trainPhi, err := poly.FitTransform(sample.X)
	if err != nil {
		return DegreeResult{}, err
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(trainPhi, sample.Y); err != nil {
		return DegreeResult{}, err
	}

	trainPred, err := lr.Predict(trainPhi)
	if err != nil {
		return DegreeResult{}, err
	}
	trainPredVec, err := columnVector("fitDegree", trainPred)
	if err != nil {
		return DegreeResult{}, err
	}
	trainMSE, err := metrics.MSE(sample.Y, trainPredVec)
	if err != nil {
		return DegreeResult{}, err
	}
	trainR2, err := metrics.R2Score(sample.Y, trainPredVec)
	if err != nil {
		return DegreeResult{}, err
	}

	gridPhi, err := poly.Transform(gridX)
	if err != nil {
		return DegreeResult{}, err
	}
	gridPred, err := lr.Predict(gridPhi)
	if err != nil {
		return DegreeResult{}, err
	}
	gridPredVec, err := columnVector("fitDegree", gridPred)
	if err != nil {
		return DegreeResult{}, err
	}
	gridMSE, err := metrics.MSE(gridTruth, gridPredVec)
	if err != nil {
		return DegreeResult{}, err
	}

	return DegreeResult{
		Degree:   degree,
		TrainMSE: trainMSE,
		GridMSE:  gridMSE,
		TrainR2:  trainR2,
		Rank:     lr.Rank,
		Formula:  polynomialFormula(lr.GetIntercept(), lr.GetWeights(), poly.FeatureNames("x")),
	}, nil
}

// columnVector views an (n, 1) prediction matrix as a vector.
func columnVector(op string, m mat.Matrix) (*mat.VecDense, error) {
	if v, ok := m.(*mat.VecDense); ok {
		return v, nil
	}
	r, c := m.Dims()
	if c != 1 {
		return nil, lsqErrors.NewInvalidInputErrorf(op,
			"expected a column vector, got shape (%d, %d)", r, c)
	}
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		out.SetVec(i, m.At(i, 0))
	}
	return out, nil
}
