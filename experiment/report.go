package experiment

import (
	"fmt"
	"math"
	"strings"
)

// DegreeResult holds the measurements for one polynomial degree in a
// curve study.
type DegreeResult struct {
	Degree   int
	TrainMSE float64
	GridMSE  float64
	TrainR2  float64
	// Rank is the numerical rank the solver found for the expanded
	// design matrix. Rank below degree+1 means the fit fell back to
	// the minimum-norm solution.
	Rank int
	// Formula is a human-readable rendering of the fitted polynomial.
	Formula string
}

// CurveReport is the outcome of one curve study run.
type CurveReport struct {
	RunID      string
	Target     string
	A, B       float64
	Points     int
	NoiseSigma float64
	Seed       uint64
	GridPoints int
	Results    []DegreeResult
	// BestDegree is the degree with the lowest grid MSE.
	BestDegree int
}

// Best returns the result for the best degree.
func (r *CurveReport) Best() DegreeResult {
	for _, res := range r.Results {
		if res.Degree == r.BestDegree {
			return res
		}
	}
	return DegreeResult{}
}

// String renders the report as a fixed-precision table.
func (r *CurveReport) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Curve study %s\n", r.RunID)
	fmt.Fprintf(&b, "Target: %s on [%.2f, %.2f]\n", r.Target, r.A, r.B)
	fmt.Fprintf(&b, "Training: %d points, noise sigma %.2f, seed %d\n", r.Points, r.NoiseSigma, r.Seed)
	fmt.Fprintf(&b, "Evaluation grid: %d points\n\n", r.GridPoints)

	fmt.Fprintf(&b, "%6s  %12s  %12s  %10s  %5s\n", "Degree", "Train MSE", "Grid MSE", "Train R2", "Rank")
	for _, res := range r.Results {
		fmt.Fprintf(&b, "%6d  %12.6f  %12.6f  %10.4f  %5d\n",
			res.Degree, res.TrainMSE, res.GridMSE, res.TrainR2, res.Rank)
	}

	fmt.Fprintf(&b, "\nBest degree by grid MSE: %d\n", r.BestDegree)
	if best := r.Best(); best.Formula != "" {
		fmt.Fprintf(&b, "Best fit: %s\n", best.Formula)
	}

	return b.String()
}

// TabularReport is the outcome of one tabular study run.
type TabularReport struct {
	RunID        string
	Fingerprint  uint64
	LabelName    string
	TrainRows    int
	TestRows     int
	Features     int
	Standardized bool
	TrainMSE     float64
	TestMSE      float64
	TestR2       float64
	Intercept    float64
	Weights      []float64
}

// String renders the report with fixed precision.
func (r *TabularReport) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Tabular study %s\n", r.RunID)
	fmt.Fprintf(&b, "Data: %d rows, %d features, fingerprint %016x\n",
		r.TrainRows+r.TestRows, r.Features, r.Fingerprint)
	split := fmt.Sprintf("Split: %d train / %d test rows", r.TrainRows, r.TestRows)
	if r.Standardized {
		split += " (features standardized)"
	}
	fmt.Fprintf(&b, "%s\n", split)
	fmt.Fprintf(&b, "Label: %s\n\n", r.LabelName)

	fmt.Fprintf(&b, "Train MSE: %.6f\n", r.TrainMSE)
	fmt.Fprintf(&b, "Test MSE:  %.6f\n", r.TestMSE)
	fmt.Fprintf(&b, "Test R2:   %.4f\n", r.TestR2)
	fmt.Fprintf(&b, "Coefficients: %d, intercept %.4f\n", len(r.Weights), r.Intercept)

	return b.String()
}

// polynomialFormula renders fitted coefficients as a readable
// polynomial, e.g. "y = 0.1200 + 1.9800*x - 0.4500*x^2".
func polynomialFormula(intercept float64, weights []float64, terms []string) string {
	var b strings.Builder

	if intercept == 0 {
		intercept = 0 // avoid printing a negative zero
	}
	fmt.Fprintf(&b, "y = %.4f", intercept)

	for i, w := range weights {
		op := "+"
		if w < 0 {
			op = "-"
		}
		term := fmt.Sprintf("x^%d", i+1)
		if i < len(terms) {
			term = terms[i]
		}
		fmt.Fprintf(&b, " %s %.4f*%s", op, math.Abs(w), term)
	}

	return b.String()
}
