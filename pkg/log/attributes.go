// Standard attribute keys for lsqfit log records.
//
// Keys follow a hierarchical naming convention ("model.name", "data.samples")
// so structured log pipelines can filter on them. Using these constants keeps
// field names consistent across estimators, metrics, and studies.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "LinearRegression", "PolynomialFeatures", "StandardScaler"
	ModelNameKey = "model.name"

	// EstimatorIDKey is a unique identifier for a model instance, useful
	// when several instances of the same type run side by side.
	EstimatorIDKey = "estimator.id"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "linear", "preprocessing", "metrics", "experiment"
	ComponentKey = "ml.component"

	// PhaseKey indicates the lifecycle phase.
	// Examples: "training", "inference", "evaluation", "preprocessing"
	PhaseKey = "ml.phase"

	// DegreeKey records the polynomial degree of an expansion or a fitted
	// curve model.
	DegreeKey = "model.degree"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) being processed.
	FeaturesKey = "data.features"

	// FingerprintKey is the 64-bit content hash of a dataset, printed in
	// hexadecimal. It ties log records to the exact data they ran on.
	FingerprintKey = "data.fingerprint"
)

// Performance and metric values.
const (
	// DurationMsKey records an operation's execution time in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MSEKey records a mean squared error value.
	MSEKey = "metrics.mse"

	// RMSEKey records a root mean squared error value.
	RMSEKey = "metrics.rmse"

	// R2ScoreKey records an R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// RankKey records the numerical rank of a solved design matrix.
	RankKey = "solver.rank"
)

// Prediction context.
const (
	// PredsKey is the number of predictions produced.
	PredsKey = "preds.count"
)

// Run and configuration context.
const (
	// RunIDKey identifies one experiment run.
	RunIDKey = "run.id"

	// RandomSeedKey records the seed of a reproducible run.
	RandomSeedKey = "config.random_seed"
)

// Error context.
const (
	// ErrorTypeKey categorizes the error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey carries stack trace text captured from an error chain.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values for common operations and phases.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhaseEvaluation    = "evaluation"
	PhasePreprocessing = "preprocessing"
)
