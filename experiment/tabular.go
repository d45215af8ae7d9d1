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

// TabularConfig describes one tabular study: how many rows to hold out
// from the tail of the table and whether to standardize the features.
type TabularConfig struct {
	// TestRows is the number of rows held out as the test set, taken
	// from the end of the table in order.
	TestRows int
	// Standardize fits a StandardScaler on the training rows only and
	// applies it to both splits.
	Standardize bool
}

// Validate checks the configuration without running anything. The upper
// bound on TestRows depends on the table and is enforced by the split.
func (c TabularConfig) Validate() error {
	if c.TestRows <= 0 {
		return lsqErrors.NewInvalidInputErrorf("TabularConfig.Validate",
			"test row count must be positive, got %d", c.TestRows)
	}
	return nil
}

// RunTabularStudy splits the table positionally, optionally standardizes
// the features with statistics from the training rows only, fits a
// linear model and reports train MSE, test MSE and test R². The study
// involves no randomness, so the same table and configuration always
// produce the same numbers.
func RunTabularStudy(table *dataset.Table, cfg TabularConfig) (_ *TabularReport, err error) {
	defer lsqErrors.Recover(&err, "RunTabularStudy")

	if table == nil {
		return nil, lsqErrors.NewInvalidInputError("RunTabularStudy", "table must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := uuid.New().String()
	logger := log.GetLoggerWithName("experiment").With(
		log.ComponentKey, "experiment",
		log.RunIDKey, runID,
	)
	logger.Info("Tabular study started",
		log.OperationKey, "tabular_study",
		log.SamplesKey, table.NumRows(),
		log.FeaturesKey, table.NumFeatures(),
		log.FingerprintKey, table.Fingerprint(),
	)

	train, test, err := table.SplitTail(cfg.TestRows)
	if err != nil {
		return nil, err
	}

	var trainX, testX mat.Matrix = train.Features, test.Features
	if cfg.Standardize {
		scaler := preprocessing.NewStandardScalerDefault()
		trainX, err = scaler.FitTransform(train.Features)
		if err != nil {
			return nil, lsqErrors.Wrap(err, "failed to standardize training features")
		}
		testX, err = scaler.Transform(test.Features)
		if err != nil {
			return nil, lsqErrors.Wrap(err, "failed to standardize test features")
		}
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(trainX, train.Labels); err != nil {
		return nil, err
	}

	trainPred, err := lr.Predict(trainX)
	if err != nil {
		return nil, err
	}
	trainPredVec, err := columnVector("RunTabularStudy", trainPred)
	if err != nil {
		return nil, err
	}
	trainMSE, err := metrics.MSE(train.Labels, trainPredVec)
	if err != nil {
		return nil, err
	}

	testPred, err := lr.Predict(testX)
	if err != nil {
		return nil, err
	}
	testPredVec, err := columnVector("RunTabularStudy", testPred)
	if err != nil {
		return nil, err
	}
	testMSE, err := metrics.MSE(test.Labels, testPredVec)
	if err != nil {
		return nil, err
	}
	testR2, err := metrics.R2Score(test.Labels, testPredVec)
	if err != nil {
		return nil, err
	}

	report := &TabularReport{
		RunID:        runID,
		Fingerprint:  table.Fingerprint(),
		LabelName:    table.LabelName,
		TrainRows:    train.NumRows(),
		TestRows:     test.NumRows(),
		Features:     table.NumFeatures(),
		Standardized: cfg.Standardize,
		TrainMSE:     trainMSE,
		TestMSE:      testMSE,
		TestR2:       testR2,
		Intercept:    lr.GetIntercept(),
		Weights:      lr.GetWeights(),
	}

	logger.Info("Tabular study completed",
		log.MSEKey, testMSE,
		log.R2ScoreKey, testR2,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return report, nil
}
