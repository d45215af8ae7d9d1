// Command tablefit fits a linear model to a delimited numeric table.
// The last column is the label, the last -testrows rows are held out in
// order as the test set, and the report shows train MSE, test MSE and
// test R². Optionally the model is refit on every row and saved.
//
// Usage:
//
//	tablefit -data winequality-red.csv -delimiter ";" -testrows 200 -standardize
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mizuhira/lsqfit/core/model"
	"github.com/mizuhira/lsqfit/dataset"
	"github.com/mizuhira/lsqfit/experiment"
	"github.com/mizuhira/lsqfit/linear"
	"github.com/mizuhira/lsqfit/pkg/log"
)

func main() {
	var (
		dataPath    = flag.String("data", "", "path to the delimited numeric table (required)")
		delimiter   = flag.String("delimiter", ",", "field delimiter")
		header      = flag.Bool("header", true, "treat the first row as column names")
		testRows    = flag.Int("testrows", 0, "number of tail rows held out as the test set (required)")
		standardize = flag.Bool("standardize", false, "standardize features with training statistics")
		savePath    = flag.String("save", "", "save a model refit on all rows to this path")
		compress    = flag.String("compress", "none", "model compression: none, gzip, zstd, s2 or lz4")
		logLevel    = flag.String("log", "info", "log level: debug, info, warn or error")
	)
	flag.Parse()

	log.SetupConsoleLogger(*logLevel)

	if *dataPath == "" || *testRows <= 0 {
		flag.Usage()
		os.Exit(2)
	}
	delim := []rune(*delimiter)
	if len(delim) != 1 {
		fmt.Fprintf(os.Stderr, "delimiter must be a single character, got %q\n", *delimiter)
		os.Exit(2)
	}

	table, err := dataset.OpenCSV(*dataPath,
		dataset.WithDelimiter(delim[0]),
		dataset.WithHeader(*header),
	)
	if err != nil {
		log.LogError(err, "Failed to load table")
		os.Exit(1)
	}

	report, err := experiment.RunTabularStudy(table, experiment.TabularConfig{
		TestRows:    *testRows,
		Standardize: *standardize,
	})
	if err != nil {
		log.LogError(err, "Tabular study failed")
		os.Exit(1)
	}

	fmt.Print(report)

	if *savePath != "" {
		if err := saveFinalModel(table, *savePath, *compress); err != nil {
			log.LogError(err, "Failed to save model")
			os.Exit(1)
		}
		fmt.Printf("Model saved as %s\n", *savePath)
	}
}

// saveFinalModel refits on every row and persists the result. The model
// is fit on raw features, so it applies directly to unscaled rows.
func saveFinalModel(table *dataset.Table, path, compress string) error {
	codec, err := model.ParseCompression(compress)
	if err != nil {
		return err
	}

	lr := linear.NewLinearRegression()
	if err := lr.Fit(table.Features, table.Labels); err != nil {
		return err
	}

	return model.SaveModel(lr, path, model.WithCompression(codec))
}
