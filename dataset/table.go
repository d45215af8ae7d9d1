// Package dataset loads numeric tables and generates synthetic curve data
// for regression experiments.
//
// Tabular data comes from delimited text through ReadCSV/OpenCSV: every
// field must be numeric, the last column is the label, and an optional
// header row names the columns. Positional splitting with SplitTail keeps
// row order, so time-ordered files keep their most recent rows as the
// test set.
//
// Synthetic data comes from SampleCurve, which draws noisy observations
// around a target function on an evenly spaced grid using a seeded
// generator, so a fixed seed reproduces the dataset exactly.
package dataset

import (
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/mat"

	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
	"github.com/mizuhira/lsqfit/pkg/log"
)

// Table is an in-memory numeric table: a feature matrix plus a label
// column, with display names for both.
type Table struct {
	Features  *mat.Dense    // shape (NumRows, NumFeatures)
	Labels    *mat.VecDense // one label per row
	Names     []string      // feature column names
	LabelName string

	fingerprint uint64
}

// readConfig collects the ReadCSV options.
type readConfig struct {
	delimiter rune
	header    bool
}

// ReadOption configures CSV parsing.
type ReadOption func(*readConfig)

// WithDelimiter sets the field delimiter. The default is a comma;
// semicolons are common in UCI-style datasets.
func WithDelimiter(delim rune) ReadOption {
	return func(cfg *readConfig) {
		cfg.delimiter = delim
	}
}

// WithHeader declares whether the first row holds column names. The
// default is true; pass false for files that start directly with data,
// in which case columns are named x1..xn and the label y.
func WithHeader(present bool) ReadOption {
	return func(cfg *readConfig) {
		cfg.header = present
	}
}

// OpenCSV reads a delimited numeric table from a file.
func OpenCSV(filename string, opts ...ReadOption) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadCSV(file, opts...)
}

// ReadCSV reads a delimited numeric table.
//
// Every field must parse as a finite number; the last column is the
// label and the remaining columns are features. Rows whose field count
// differs from the first row, non-numeric fields and non-finite values
// are rejected with an *errors.InvalidInputError naming the offending
// row and column. At least one feature column, the label column and one
// data row are required.
func ReadCSV(r io.Reader, opts ...ReadOption) (*Table, error) {
	cfg := readConfig{
		delimiter: ',',
		header:    true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.delimiter
	reader.TrimLeadingSpace = true
	// field counts are validated manually to report the offending row
	reader.FieldsPerRecord = -1

	var names []string
	if cfg.header {
		record, err := reader.Read()
		if err == io.EOF {
			return nil, lsqErrors.NewInvalidInputError("ReadCSV", "empty input")
		}
		if err != nil {
			return nil, lsqErrors.Wrap(err, "ReadCSV: failed to read header")
		}
		names = make([]string, len(record))
		for i, name := range record {
			names[i] = strings.TrimSpace(name)
		}
	}

	var (
		rows    [][]float64
		columns int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, lsqErrors.Wrap(err, "ReadCSV: failed to read record")
		}

		rowNum := len(rows) + 1
		if columns == 0 {
			columns = len(record)
			if cfg.header && len(names) != columns {
				return nil, lsqErrors.NewInvalidInputErrorf("ReadCSV",
					"header has %d fields but row 1 has %d", len(names), columns)
			}
		}
		if len(record) != columns {
			return nil, lsqErrors.NewInvalidInputErrorf("ReadCSV",
				"row %d has %d fields, expected %d", rowNum, len(record), columns)
		}

		row := make([]float64, columns)
		for j, field := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, lsqErrors.NewInvalidInputErrorf("ReadCSV",
					"row %d, column %d: not a number: %q", rowNum, j+1, field)
			}
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return nil, lsqErrors.NewInvalidInputErrorf("ReadCSV",
					"row %d, column %d: non-finite value %q", rowNum, j+1, field)
			}
			row[j] = value
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, lsqErrors.NewInvalidInputError("ReadCSV", "no data rows")
	}
	if columns < 2 {
		return nil, lsqErrors.NewInvalidInputError("ReadCSV",
			"need at least one feature column and a label column")
	}

	n := len(rows)
	d := columns - 1
	features := mat.NewDense(n, d, nil)
	labels := mat.NewVecDense(n, nil)
	for i, row := range rows {
		for j := 0; j < d; j++ {
			features.Set(i, j, row[j])
		}
		labels.SetVec(i, row[d])
	}

	if names == nil {
		names = defaultNames(d)
	}

	table := newTable(features, labels, names[:d], names[d])

	logger := log.GetLoggerWithName("dataset")
	logger.Info("Table loaded",
		log.ComponentKey, "dataset",
		log.SamplesKey, n,
		log.FeaturesKey, d,
		log.FingerprintKey, table.Fingerprint(),
	)

	return table, nil
}

// defaultNames synthesizes x1..xd plus the label name y.
func defaultNames(d int) []string {
	names := make([]string, d+1)
	for j := 0; j < d; j++ {
		names[j] = fmt.Sprintf("x%d", j+1)
	}
	names[d] = "y"
	return names
}

func newTable(features *mat.Dense, labels *mat.VecDense, names []string, labelName string) *Table {
	t := &Table{
		Features:  features,
		Labels:    labels,
		Names:     names,
		LabelName: labelName,
	}
	t.fingerprint = t.computeFingerprint()
	return t
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	r, _ := t.Features.Dims()
	return r
}

// NumFeatures returns the number of feature columns.
func (t *Table) NumFeatures() int {
	_, c := t.Features.Dims()
	return c
}

// Fingerprint returns a 64-bit hash of the table's dimensions and
// numeric content. Two tables with identical values share a
// fingerprint, so reports can state exactly which data they ran on.
func (t *Table) Fingerprint() uint64 {
	return t.fingerprint
}

func (t *Table) computeFingerprint() uint64 {
	digest := xxhash.New()

	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = digest.Write(buf[:])
	}
	writeFloat := func(v float64) {
		writeUint(math.Float64bits(v))
	}

	r, c := t.Features.Dims()
	writeUint(uint64(r))
	writeUint(uint64(c))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			writeFloat(t.Features.At(i, j))
		}
		writeFloat(t.Labels.AtVec(i))
	}

	return digest.Sum64()
}

// SplitTail splits the table by position: the first NumRows-k rows form
// the training table and the last k rows the test table. Row order is
// preserved and nothing is shuffled, so time-ordered data stays ordered.
// k must satisfy 0 < k < NumRows.
func (t *Table) SplitTail(k int) (train, test *Table, err error) {
	n := t.NumRows()
	if k <= 0 || k >= n {
		return nil, nil, lsqErrors.NewInvalidInputErrorf("Table.SplitTail",
			"test row count must be in (0, %d), got %d", n, k)
	}

	cut := n - k
	train = newTable(t.copyRows(0, cut), t.copyLabels(0, cut), t.Names, t.LabelName)
	test = newTable(t.copyRows(cut, n), t.copyLabels(cut, n), t.Names, t.LabelName)
	return train, test, nil
}

func (t *Table) copyRows(from, to int) *mat.Dense {
	d := t.NumFeatures()
	out := mat.NewDense(to-from, d, nil)
	for i := from; i < to; i++ {
		for j := 0; j < d; j++ {
			out.Set(i-from, j, t.Features.At(i, j))
		}
	}
	return out
}

func (t *Table) copyLabels(from, to int) *mat.VecDense {
	out := mat.NewVecDense(to-from, nil)
	for i := from; i < to; i++ {
		out.SetVec(i-from, t.Labels.AtVec(i))
	}
	return out
}
