// Package dataset loads labelled feature tables from CSV.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/toxiclf/pkg/errors"
)

// DefaultLabelColumn is the header name of the label column.
const DefaultLabelColumn = "label"

// Dataset is a feature table with its binary labels.
type Dataset struct {
	X            *mat.Dense // n×m features
	Y            *mat.Dense // n×1 labels, 0 or 1
	FeatureNames []string
}

// Dims returns the number of samples and features.
func (d *Dataset) Dims() (nSamples, nFeatures int) {
	return d.X.Dims()
}

// LoadCSV reads a CSV file. See ReadCSV.
func LoadCSV(path, labelColumn string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()

	ds, err := ReadCSV(f, labelColumn)
	if err != nil {
		return nil, errors.Wrapf(err, "load dataset %s", path)
	}
	return ds, nil
}

// ReadCSV parses a CSV table with a header row. The column named
// labelColumn (DefaultLabelColumn when empty) holds 0/1 labels and every
// other column is a numeric feature.
func ReadCSV(r io.Reader, labelColumn string) (*Dataset, error) {
	const op = "dataset.ReadCSV"
	if labelColumn == "" {
		labelColumn = DefaultLabelColumn
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	labelIdx := -1
	names := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == labelColumn {
			labelIdx = i
			continue
		}
		names = append(names, name)
	}
	if labelIdx < 0 {
		return nil, errors.NewValidationError("label_column", "not found in header", labelColumn)
	}
	if len(names) == 0 {
		return nil, errors.NewValidationError("header", "no feature columns", header)
	}

	var features, labels []float64
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read row %d", line)
		}
		line++

		for i, cell := range record {
			v, perr := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if perr != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.NewValueError(op, fmt.Sprintf("line %d, column %q: %q is not a finite number", line, header[i], cell))
			}
			if i == labelIdx {
				if v != 0 && v != 1 {
					return nil, errors.NewValidationError(labelColumn, fmt.Sprintf("line %d: labels must be 0 or 1", line), cell)
				}
				labels = append(labels, v)
				continue
			}
			features = append(features, v)
		}
	}

	if len(labels) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	return &Dataset{
		X:            mat.NewDense(len(labels), len(names), features),
		Y:            mat.NewDense(len(labels), 1, labels),
		FeatureNames: names,
	}, nil
}
