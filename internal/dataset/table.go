// Package dataset holds validated, time-ordered covariate tables for the
// evaluation engine. A table is immutable after construction: rows are copied
// in and checked for shape and finiteness once, so the engine never revisits
// input hygiene.
package dataset

import (
	"fmt"
	"math"

	"tseval/internal/eval"
)

// Table is an ordered sample matrix with its predictand. Row order is the
// temporal order the splitter relies on.
type Table struct {
	x    [][]float64
	y    []float64
	mode eval.Mode
}

// NewClassification builds a table whose predictand is a binary label per
// row, stored as 0/1.
func NewClassification(x [][]float64, labels []bool) (*Table, error) {
	y := make([]float64, len(labels))
	for i, positive := range labels {
		if positive {
			y[i] = 1
		}
	}
	return newTable(x, y, eval.Classification)
}

// NewRegression builds a table whose predictand is a real value per row.
func NewRegression(x [][]float64, values []float64) (*Table, error) {
	y := make([]float64, len(values))
	copy(y, values)
	return newTable(x, y, eval.Regression)
}

func newTable(x [][]float64, y []float64, mode eval.Mode) (*Table, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("dataset has no rows")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("dataset has %d covariate rows for %d target values", len(x), len(y))
	}

	width := len(x[0])
	if width == 0 {
		return nil, fmt.Errorf("dataset rows have no features")
	}
	rows, err := copyRows(x, width)
	if err != nil {
		return nil, err
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("target value at row %d is not finite", i)
		}
	}

	return &Table{x: rows, y: y, mode: mode}, nil
}

// Len returns the number of samples.
func (t *Table) Len() int { return len(t.y) }

// Width returns the number of features per row.
func (t *Table) Width() int { return len(t.x[0]) }

func (t *Table) TrainingCovariates() [][]float64 { return t.x }

func (t *Table) Predictand() ([]float64, eval.Mode) { return t.y, t.mode }

// PrepareCovariates validates out-of-sample rows against the table's feature
// width and returns a defensive copy ready for scoring.
func (t *Table) PrepareCovariates(raw [][]float64) ([][]float64, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no rows to prepare")
	}
	return copyRows(raw, t.Width())
}

func copyRows(src [][]float64, width int) ([][]float64, error) {
	rows := make([][]float64, len(src))
	for i, row := range src {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), width)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("feature %d at row %d is not finite", j, i)
			}
		}
		rows[i] = make([]float64, width)
		copy(rows[i], row)
	}
	return rows, nil
}
