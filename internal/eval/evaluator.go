package eval

import (
	"fmt"
	"math"
)

// foldEvaluator refits one shared classifier per fold and scores the fold's
// test rows. The reuse is sequential on purpose: fold i+1's fit overwrites
// the state fold i was scored with, so folds must never run concurrently.
type foldEvaluator struct {
	clf  Classifier
	x    [][]float64
	y    []float64
	mode Mode
}

func (e *foldEvaluator) fit(fold int, train []int) error {
	if err := e.clf.Fit(rowsAt(e.x, train), valuesAt(e.y, train)); err != nil {
		return &ClassifierError{Op: "fit", Fold: fold, Err: err}
	}
	return nil
}

func (e *foldEvaluator) predict(fold int, test []int) ([]float64, error) {
	scores, err := scoreRows(e.clf, e.mode, rowsAt(e.x, test))
	if err != nil {
		return nil, &ClassifierError{Op: "predict", Fold: fold, Err: err}
	}
	if len(scores) != len(test) {
		return nil, &ClassifierError{
			Op:   "predict",
			Fold: fold,
			Err:  fmt.Errorf("expected %d scores, got %d", len(test), len(scores)),
		}
	}
	if e.mode == Classification {
		for i, s := range scores {
			if math.IsNaN(s) || s < 0 || s > 1 {
				return nil, fmt.Errorf("%w: fold %d row %d scored %v", ErrScoreOutOfRange, fold, test[i], s)
			}
		}
	}
	return scores, nil
}

// scoreRows dispatches on the mode tag fixed at construction: probability of
// the positive class for classification, raw value for regression.
func scoreRows(clf Classifier, mode Mode, x [][]float64) ([]float64, error) {
	if mode == Classification {
		return clf.PredictProbability(x)
	}
	return clf.Predict(x)
}

// rowsAt selects matrix rows by index; a nil index set selects every row.
func rowsAt(x [][]float64, idxs []int) [][]float64 {
	if idxs == nil {
		return x
	}
	out := make([][]float64, len(idxs))
	for i, idx := range idxs {
		out[i] = x[idx]
	}
	return out
}

// valuesAt selects vector entries by index; a nil index set selects all.
func valuesAt(y []float64, idxs []int) []float64 {
	if idxs == nil {
		return y
	}
	out := make([]float64, len(idxs))
	for i, idx := range idxs {
		out[i] = y[idx]
	}
	return out
}
