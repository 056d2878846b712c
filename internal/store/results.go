package store

import (
	"fmt"
	"time"

	"tseval/internal/eval"
)

// SaveEvaluation converts an aggregated cross-validation result into storage
// records and persists them under the given run ID. The fold results and
// curves must come from the same run, so they align one to one.
func (s *Store) SaveEvaluation(runID string, mode eval.Mode, folds []eval.FoldResult, curves []eval.ROCCurve, agg eval.AggregatedROC) error {
	if len(folds) != len(curves) {
		return fmt.Errorf("got %d fold results for %d curves", len(folds), len(curves))
	}

	run := RunRecord{
		ID:        runID,
		CreatedAt: time.Now().UTC(),
		Folds:     len(folds),
		Mode:      mode.String(),
		MeanAUC:   agg.MeanAUC,
		StdAUC:    agg.StdAUC,
	}

	records := make([]FoldRecord, len(folds))
	for i, fr := range folds {
		records[i] = FoldRecord{
			RunID:  runID,
			Fold:   fr.Fold,
			Truth:  fr.Truth,
			Scores: fr.Scores,
			AUC:    curves[i].AUC,
		}
	}
	return s.SaveRun(run, records)
}
