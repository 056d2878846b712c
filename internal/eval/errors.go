package eval

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFoldCount reports a fold count below 2 or a sample range too
	// small to give every fold a non-empty test block.
	ErrInvalidFoldCount = errors.New("invalid fold count")

	// ErrDegenerateFold reports a test block whose ground truth holds a
	// single class, leaving ROC and AUC undefined.
	ErrDegenerateFold = errors.New("degenerate fold")

	// ErrEvaluationInProgress reports access to a cache left mid-computation
	// by an earlier failure. Invalidate clears it.
	ErrEvaluationInProgress = errors.New("evaluation in progress")

	// ErrScoreOutOfRange reports a classification probability outside [0,1].
	ErrScoreOutOfRange = errors.New("prediction score out of range")

	// ErrClassifierFit and ErrClassifierPredict match wrapped collaborator
	// failures through errors.Is.
	ErrClassifierFit     = errors.New("classifier fit failed")
	ErrClassifierPredict = errors.New("classifier predict failed")
)

// ClassifierError wraps a collaborator failure with the fold it happened on.
// Fold is -1 for a full-sample fit.
type ClassifierError struct {
	Op   string // "fit" or "predict"
	Fold int
	Err  error
}

func (e *ClassifierError) Error() string {
	if e.Fold < 0 {
		return fmt.Sprintf("classifier %s failed on full sample: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("classifier %s failed on fold %d: %v", e.Op, e.Fold, e.Err)
}

func (e *ClassifierError) Unwrap() error { return e.Err }

func (e *ClassifierError) Is(target error) bool {
	switch target {
	case ErrClassifierFit:
		return e.Op == "fit"
	case ErrClassifierPredict:
		return e.Op == "predict"
	}
	return false
}
