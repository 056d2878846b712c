// Package store provides persistent storage for evaluation results. It uses
// BoltDB as the underlying storage engine to keep run summaries and per-fold
// predictions so past cross-validations can be reloaded without refitting.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	runsBucket  = "runs"  // Bucket name for run summary records
	foldsBucket = "folds" // Bucket name for per-fold prediction records
)

// RunRecord summarizes one completed cross-validation run.
type RunRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Folds     int       `json:"folds"`
	Mode      string    `json:"mode"`
	MeanAUC   float64   `json:"meanAuc"`
	StdAUC    float64   `json:"stdAuc"`
}

// FoldRecord holds one fold's ground truth and scores for a stored run.
type FoldRecord struct {
	RunID  string    `json:"runId"`
	Fold   int       `json:"fold"`
	Truth  []float64 `json:"truth"`
	Scores []float64 `json:"scores"`
	AUC    float64   `json:"auc"`
}

// Store persists evaluation runs using BoltDB.
type Store struct {
	db *bbolt.DB
}

// New creates a store backed by a database file under dataPath, creating the
// buckets on first use.
func New(dataPath string) (*Store, error) {
	dbPath := filepath.Join(dataPath, "tseval-runs.db")

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(runsBucket)); err != nil {
			return fmt.Errorf("create runs bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(foldsBucket)); err != nil {
			return fmt.Errorf("create folds bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection gracefully.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun stores a run summary and its fold records in one transaction, so a
// partially written run is never visible.
func (s *Store) SaveRun(run RunRecord, folds []FoldRecord) error {
	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		rb := tx.Bucket([]byte(runsBucket))
		data, err := json.Marshal(run)
		if err != nil {
			return fmt.Errorf("marshal run: %w", err)
		}
		if err := rb.Put([]byte(run.ID), data); err != nil {
			return fmt.Errorf("put run: %w", err)
		}

		fb := tx.Bucket([]byte(foldsBucket))
		for _, fold := range folds {
			data, err := json.Marshal(fold)
			if err != nil {
				return fmt.Errorf("marshal fold %d: %w", fold.Fold, err)
			}
			key := fmt.Sprintf("%s_%04d", run.ID, fold.Fold)
			if err := fb.Put([]byte(key), data); err != nil {
				return fmt.Errorf("put fold %d: %w", fold.Fold, err)
			}
		}
		return nil
	})
}

// GetRun retrieves a stored run summary by ID.
func (s *Store) GetRun(id string) (RunRecord, error) {
	var run RunRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(runsBucket)).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("run %s not found", id)
		}
		return json.Unmarshal(data, &run)
	})
	return run, err
}

// GetFolds retrieves the fold records of a stored run in fold order.
func (s *Store) GetFolds(runID string) ([]FoldRecord, error) {
	var folds []FoldRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(foldsBucket)).Cursor()
		prefix := []byte(runID + "_")
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var fold FoldRecord
			if err := json.Unmarshal(v, &fold); err != nil {
				continue // Skip malformed records
			}
			folds = append(folds, fold)
		}
		return nil
	})
	return folds, err
}

// ListRuns returns all stored run summaries ordered by ID.
func (s *Store) ListRuns() ([]RunRecord, error) {
	var runs []RunRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(runsBucket)).ForEach(func(k, v []byte) error {
			var run RunRecord
			if err := json.Unmarshal(v, &run); err != nil {
				return nil // Skip malformed records
			}
			runs = append(runs, run)
			return nil
		})
	})
	return runs, err
}
