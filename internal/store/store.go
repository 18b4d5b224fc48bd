// Package store keeps finished dedup reports in a bbolt file so reviewers can
// fetch a run again by id. Values are JSON; keys are report ids.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"dedup-service/internal/dedup/model"
)

var bucketReports = []byte("reports")

// Store is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

type record struct {
	SavedAt time.Time    `json:"saved_at"`
	Result  model.Result `json:"result"`
}

// Summary is the listing view of a stored report.
type Summary struct {
	ID      string    `json:"id"`
	File    string    `json:"file"`
	Column  string    `json:"column"`
	Groups  int       `json:"groups"`
	SavedAt time.Time `json:"saved_at"`
}

// Open opens (or creates) the archive at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("report store dir: %w", err)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketReports)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores r under id, replacing any previous report with that id.
func (s *Store) Save(id string, r model.Result) error {
	if id == "" {
		return fmt.Errorf("empty report id")
	}
	r.ID = id
	b, err := json.Marshal(record{SavedAt: time.Now().UTC(), Result: r})
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketReports).Put([]byte(id), b)
	})
}

// Get returns the report with id; ok is false when there is none.
func (s *Store) Get(id string) (model.Result, bool, error) {
	var (
		rec   record
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketReports).Get([]byte(id))
		if b == nil {
			return nil
		}
		found = true
		return json.Unmarshal(b, &rec)
	})
	if err != nil {
		return model.Result{}, false, fmt.Errorf("load report %s: %w", id, err)
	}
	return rec.Result, found, nil
}

// List returns up to limit summaries, newest first. limit <= 0 means all.
func (s *Store) List(limit int) ([]Summary, error) {
	var out []Summary
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketReports).ForEach(func(k, v []byte) error {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("report %s: %w", k, err)
			}
			out = append(out, Summary{
				ID:      string(k),
				File:    rec.Result.File,
				Column:  rec.Result.Column,
				Groups:  len(rec.Result.Groups),
				SavedAt: rec.SavedAt,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
