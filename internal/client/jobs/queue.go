package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

// bucketJobs holds job records keyed by their uniqueness key.
var bucketJobs = []byte("jobs")

// ErrJobNotFound indicates that no job exists under the given key.
var ErrJobNotFound = errors.New("job not found")

// Queue is the durable job store. Records are JSON-encoded in a single
// BoltDB bucket keyed by the job's uniqueness key, so writing an
// existing key is the REPLACE policy for free.
type Queue struct {
	db *bbolt.DB
}

// OpenQueue opens (or creates) the queue database at path.
func OpenQueue(path string) (*Queue, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open job queue: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketJobs); err != nil {
			return fmt.Errorf("failed to create jobs bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Queue{db: db}, nil
}

// Close closes the queue database.
func (q *Queue) Close() error {
	if q.db == nil {
		return nil
	}
	return q.db.Close()
}

// Put stores a job under its key, replacing any job already there.
func (q *Queue) Put(job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = q.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketJobs).Put([]byte(job.Key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store job %q: %w", job.Key, err)
	}

	return nil
}

// Get retrieves the job stored under key.
// Returns ErrJobNotFound if no job exists.
func (q *Queue) Get(key string) (*Job, error) {
	var job *Job

	err := q.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketJobs).Get([]byte(key))
		if data == nil {
			return ErrJobNotFound
		}

		job = &Job{}
		if err := json.Unmarshal(data, job); err != nil {
			return fmt.Errorf("failed to unmarshal job %q: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return job, nil
}

// All returns every stored job, ordered by NotBefore.
func (q *Queue) All() ([]*Job, error) {
	var all []*Job

	err := q.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketJobs).ForEach(func(k, v []byte) error {
			job := &Job{}
			if err := json.Unmarshal(v, job); err != nil {
				return fmt.Errorf("failed to unmarshal job %q: %w", string(k), err)
			}
			all = append(all, job)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].NotBefore.Before(all[j].NotBefore)
	})

	return all, nil
}

// Due returns every job whose NotBefore has passed, ordered by
// NotBefore.
func (q *Queue) Due(now time.Time) ([]*Job, error) {
	all, err := q.All()
	if err != nil {
		return nil, err
	}

	due := make([]*Job, 0, len(all))
	for _, job := range all {
		if !job.NotBefore.After(now) {
			due = append(due, job)
		}
	}

	return due, nil
}

// UpdateIfCurrent rewrites the stored job only if it is still the same
// enqueue (matching ID). A job that was replaced mid-run keeps the
// replacement; the finished run's bookkeeping is dropped.
func (q *Queue) UpdateIfCurrent(job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = q.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketJobs)

		stored := bucket.Get([]byte(job.Key))
		if stored == nil {
			return nil
		}

		var current Job
		if err := json.Unmarshal(stored, &current); err != nil {
			return fmt.Errorf("failed to unmarshal stored job %q: %w", job.Key, err)
		}
		if current.ID != job.ID {
			return nil
		}

		return bucket.Put([]byte(job.Key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to update job %q: %w", job.Key, err)
	}

	return nil
}

// DeleteIfCurrent removes the stored job only if it is still the same
// enqueue (matching ID).
func (q *Queue) DeleteIfCurrent(job *Job) error {
	err := q.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketJobs)

		stored := bucket.Get([]byte(job.Key))
		if stored == nil {
			return nil
		}

		var current Job
		if err := json.Unmarshal(stored, &current); err != nil {
			return fmt.Errorf("failed to unmarshal stored job %q: %w", job.Key, err)
		}
		if current.ID != job.ID {
			return nil
		}

		return bucket.Delete([]byte(job.Key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete job %q: %w", job.Key, err)
	}

	return nil
}
