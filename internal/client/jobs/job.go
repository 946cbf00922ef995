// Package jobs implements the durable background job scheduler that
// pushes local note changes to the server and pulls the authoritative
// snapshot back. Jobs are persisted, retried with backoff, and
// deduplicated by key so repeated edits collapse into one push.
package jobs

import (
	"fmt"
	"time"
)

// Kind identifies a job handler.
type Kind string

const (
	// KindSaveNote pushes one locally edited note to the server.
	KindSaveNote Kind = "saveNote"
	// KindDeleteNote confirms one local deletion with the server.
	KindDeleteNote Kind = "deleteNote"
	// KindSyncNotes pulls the full server snapshot and reconciles it.
	KindSyncNotes Kind = "syncNotes"
)

// PeriodicSyncName is the single well-known key of the recurring sync
// job. Re-enqueueing it replaces the existing schedule.
const PeriodicSyncName = "syncWorker"

// DefaultSyncInterval is how often the periodic sync runs.
const DefaultSyncInterval = 15 * time.Minute

// SaveKey returns the uniqueness key for a save job. One pending save
// per local note: a newer enqueue replaces an older one.
func SaveKey(localID int64) string {
	return fmt.Sprintf("save_%d", localID)
}

// DeleteKey returns the uniqueness key for a delete job.
func DeleteKey(serverID int64) string {
	return fmt.Sprintf("delete_%d", serverID)
}

// Result is a handler's verdict on one execution attempt.
type Result int

const (
	// Done means the job succeeded and can be removed (or, for
	// periodic jobs, rescheduled at its interval).
	Done Result = iota
	// Retry means the attempt failed transiently; the scheduler
	// re-runs the job after backoff.
	Retry
	// Fail means the job failed permanently and is discarded.
	Fail
)

func (r Result) String() string {
	switch r {
	case Done:
		return "done"
	case Retry:
		return "retry"
	case Fail:
		return "fail"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Job is one durable unit of deferred work. The payload is an opaque
// key (a local or server note ID), never note content: handlers
// re-read current state from the store at execution time so a stale
// snapshot can't be pushed.
type Job struct {
	// ID distinguishes this enqueue from a later one that replaced
	// the same key while an attempt was in flight.
	ID string `json:"id"`
	// Key is the uniqueness key. Enqueueing an existing key replaces
	// the stored job.
	Key string `json:"key"`
	// Kind selects the registered handler.
	Kind Kind `json:"kind"`
	// Payload is the note ID the job operates on (local ID for saves,
	// server ID for deletes, unused for sync).
	Payload int64 `json:"payload"`
	// Attempts counts executions, including the current one while a
	// handler runs.
	Attempts int `json:"attempts"`
	// NotBefore delays execution (backoff, periodic schedule).
	NotBefore time.Time `json:"not_before"`
	// Periodic jobs reschedule themselves instead of completing.
	Periodic bool `json:"periodic"`
	// Interval is the periodic schedule.
	Interval time.Duration `json:"interval"`
	// CreatedAt is when this enqueue happened.
	CreatedAt time.Time `json:"created_at"`
}
