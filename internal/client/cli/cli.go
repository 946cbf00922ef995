// Package cli implements the client commands. Each command is a thin
// wrapper over the note service; output goes to an injected writer so
// tests can capture it.
package cli

import (
	"io"

	"github.com/hellsoft/simplenotes/internal/client/jobs"
	"github.com/hellsoft/simplenotes/internal/client/notes"
	"github.com/hellsoft/simplenotes/internal/client/sync"
)

// Cli holds the wired-up client services used by the commands.
type Cli struct {
	notes      *notes.Service
	reconciler sync.Service
	scheduler  *jobs.Scheduler
	out        io.Writer
}

// New creates the command dispatcher.
func New(noteService *notes.Service, reconciler sync.Service, scheduler *jobs.Scheduler, out io.Writer) *Cli {
	return &Cli{
		notes:      noteService,
		reconciler: reconciler,
		scheduler:  scheduler,
		out:        out,
	}
}
