package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/hellsoft/simplenotes/internal/models"
)

// RunList prints the active notes in creation order.
func (c *Cli) RunList(ctx context.Context) error {
	list, err := c.notes.Notes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(list) == 0 {
		fmt.Fprintln(c.out, "No notes yet. Use 'simplenotes save -title ... -content ...' to create one.")
		return nil
	}

	for _, note := range list {
		marker := " "
		if note.State != models.StateDefault {
			marker = "*" // pending upload
		}
		fmt.Fprintf(c.out, "%s %4d  %s\n", marker, note.ID, note.Title)
	}
	fmt.Fprintf(c.out, "\n%d note(s). '*' marks notes not yet confirmed by the server.\n", len(list))

	return nil
}

// RunGet prints a single note in full.
func (c *Cli) RunGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note ID. Usage: simplenotes get <id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid note ID %q: %w", args[0], err)
	}

	note, err := c.notes.LoadNote(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load note: %w", err)
	}
	if note == nil {
		return fmt.Errorf("note not found with ID: %d", id)
	}

	fmt.Fprintf(c.out, "ID:      %d\n", note.ID)
	if note.Synced() {
		fmt.Fprintf(c.out, "Server:  %d\n", note.ServerID)
	} else {
		fmt.Fprintln(c.out, "Server:  not synced yet")
	}
	fmt.Fprintf(c.out, "Title:   %s\n", note.Title)
	fmt.Fprintf(c.out, "Content: %s\n", note.Content)

	return nil
}

// RunSave creates a note, or updates one when -id is given. The write
// lands locally right away; the upload happens in the background.
func (c *Cli) RunSave(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(c.out)
	id := fs.Int64("id", 0, "Local ID of the note to update (omit to create)")
	title := fs.String("title", "", "Note title")
	content := fs.String("content", "", "Note content")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *title == "" {
		return fmt.Errorf("missing -title. Usage: simplenotes save [-id N] -title T -content C")
	}

	note := &models.Note{ID: *id, Title: *title, Content: *content}
	if *id != 0 {
		existing, err := c.notes.LoadNote(ctx, *id)
		if err != nil {
			return fmt.Errorf("failed to load note: %w", err)
		}
		if existing == nil {
			return fmt.Errorf("note not found with ID: %d", *id)
		}
		note.ServerID = existing.ServerID
	}

	savedID, err := c.notes.SaveNote(ctx, note)
	if err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}

	fmt.Fprintf(c.out, "Saved note %d. The upload will run in the background.\n", savedID)
	return nil
}

// RunDelete removes a note by local ID.
func (c *Cli) RunDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note ID. Usage: simplenotes delete <id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid note ID %q: %w", args[0], err)
	}

	note, err := c.notes.LoadNote(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load note: %w", err)
	}
	if note == nil {
		return fmt.Errorf("note not found with ID: %d", id)
	}

	if err := c.notes.DeleteNote(ctx, note); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	fmt.Fprintf(c.out, "Deleted note %d.\n", id)
	return nil
}

// RunSync is the manual refresh: it pushes whatever jobs are due
// (pending saves and deletes) and then pulls the server snapshot.
func (c *Cli) RunSync(ctx context.Context) error {
	if err := c.scheduler.RunDue(ctx); err != nil {
		return fmt.Errorf("failed to run pending jobs: %w", err)
	}

	result, err := c.reconciler.Sync(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Fprintf(c.out, "Sync complete: %d upserted, %d deleted, %d skipped.\n",
		result.Upserted, result.Deleted, result.Skipped)
	return nil
}

// RunLoop schedules the periodic sync and runs the job loop until the
// context is cancelled.
func (c *Cli) RunLoop(ctx context.Context) error {
	if err := c.notes.RequestSync(ctx); err != nil {
		return fmt.Errorf("failed to schedule periodic sync: %w", err)
	}

	fmt.Fprintln(c.out, "Running. Press Ctrl+C to stop.")
	return c.scheduler.Run(ctx)
}

// PrintUsage prints the command summary.
func PrintUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: simplenotes [flags] <command> [args]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  list                                 List notes")
	fmt.Fprintln(out, "  get <id>                             Show a note")
	fmt.Fprintln(out, "  save [-id N] -title T -content C     Create or update a note")
	fmt.Fprintln(out, "  delete <id>                          Delete a note")
	fmt.Fprintln(out, "  sync                                 Push pending changes and pull the server state")
	fmt.Fprintln(out, "  run                                  Run the background job loop")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	fmt.Fprintln(out, "  -server <url>   Server URL (default http://localhost:8080)")
	fmt.Fprintln(out, "  -db <path>      Path to the local notes database")
	fmt.Fprintln(out, "  -queue <path>   Path to the local job queue")
	fmt.Fprintln(out, "  -version        Show version information")
}
