// Package handlers implements the HTTP API of the notes server.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/hellsoft/simplenotes/internal/server/storage"
	"github.com/hellsoft/simplenotes/pkg/api"
)

// NoteStorage is the slice of the store the notes handler needs.
type NoteStorage interface {
	List(ctx context.Context) ([]*storage.Note, error)
	Get(ctx context.Context, id int64) (*storage.Note, error)
	Save(ctx context.Context, note *storage.Note) (*storage.Note, error)
	Delete(ctx context.Context, id int64) error
}

// NotesHandler serves the /api/v1/notes endpoints.
type NotesHandler struct {
	logger  *slog.Logger
	storage NoteStorage
}

// NewNotesHandler creates a new notes handler.
func NewNotesHandler(logger *slog.Logger, noteStorage NoteStorage) *NotesHandler {
	return &NotesHandler{
		logger:  logger,
		storage: noteStorage,
	}
}

// HandleNotes handles GET /api/v1/notes (the full collection).
func (h *NotesHandler) HandleNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	notes, err := h.storage.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list notes", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]api.Note, 0, len(notes))
	for _, note := range notes {
		resp = append(resp, toAPINote(note))
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleNote handles GET, POST and DELETE on /api/v1/notes/{id}.
// POST with id 0 creates a note and assigns its ID.
func (h *NotesHandler) HandleNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getNote(w, r, id)
	case http.MethodPost:
		h.saveNote(w, r, id)
	case http.MethodDelete:
		h.deleteNote(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *NotesHandler) getNote(w http.ResponseWriter, r *http.Request, id int64) {
	note, err := h.storage.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		h.logger.Error("Failed to get note", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toAPINote(note))
}

func (h *NotesHandler) saveNote(w http.ResponseWriter, r *http.Request, id int64) {
	var req api.Note
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The path is authoritative: a body carrying a different ID is a
	// client bug worth rejecting.
	if req.ID != 0 && req.ID != id {
		writeError(w, http.StatusBadRequest, "note ID mismatch between path and body")
		return
	}

	saved, err := h.storage.Save(r.Context(), &storage.Note{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.logger.Error("Failed to save note", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Note saved", "id", saved.ID, "created", id == 0)
	writeJSON(w, http.StatusOK, toAPINote(saved))
}

func (h *NotesHandler) deleteNote(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.storage.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		h.logger.Error("Failed to delete note", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("Note deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// noteID extracts the trailing ID from /api/v1/notes/{id}.
func noteID(path string) (int64, error) {
	raw := strings.TrimPrefix(path, "/api/v1/notes/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, fmt.Errorf("invalid note path")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note ID %q", raw)
	}

	return id, nil
}

func toAPINote(note *storage.Note) api.Note {
	return api.Note{
		ID:      note.ID,
		Title:   note.Title,
		Content: note.Content,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
