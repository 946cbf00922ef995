package models

import "fmt"

// State is the lifecycle state of a local note. It tracks which
// pending operation, if any, the note is waiting on.
type State int

const (
	// StateCreated marks a note created locally and never pushed.
	StateCreated State = iota + 1
	// StateUpdating marks a note with local edits pending a push.
	StateUpdating
	// StateDeleting marks a note waiting for the server to confirm deletion.
	StateDeleting
	// StateDefault marks a note that is in sync with the server.
	StateDefault
)

// stateCodes is the persisted integer coding for State. The codes are
// part of the on-disk schema and must never be renumbered.
var stateCodes = map[State]int{
	StateCreated:  1,
	StateUpdating: 2,
	StateDeleting: 3,
	StateDefault:  4,
}

var stateNames = map[State]string{
	StateCreated:  "created",
	StateUpdating: "updating",
	StateDeleting: "deleting",
	StateDefault:  "default",
}

// Code returns the integer code the state is persisted under.
func (s State) Code() int {
	code, ok := stateCodes[s]
	if !ok {
		// Unknown states never reach the database; see StateFromCode.
		return 0
	}
	return code
}

// String implements fmt.Stringer for logging.
func (s State) String() string {
	name, ok := stateNames[s]
	if !ok {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return name
}

// StateFromCode maps a persisted integer code back to a State.
// Unknown codes are an error: a silently guessed default could turn a
// pending delete into a sync candidate.
func StateFromCode(code int) (State, error) {
	for state, c := range stateCodes {
		if c == code {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown note state code %d", code)
}

// Note is the local representation of a note.
type Note struct {
	// ID is the local primary key, assigned by the store on first
	// insert and never reused.
	ID int64
	// ServerID is the server-assigned key. Zero means the server has
	// never acknowledged this note.
	ServerID int64
	Title    string
	Content  string
	State    State
}

// Synced reports whether the server has ever acknowledged this note.
func (n *Note) Synced() bool {
	return n.ServerID != 0
}

// Clone returns a copy of the note.
func (n *Note) Clone() *Note {
	c := *n
	return &c
}
