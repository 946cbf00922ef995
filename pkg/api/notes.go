// Package api contains the wire types shared by the notes client and server.
package api

// Note is the server representation of a note. The server has no
// concept of pending local operations, so there is no lifecycle state.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ErrorResponse is the JSON body returned by the server on errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
