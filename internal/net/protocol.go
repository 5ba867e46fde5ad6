// Package net carries drawings between a board and a storage server over
// WebSocket and finds storage servers on the local network.
package net

import "errors"

const (
	frameLoad   = "load"
	frameSave   = "save"
	frameResult = "result"

	// Path is where the storage server accepts WebSocket connections.
	Path = "/ws"
)

// ErrClosed is returned for requests on a closed or broken connection.
var ErrClosed = errors.New("storage connection closed")

// Frame is one message in either direction. Requests carry a fresh ID that
// the matching result echoes.
type Frame struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Lesson   string `json:"lesson,omitempty"`
	Data     []byte `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
	NotFound bool   `json:"not_found,omitempty"`
}
