package net

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"LessonBoard/internal/logging"
	"LessonBoard/internal/persist"
)

const requestTimeout = 10 * time.Second

// Server exposes a persist.Gateway to remote boards.
type Server struct {
	gw       persist.Gateway
	upgrader websocket.Upgrader

	mu    sync.Mutex
	peers map[*websocket.Conn]struct{}
}

func NewServer(gw persist.Gateway) *Server {
	return &Server{
		gw: gw,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     nativeClientOnly,
		},
		peers: make(map[*websocket.Conn]struct{}),
	}
}

// nativeClientOnly refuses browser connections. Boards dial without an
// Origin header; a web page always sends one.
func nativeClientOnly(r *http.Request) bool {
	return r.Header.Get("Origin") == ""
}

func (s *Server) add(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers[conn] = struct{}{}
	logging.Logger().Info("board connected", "remote", conn.RemoteAddr().String())
}

func (s *Server) remove(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.peers, conn)
	logging.Logger().Info("board disconnected", "remote", conn.RemoteAddr().String())
}

// Peers is the number of connected boards.
func (s *Server) Peers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// Close drops every connected board.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.peers {
		conn.Close()
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	s.add(conn)
	defer s.remove(conn)
	defer conn.Close()

	for {
		var req Frame
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Logger().Debug("read frame", "remote", conn.RemoteAddr().String(), "err", err)
			}
			return
		}
		resp := s.handle(r.Context(), req)
		if err := conn.WriteJSON(resp); err != nil {
			logging.Logger().Warn("write frame", "remote", conn.RemoteAddr().String(), "err", err)
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, req Frame) Frame {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp := Frame{Type: frameResult, ID: req.ID, Lesson: req.Lesson}
	var err error
	switch req.Type {
	case frameLoad:
		resp.Data, err = s.gw.Load(ctx, req.Lesson)
	case frameSave:
		err = s.gw.Save(ctx, req.Lesson, req.Data)
	default:
		resp.Error = "unknown request type " + req.Type
		return resp
	}
	switch {
	case errors.Is(err, persist.ErrNotFound):
		resp.NotFound = true
	case err != nil:
		logging.Logger().Warn("storage request failed", "type", req.Type, "lesson", req.Lesson, "err", err)
		resp.Error = err.Error()
	}
	return resp
}
