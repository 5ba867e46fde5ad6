package net

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"LessonBoard/internal/logging"
	"LessonBoard/internal/persist"
)

const closeTimeout = time.Second

// Client is a persist.Gateway backed by a storage server. Requests from
// several goroutines share one connection.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan Frame
	err     error
	done    chan struct{}
}

var _ persist.Gateway = (*Client)(nil)

// Dial connects to the storage server at addr (host:port).
func Dial(ctx context.Context, addr string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, "ws://"+addr+Path, nil)
	if err != nil {
		return nil, fmt.Errorf("dial storage %s: %w", addr, err)
	}
	c := &Client{
		conn:    conn,
		pending: make(map[string]chan Frame),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	logging.Logger().Info("connected to storage", "addr", addr)
	return c, nil
}

func (c *Client) readLoop() {
	for {
		var f Frame
		if err := c.conn.ReadJSON(&f); err != nil {
			c.fail(err)
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[f.ID]
		delete(c.pending, f.ID)
		c.mu.Unlock()
		if !ok {
			logging.Logger().Debug("result for unknown request", "id", f.ID)
			continue
		}
		ch <- f
	}
}

func (c *Client) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return
	}
	c.err = fmt.Errorf("%w: %v", ErrClosed, err)
	close(c.done)
}

func (c *Client) roundTrip(ctx context.Context, req Frame) (Frame, error) {
	req.ID = uuid.NewString()
	ch := make(chan Frame, 1)

	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return Frame{}, err
	}
	c.pending[req.ID] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, req.ID)
		c.mu.Unlock()
	}()

	c.writeMu.Lock()
	dl, _ := ctx.Deadline() // zero clears a deadline left by an earlier request
	c.conn.SetWriteDeadline(dl)
	err := c.conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		return Frame{}, fmt.Errorf("send %s: %w", req.Type, err)
	}

	select {
	case f := <-ch:
		return f, nil
	case <-c.done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return Frame{}, c.err
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}
}

func resultError(f Frame) error {
	if f.NotFound {
		return fmt.Errorf("remote load %s: %w", f.Lesson, persist.ErrNotFound)
	}
	if f.Error != "" {
		return fmt.Errorf("remote %s: %w", f.Lesson, errors.New(f.Error))
	}
	return nil
}

func (c *Client) Load(ctx context.Context, lesson string) ([]byte, error) {
	f, err := c.roundTrip(ctx, Frame{Type: frameLoad, Lesson: lesson})
	if err != nil {
		return nil, err
	}
	if err := resultError(f); err != nil {
		return nil, err
	}
	return f.Data, nil
}

func (c *Client) Save(ctx context.Context, lesson string, data []byte) error {
	f, err := c.roundTrip(ctx, Frame{Type: frameSave, Lesson: lesson, Data: data})
	if err != nil {
		return err
	}
	return resultError(f)
}

// Close ends the connection. Pending requests fail with ErrClosed.
func (c *Client) Close() error {
	c.writeMu.Lock()
	c.conn.SetWriteDeadline(time.Now().Add(closeTimeout))
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	err := c.conn.Close()
	c.fail(errors.New("closed by client"))
	return err
}
