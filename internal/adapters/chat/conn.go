package chat

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/edulive/lecturechat/internal/core"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// WsChatConn is the transport endpoint for one participant. Frames are
// queued on a buffered channel and written by the connection's writePump;
// TrySend never blocks the caller.
type WsChatConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsChatConn(ws *websocket.Conn) *WsChatConn {
	return &WsChatConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}
}

func (c *WsChatConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsChatConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}
