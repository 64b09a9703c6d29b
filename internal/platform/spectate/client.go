package spectate

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// client is one connected viewer. The hub writes through send; writePump
// owns the connection's write side.
type client struct {
	hub    *Hub
	ws     *websocket.Conn
	remote string
	send   chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(h *Hub, ws *websocket.Conn) *client {
	return &client{
		hub:    h,
		ws:     ws,
		remote: ws.RemoteAddr().String(),
		send:   make(chan []byte, h.opts.SendBuffer),
		done:   make(chan struct{}),
	}
}

// enqueue queues b without blocking and reports whether it fit.
// Callers hold the hub lock, so close cannot race with it.
func (c *client) enqueue(b []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.hub.opts.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.hub.opts.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.unregister(c)
				return
			}
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		}
	}
}

// readPump drains the connection so control frames are processed and a
// disconnect is noticed. Viewer messages are ignored.
func (c *client) readPump() {
	defer c.hub.unregister(c)

	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}
