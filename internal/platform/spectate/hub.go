// Package spectate streams a running game to read-only WebSocket viewers.
package spectate

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/logging"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	readLimit  = 512 // Viewers only send control frames
)

// Options configures a Hub.
type Options struct {
	SendBuffer   int           // Queued messages per viewer before frames are dropped
	WriteTimeout time.Duration // Deadline for a single write
	MaxClients   int           // 0 means unlimited
	Logger       *log.Logger
}

// frameKey identifies a distinct frame. The loop renders far more often
// than the game ticks, so only changes are broadcast.
type frameKey struct {
	tick  uint64
	state snake.State
	ready bool
}

// Hub fans snapshots and game events out to connected viewers.
// Publish, ScoreChanged and GameOver never block the caller.
type Hub struct {
	opts     Options
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu        sync.RWMutex
	clients   map[*client]struct{}
	lastFrame []byte
	closed    bool

	// Touched only by the publishing goroutine
	lastKey   frameKey
	published bool
}

// NewHub creates an empty hub.
func NewHub(opts Options) *Hub {
	if opts.SendBuffer < 1 {
		opts.SendBuffer = 8
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Hub{
		opts:   opts,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// Handler returns the HTTP routes of the feed: /ws and /healthz.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ServeHTTP upgrades the request and registers a viewer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.full() {
		http.Error(w, "too many spectators", http.StatusServiceUnavailable)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := newClient(h, ws)
	if !h.register(c) {
		_ = ws.Close()
		return
	}
	h.logger.Info("spectator joined", "remote", r.RemoteAddr)

	go c.writePump()
	go c.readPump()
}

// ClientCount returns how many viewers are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish broadcasts s when it differs from the last published frame.
// It must be called from a single goroutine, normally the game loop.
func (h *Hub) Publish(s snake.Snapshot) {
	key := frameKey{tick: s.Tick, state: s.State, ready: s.Ready()}
	if h.published && key == h.lastKey {
		return
	}
	h.lastKey = key
	h.published = true

	payload, err := json.Marshal(Message{Type: TypeFrame, Snapshot: NewFrame(s)})
	if err != nil {
		h.logger.Error("encode frame", "error", err)
		return
	}

	h.mu.Lock()
	h.lastFrame = payload
	h.mu.Unlock()

	h.broadcast(payload)
}

// ScoreChanged implements snake.Observer.
func (h *Hub) ScoreChanged(score int) {
	h.event(TypeScore, score)
}

// GameOver implements snake.Observer.
func (h *Hub) GameOver(finalScore int) {
	h.event(TypeGameOver, finalScore)
}

func (h *Hub) event(typ string, score int) {
	payload, err := json.Marshal(Message{Type: typ, Score: &score})
	if err != nil {
		h.logger.Error("encode event", "type", typ, "error", err)
		return
	}
	h.broadcast(payload)
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.closed = true
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.enqueue(payload) {
			h.logger.Debug("spectator frame dropped", "remote", c.remote)
		}
	}
}

func (h *Hub) full() bool {
	if h.opts.MaxClients <= 0 {
		return false
	}
	return h.ClientCount() >= h.opts.MaxClients
}

// register adds c and queues the latest frame so a new viewer does not
// wait for the next tick.
func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.lastFrame != nil {
		c.enqueue(h.lastFrame)
	}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		c.close()
		h.logger.Info("spectator left", "remote", c.remote)
	}
}
