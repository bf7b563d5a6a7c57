// Package progress streams activation events over websockets so a run
// started through one surface (the MCP server) can be watched live from
// another (the CLI).
package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/johncallhub/CallHub-MCP/internal/batch"
)

const writeTimeout = 5 * time.Second

// Broadcaster fans progress events out to every connected watcher. A
// watcher that cannot keep up is dropped rather than allowed to stall the
// run.
type Broadcaster struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
	srv   *http.Server
}

// NewBroadcaster creates a broadcaster with no listeners.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		logger: logger,
		conns:  make(map[*websocket.Conn]bool),
	}
}

// Start begins serving websocket connections on addr. The listener is bound
// synchronously so a bad address fails here, not later in a goroutine.
func (b *Broadcaster) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", b.Handler())
	b.mu.Lock()
	b.srv = &http.Server{Handler: mux}
	b.mu.Unlock()

	b.logger.Info("progress broadcaster listening", "addr", ln.Addr().String())
	go func() {
		if err := b.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.logger.Error("progress broadcaster stopped", "error", err)
		}
	}()
	return nil
}

// Handler upgrades a request to a websocket and keeps it registered until
// the client goes away.
func (b *Broadcaster) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			b.logger.Warn("websocket upgrade failed", "error", err)
			return
		}

		b.mu.Lock()
		b.conns[conn] = true
		b.mu.Unlock()
		b.logger.Debug("watcher connected", "remote", conn.RemoteAddr().String())

		// Drain incoming frames; we only care about noticing the close.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					b.drop(conn)
					return
				}
			}
		}()
	})
}

// Publish sends an event to every connected watcher. The lock is held
// across the writes: gorilla/websocket forbids concurrent writers on one
// connection, and multiple jobs may publish at the same time.
func (b *Broadcaster) Publish(ev batch.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for conn := range b.conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(ev); err != nil {
			b.logger.Debug("dropping watcher", "remote", conn.RemoteAddr().String(), "error", err)
			delete(b.conns, conn)
			conn.Close()
		}
	}
}

func (b *Broadcaster) drop(conn *websocket.Conn) {
	b.mu.Lock()
	if !b.conns[conn] {
		b.mu.Unlock()
		return
	}
	delete(b.conns, conn)
	b.mu.Unlock()
	conn.Close()
}

// Close stops the server and disconnects all watchers.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	srv := b.srv
	b.srv = nil
	conns := make([]*websocket.Conn, 0, len(b.conns))
	for conn := range b.conns {
		conns = append(conns, conn)
	}
	b.conns = make(map[*websocket.Conn]bool)
	b.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
	if srv != nil {
		return srv.Close()
	}
	return nil
}

// Watch connects to a broadcaster and invokes fn for every event until the
// connection closes or ctx is cancelled.
func Watch(ctx context.Context, url string, fn func(batch.Event)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var ev batch.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		fn(ev)
	}
}
