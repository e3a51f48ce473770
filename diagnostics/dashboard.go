package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

// Hub is the live dashboard's websocket broadcaster, grounded on
// niceyeti-tabular/tabular/server/fastview/client.go's client[T]: one
// upgraded connection per browser tab, publishing at a fixed throttled
// rate, with ping/pong liveness exactly as that file implements it.
// Events are dropped rather than coalesced: an Event that arrives less
// than pubResolution after the last write is discarded, and Publish
// discards an Event for a client whose buffer is full, so the latest
// Event is not guaranteed to reach a client.
type Hub struct {
	mu      sync.Mutex
	clients map[chan Event]struct{}
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan Event]struct{})}
}

// Publish fans ev out to every currently connected client. Non-blocking:
// a client whose buffer is full drops the new update and keeps the
// older buffered ones.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan Event) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

const (
	writeWait        = 1 * time.Second
	pubResolution    = 100 * time.Millisecond
	pingResolution   = 200 * time.Millisecond
	pongWait         = pingResolution * 4
	closeGracePeriod = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// ServeHTTP upgrades the request to a websocket and streams Events to it
// until the client disconnects or an unrecoverable write error occurs.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer closeConn(conn)

	updates := h.subscribe()
	defer h.unsubscribe(updates)

	group, ctx := errgroup.WithContext(r.Context())
	group.Go(func() error { return readLoop(conn) })
	group.Go(func() error { return pingLoop(ctx, conn) })
	group.Go(func() error { return publishLoop(ctx, conn, updates) })
	_ = group.Wait()
}

// readLoop drains client frames so the connection's pong handler keeps
// firing; the dashboard never expects client messages.
func readLoop(conn *websocket.Conn) error {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return err
		}
	}
}

var errPongDeadlineExceeded = errors.New("diagnostics: client disconnect, pong deadline exceeded")

func pingLoop(ctx context.Context, conn *websocket.Conn) error {
	pong := make(chan struct{}, 1)
	conn.SetPongHandler(func(string) error {
		select {
		case pong <- struct{}{}:
		default:
		}
		return nil
	})

	ticker := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker:
			if time.Since(lastPong) > pongWait {
				return errPongDeadlineExceeded
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("diagnostics: ping failed: %w", err)
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

func publishLoop(ctx context.Context, conn *websocket.Conn, updates <-chan Event) error {
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-updates:
			if !ok {
				return nil
			}
			if time.Since(last) < pubResolution {
				continue
			}
			last = time.Now()
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteJSON(ev); err != nil {
				return fmt.Errorf("diagnostics: publish failed: %w", err)
			}
		}
	}
}

func closeConn(conn *websocket.Conn) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	time.Sleep(closeGracePeriod)
	conn.Close()
}
