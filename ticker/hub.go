// Package ticker pushes the market-index snapshot shown in the ticker bar to
// websocket clients.
package ticker

import (
	"net/http"
	"sync"
	"time"

	"stock-pulse/logger"
	"stock-pulse/metrics"
	"stock-pulse/models"

	"github.com/gorilla/websocket"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	readLimit  = 512
	sendBuffer = 4
)

// pingInterval keeps pings inside the peer's pong deadline.
func pingInterval(wait time.Duration) time.Duration {
	return wait * 9 / 10
}

// Message is the payload written to every client.
type Message struct {
	Indices []models.MarketIndex `json:"indices"`
	SentAt  time.Time            `json:"sentAt"`
}

// Source supplies the current snapshot. *catalog.Catalog satisfies it.
type Source interface {
	Indices() []models.MarketIndex
}

type client struct {
	conn *websocket.Conn
	send chan Message
}

type Hub struct {
	source   Source
	logger   *logrus.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	cron *cron.Cron
	now  func() time.Time

	pongWait   time.Duration
	pingPeriod time.Duration
}

func NewHub(source Source) *Hub {
	return &Hub{
		source: source,
		logger: logger.GetLogger(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // read-only public data
			},
		},
		clients:    make(map[*client]struct{}),
		now:        time.Now,
		pongWait:   pongWait,
		pingPeriod: pingInterval(pongWait),
	}
}

func (h *Hub) snapshot() Message {
	return Message{Indices: h.source.Indices(), SentAt: h.now().UTC()}
}

// ServeHTTP upgrades the request and registers the connection. The client
// receives the current snapshot immediately.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("ticker upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan Message, sendBuffer)}
	c.send <- h.snapshot()

	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	metrics.TickerClients.Set(float64(n))
	h.logger.WithField("clients", n).Debug("ticker client connected")

	go h.writePump(c)
	go h.readPump(c)
}

// Broadcast queues the snapshot for every client. Clients whose buffer is
// full are dropped.
func (h *Hub) Broadcast() {
	msg := h.snapshot()

	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.removeLocked(c)
		}
	}
	h.mu.Unlock()

	metrics.TickerBroadcasts.Inc()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	metrics.TickerClients.Set(float64(len(h.clients)))
}

// writePump owns all writes to the connection: queued snapshots and the
// pings that keep a listen-only client's read deadline moving.
func (h *Hub) writePump(c *client) {
	ping := time.NewTicker(h.pingPeriod)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				h.remove(c)
				return
			}
		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(h.pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(h.pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Start schedules Broadcast on a cron schedule such as "@every 5s".
func (h *Hub) Start(schedule string) error {
	h.cron = cron.New()
	if _, err := h.cron.AddFunc(schedule, h.Broadcast); err != nil {
		return err
	}
	h.cron.Start()
	h.logger.WithField("schedule", schedule).Info("ticker started")
	return nil
}

// Stop halts the schedule and disconnects every client.
func (h *Hub) Stop() {
	if h.cron != nil {
		<-h.cron.Stop().Done()
	}

	h.mu.Lock()
	for c := range h.clients {
		h.removeLocked(c)
	}
	h.mu.Unlock()
	h.logger.Info("ticker stopped")
}
