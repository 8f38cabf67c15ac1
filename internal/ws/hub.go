// Package ws streams season and rating-search progress to connected
// clients over websockets. Adapted from the teacher's
// services/api-gateway/internal/websocket/hub.go GatewayHub: the same
// register/unregister/broadcast channel trio and read/write pump
// goroutines, repurposed from "OptimizationProgress" messages to
// season-standings and rating-search step events.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the envelope every websocket frame carries.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client is one connected websocket subscriber, tracked against a
// single run (season or search) ID.
type Client struct {
	ID    string
	RunID string
	Conn  *websocket.Conn
	Send  chan Message
	Hub   *Hub
}

// Hub fans season/search progress out to every client subscribed to a
// given run ID.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	byRun      map[string][]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan runMessage
	log        *logrus.Logger
}

type runMessage struct {
	runID string
	msg   Message
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byRun:      make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan runMessage, 256),
		log:        log,
	}
}

// Run drives the hub's select loop; intended to be started once in its
// own goroutine at server startup.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.byRun[c.RunID] = append(h.byRun[c.RunID], c)
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
				subs := h.byRun[c.RunID]
				for i, other := range subs {
					if other == c {
						h.byRun[c.RunID] = append(subs[:i], subs[i+1:]...)
						break
					}
				}
			}
			h.mu.Unlock()

		case rm := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.byRun[rm.runID] {
				select {
				case c.Send <- rm.msg:
				default:
					go func(c *Client) { h.unregister <- c }(c)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Serve upgrades the request to a websocket and registers the client
// against runID (a season_run_id or search_run_id path parameter).
func (h *Hub) Serve(c *gin.Context, runID string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.WithError(err).Warn("websocket upgrade failed")
		}
		return
	}

	client := &Client{
		ID:    conn.RemoteAddr().String(),
		RunID: runID,
		Conn:  conn,
		Send:  make(chan Message, 32),
		Hub:   h,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastSearchStep sends one rating-search step result to clients
// subscribed to searchRunID.
func (h *Hub) BroadcastSearchStep(searchRunID string, result interface{}) {
	h.broadcast <- runMessage{runID: searchRunID, msg: Message{Type: "search_step", Data: result}}
}

// BroadcastSearchDone announces a search run's terminal step.
func (h *Hub) BroadcastSearchDone(searchRunID string, bestRMSE float64) {
	h.broadcast <- runMessage{runID: searchRunID, msg: Message{
		Type: "search_done",
		Data: map[string]interface{}{"best_rmse": bestRMSE},
	}}
}

// BroadcastSeasonDone sends the final standings table for a season
// run to clients subscribed to seasonRunID.
func (h *Hub) BroadcastSeasonDone(seasonRunID string, standings interface{}) {
	h.broadcast <- runMessage{runID: seasonRunID, msg: Message{Type: "season_done", Data: standings}}
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			payload, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
