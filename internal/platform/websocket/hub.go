// Package websocket pushes committed store mutations to connected clients.
// Clients subscribe to collection topics and receive one event per create,
// update or delete in those collections. A client may only subscribe to the
// collections its session is allowed to read.
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

// Event is one change notification sent to clients.
type Event struct {
	Type       string    `json:"type"`
	Collection string    `json:"collection"`
	Action     string    `json:"action,omitempty"`
	ID         string    `json:"id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	// Topics and Error are set on subscription acknowledgements.
	Topics []string `json:"topics,omitempty"`
	Error  string   `json:"error,omitempty"`
}

const (
	EventChange     = "change"
	EventSubscribed = "subscribed"
	EventRejected   = "rejected"
)

// ClientMessage represents an inbound message from a client.
type ClientMessage struct {
	Action string   `json:"action"`
	Topics []string `json:"topics"`
}

// Authorizer decides whether a session may read a resource.
type Authorizer interface {
	Check(s auth.Session, resource auth.Resource) error
}

// Revocations reports whether a session token has been revoked.
type Revocations interface {
	IsRevoked(jti string) bool
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithRevocations makes the hub drop clients whose token is revoked after
// the connection was opened.
func WithRevocations(r Revocations) HubOption {
	return func(h *Hub) { h.revoked = r }
}

// Client represents a single connection.
type Client struct {
	ID      string
	Session auth.Session
	Topics  []string
	Send    chan []byte
}

// NewClient returns a client with a buffered send queue.
func NewClient(s auth.Session) *Client {
	return &Client{
		ID:      uuid.NewString(),
		Session: s,
		Topics:  []string{},
		Send:    make(chan []byte, 256),
	}
}

// Hub tracks clients and their collection subscriptions.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{} // topic -> set of clients
	all     map[*Client]struct{}

	// topics maps each collection name to the resource guarding it.
	topics  map[string]auth.Resource
	authz   Authorizer
	revoked Revocations
	logger  zerolog.Logger
}

// NewHub builds a hub serving the given collection topics.
func NewHub(topics map[string]auth.Resource, authz Authorizer, logger zerolog.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		clients: make(map[string]map[*Client]struct{}),
		all:     make(map[*Client]struct{}),
		topics:  topics,
		authz:   authz,
		logger:  logger.With().Str("component", "websocket").Logger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) isRevoked(client *Client) bool {
	return h.revoked != nil && client.Session.TokenID != "" && h.revoked.IsRevoked(client.Session.TokenID)
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[client] = struct{}{}
}

// Unregister removes a client and closes its send queue.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}
	for _, topic := range client.Topics {
		h.removeLocked(topic, client)
	}
	delete(h.all, client)
	close(client.Send)
}

// Subscribe adds the topics the client may read and returns the rejected
// ones.
func (h *Hub) Subscribe(client *Client, topics []string) (rejected []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range topics {
		resource, ok := h.topics[topic]
		if !ok || h.isRevoked(client) || (h.authz != nil && h.authz.Check(client.Session, resource) != nil) {
			rejected = append(rejected, topic)
			continue
		}
		if h.clients[topic] == nil {
			h.clients[topic] = make(map[*Client]struct{})
		}
		if _, dup := h.clients[topic][client]; dup {
			continue
		}
		h.clients[topic][client] = struct{}{}
		client.Topics = append(client.Topics, topic)
	}
	return rejected
}

func (h *Hub) Unsubscribe(client *Client, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	drop := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		drop[t] = struct{}{}
		h.removeLocked(t, client)
	}
	remaining := make([]string, 0, len(client.Topics))
	for _, t := range client.Topics {
		if _, rm := drop[t]; !rm {
			remaining = append(remaining, t)
		}
	}
	client.Topics = remaining
}

func (h *Hub) removeLocked(topic string, client *Client) {
	if subscribers, ok := h.clients[topic]; ok {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.clients, topic)
		}
	}
}

// ProcessMessage applies a subscribe or unsubscribe request and queues the
// acknowledgement.
func (h *Hub) ProcessMessage(client *Client, msg ClientMessage) {
	switch msg.Action {
	case "subscribe":
		rejected := h.Subscribe(client, msg.Topics)
		h.send(client, Event{Type: EventSubscribed, Topics: h.topicsOf(client), Timestamp: time.Now().UTC()})
		if len(rejected) > 0 {
			h.send(client, Event{Type: EventRejected, Topics: rejected, Error: auth.NoticeAccessDenied, Timestamp: time.Now().UTC()})
		}
	case "unsubscribe":
		h.Unsubscribe(client, msg.Topics)
		h.send(client, Event{Type: EventSubscribed, Topics: h.topicsOf(client), Timestamp: time.Now().UTC()})
	}
}

func (h *Hub) topicsOf(client *Client) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), client.Topics...)
}

func (h *Hub) send(client *Client, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal event")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.all[client]; !ok {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}

// Broadcast sends an event to every subscriber of topic. Slow clients whose
// queue is full miss the event. Clients whose token was revoked are
// disconnected instead.
func (h *Hub) Broadcast(topic string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal event")
		return
	}

	var stale []*Client
	h.mu.RLock()
	for client := range h.clients[topic] {
		if h.isRevoked(client) {
			stale = append(stale, client)
			continue
		}
		select {
		case client.Send <- data:
		default:
			h.logger.Warn().Str("client", client.ID).Str("topic", topic).Msg("client queue full, event dropped")
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Info().Str("client", client.ID).Str("subject", client.Session.Subject).Msg("session revoked, closing client")
		h.Unregister(client)
	}
}

// Changed forwards a committed mutation to the collection's subscribers.
func (h *Hub) Changed(ev store.ChangeEvent) {
	h.Broadcast(ev.Collection, Event{
		Type:       EventChange,
		Collection: ev.Collection,
		Action:     string(ev.Action),
		ID:         ev.ID,
		Timestamp:  ev.At,
	})
}

var _ store.Observer = (*Hub)(nil)

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

func (h *Hub) TopicCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}

// ---------------------------------------------------------------------------
// Handler
// ---------------------------------------------------------------------------

// Handler upgrades HTTP requests to websocket connections.
type Handler struct {
	hub      *Hub
	upgrader gorillawebsocket.Upgrader
}

// NewHandler binds a handler to hub. allowedOrigins empty accepts any origin.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Handler{
		hub: hub,
		upgrader: gorillawebsocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin] || allowed["*"]
			},
		},
	}
}

func (wsh *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", wsh.HandleConnect)
}

// HandleConnect requires an authenticated session, upgrades the connection
// and starts the read and write pumps.
func (wsh *Handler) HandleConnect(c echo.Context) error {
	s := auth.SessionFromContext(c.Request().Context())
	if !s.Authenticated() {
		return echo.NewHTTPError(http.StatusUnauthorized, auth.NoticeAuthRequired)
	}

	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := NewClient(s)
	wsh.hub.Register(client)
	wsh.hub.logger.Debug().Str("client", client.ID).Str("subject", s.Subject).Msg("client connected")

	go wsh.writePump(client, ws)
	go wsh.readPump(client, ws)
	return nil
}

func (wsh *Handler) readPump(client *Client, ws *gorillawebsocket.Conn) {
	defer func() {
		wsh.hub.Unregister(client)
		ws.Close()
	}()

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		wsh.hub.ProcessMessage(client, msg)
	}
}

func (wsh *Handler) writePump(client *Client, ws *gorillawebsocket.Conn) {
	defer ws.Close()

	for message := range client.Send {
		ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := ws.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			return
		}
	}
	ws.WriteMessage(gorillawebsocket.CloseMessage, []byte{})
}
