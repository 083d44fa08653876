package services

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

// MessagePickRecorded is broadcast on the season topic after a pick lands
const MessagePickRecorded = "pick_recorded"

// DraftTopic is the topic clients subscribe to for one season's draft
func DraftTopic(season int) string {
	return "draft:" + strconv.Itoa(season)
}

type WebSocketHub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	logger     *logrus.Entry
}

type Client struct {
	ID     string
	hub    *WebSocketHub
	conn   *websocket.Conn
	send   chan []byte
	mu     sync.RWMutex
	topics map[string]bool
}

type WebSocketMessage struct {
	Type      string          `json:"type"`
	Topic     string          `json:"topic"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type Subscription struct {
	Action string   `json:"action"` // "subscribe" or "unsubscribe"
	Topics []string `json:"topics"`
}

func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logrus.WithField("component", "websocket_hub"),
	}
}

// Run owns client registration until ctx is done
func (h *WebSocketHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.WithField("client_id", client.ID).Info("Client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.WithField("client_id", client.ID).Info("Client unregistered")
		}
	}
}

// Attach registers a connection and starts its pumps. It returns once the
// client is registered, or nil when the hub has stopped.
func (h *WebSocketHub) Attach(conn *websocket.Conn) *Client {
	client := NewClient(h, conn)
	if welcome, err := encodeMessage("welcome", "", map[string]string{"client_id": client.ID}); err == nil {
		client.send <- welcome
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return nil
	}

	go client.WritePump()
	go client.ReadPump()
	return client
}

// BroadcastToTopic sends to every subscriber of topic. Slow clients whose
// buffer is full miss the message.
func (h *WebSocketHub) BroadcastToTopic(topic string, messageType string, data interface{}) error {
	messageBytes, err := encodeMessage(messageType, topic, data)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for client := range h.clients {
		if !client.IsSubscribedTo(topic) {
			continue
		}
		select {
		case client.send <- messageBytes:
			sent++
		default:
			h.logger.WithField("client_id", client.ID).Warn("Client buffer full, dropping message")
		}
	}

	h.logger.WithFields(logrus.Fields{
		"topic":      topic,
		"type":       messageType,
		"recipients": sent,
	}).Debug("Broadcast sent")
	return nil
}

// SubscriberCount reports how many connected clients follow topic
func (h *WebSocketHub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for client := range h.clients {
		if client.IsSubscribedTo(topic) {
			n++
		}
	}
	return n
}

func encodeMessage(messageType, topic string, data interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WebSocketMessage{
		Type:      messageType,
		Topic:     topic,
		Data:      jsonData,
		Timestamp: time.Now().UTC(),
	})
}

func NewClient(hub *WebSocketHub, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.NewString(),
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		topics: make(map[string]bool),
	}
}

func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var sub Subscription
		if err := c.conn.ReadJSON(&sub); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.WithError(err).WithField("client_id", c.ID).Error("WebSocket error")
			}
			return
		}

		c.mu.Lock()
		switch sub.Action {
		case "subscribe":
			for _, topic := range sub.Topics {
				c.topics[topic] = true
			}
		case "unsubscribe":
			for _, topic := range sub.Topics {
				delete(c.topics, topic)
			}
		}
		c.mu.Unlock()
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) IsSubscribedTo(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topics[topic] || c.topics["*"] // "*" subscribes to all topics
}
