package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*WebSocketHub, *httptest.Server) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewWebSocketHub()
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Attach(conn)
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var welcome WebSocketMessage
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "welcome", welcome.Type)
	return conn
}

func TestDraftTopic(t *testing.T) {
	assert.Equal(t, "draft:2026", DraftTopic(2026))
}

func TestWebSocketHub_BroadcastToSubscribers(t *testing.T) {
	hub, srv := startHub(t)
	topic := DraftTopic(2026)

	subscriber := dial(t, srv)
	other := dial(t, srv)

	require.NoError(t, subscriber.WriteJSON(Subscription{Action: "subscribe", Topics: []string{topic}}))
	require.Eventually(t, func() bool { return hub.SubscriberCount(topic) == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.BroadcastToTopic(topic, MessagePickRecorded, map[string]string{"player_id": "of1"}))

	var msg WebSocketMessage
	subscriber.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, subscriber.ReadJSON(&msg))
	assert.Equal(t, MessagePickRecorded, msg.Type)
	assert.Equal(t, topic, msg.Topic)

	var data map[string]string
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "of1", data["player_id"])

	// the unsubscribed client gets nothing
	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err)
}

func TestWebSocketHub_Unsubscribe(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(Subscription{Action: "subscribe", Topics: []string{"*"}}))
	require.Eventually(t, func() bool { return hub.SubscriberCount("draft:1") == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Subscription{Action: "unsubscribe", Topics: []string{"*"}}))
	require.Eventually(t, func() bool { return hub.SubscriberCount("draft:1") == 0 }, 5*time.Second, 10*time.Millisecond)
}
