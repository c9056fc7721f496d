package websocket

import (
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

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestHubPublishReachesEveryClient(t *testing.T) {
	hub := startHub(t)
	a := NewClient(hub, nil, "a")
	b := NewClient(hub, nil, "b")
	hub.Register <- a
	hub.Register <- b

	hub.Publish("message.created", map[string]string{"id": "m1"})

	for _, c := range []*Client{a, b} {
		msg := receive(t, c)
		assert.Equal(t, "message.created", msg.Action)
		assert.Equal(t, map[string]interface{}{"id": "m1"}, msg.Payload)
	}
	assert.Equal(t, 2, hub.ClientCount())
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	c := NewClient(hub, nil, "a")
	hub.Register <- c
	hub.Unregister <- c

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := startHub(t)
	slow := &Client{hub: hub, Send: make(chan []byte), UserID: "slow"}
	hub.Register <- slow

	hub.Publish("ping", nil)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubPublishDoesNotBlockWhenStopped(t *testing.T) {
	hub := NewHub()
	for i := 0; i < broadcastBuffer+10; i++ {
		hub.Publish("flood", i)
	}
	assert.Len(t, hub.Broadcast, broadcastBuffer)
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	c := NewClient(hub, nil, "a")
	hub.Register <- c

	hub.Stop()
	hub.Stop()

	_, ok := <-c.Send
	assert.False(t, ok)
	select {
	case <-hub.Done():
	default:
		t.Fatal("done not closed")
	}
}

func TestClientPumps(t *testing.T) {
	hub := startHub(t)
	upgrader := websocket.Upgrader{}
	echoed := make(chan string, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient(hub, conn, "admin")
		hub.Register <- c
		go c.WritePump()
		go func() {
			c.ReadPump(func(_ *Client, msg []byte) { echoed <- string(msg) })
			hub.Unregister <- c
		}()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	hub.Publish("project.created", map[string]string{"id": "p1"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "project.created", msg.Action)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"ping"}`)))
	select {
	case got := <-echoed:
		assert.JSONEq(t, `{"action":"ping"}`, got)
	case <-time.After(time.Second):
		t.Fatal("read pump did not deliver message")
	}
}

func TestNewErrorMessage(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal(NewErrorMessage("boom"), &msg))
	assert.Equal(t, "error", msg.Action)
	assert.Equal(t, map[string]interface{}{"message": "boom"}, msg.Payload)
}
