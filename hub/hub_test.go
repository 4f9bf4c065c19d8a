package hub

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subscriberCount is test-only access to the registry size.
func (h *Hub) subscriberCount() int {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	return len(h.clients)
}

// dial connects a WebSocket client to the test server.
func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "dial failed")
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitSubscribers blocks until the hub has registered n subscribers.
func waitSubscribers(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.subscriberCount() == n },
		time.Second, 5*time.Millisecond, "hub never reached %d subscribers", n)
}

func Test_Hub_Connected(t *testing.T) {
	h := New()
	server := httptest.NewServer(h)
	defer server.Close()

	assert.False(t, h.Connected(), "connected without subscribers")
	conn := dial(t, server)
	waitSubscribers(t, h, 1)
	assert.True(t, h.Connected(), "not connected with a subscriber")
	conn.Close()
	assert.Eventually(t, func() bool { return !h.Connected() },
		time.Second, 5*time.Millisecond, "subscriber not dropped after close")
}

func Test_Hub_Emit(t *testing.T) {
	t.Run("no_subscribers", func(t *testing.T) {
		h := New()
		assert.NoError(t, h.Emit("logger", []byte("void")))
	})
	t.Run("broadcasts_to_all", func(t *testing.T) {
		h := New()
		server := httptest.NewServer(h)
		defer server.Close()

		first := dial(t, server)
		second := dial(t, server)
		waitSubscribers(t, h, 2)

		record := "[25-08-26 10:11:12] - INFO - live"
		require.NoError(t, h.Emit("logger", []byte(record)))
		for _, conn := range []*websocket.Conn{first, second} {
			conn.SetReadDeadline(time.Now().Add(time.Second))
			_, frame, err := conn.ReadMessage()
			require.NoError(t, err, "subscriber received nothing")
			var env envelope
			require.NoError(t, json.Unmarshal(frame, &env))
			assert.Equal(t, "logger", env.Channel)
			assert.Equal(t, record, env.Payload)
		}
	})
	t.Run("keeps_order_per_subscriber", func(t *testing.T) {
		h := New()
		server := httptest.NewServer(h)
		defer server.Close()

		conn := dial(t, server)
		waitSubscribers(t, h, 1)
		require.NoError(t, h.Emit("logger", []byte("one")))
		require.NoError(t, h.Emit("logger", []byte("two")))
		for _, want := range []string{"one", "two"} {
			conn.SetReadDeadline(time.Now().Add(time.Second))
			_, frame, err := conn.ReadMessage()
			require.NoError(t, err)
			var env envelope
			require.NoError(t, json.Unmarshal(frame, &env))
			assert.Equal(t, want, env.Payload)
		}
	})
	t.Run("prunes_dead_subscriber", func(t *testing.T) {
		h := New()
		server := httptest.NewServer(h)
		defer server.Close()

		stays := dial(t, server)
		dies := dial(t, server)
		waitSubscribers(t, h, 2)
		// underlying close, no closing handshake: the next write has to fail
		dies.UnderlyingConn().Close()
		assert.Eventually(t, func() bool {
			h.Emit("logger", []byte("probe"))
			return h.subscriberCount() == 1
		}, time.Second, 10*time.Millisecond, "dead subscriber not pruned")

		stays.SetReadDeadline(time.Now().Add(time.Second))
		_, _, err := stays.ReadMessage()
		assert.NoError(t, err, "surviving subscriber received nothing")
	})
}

func Test_Hub_Close(t *testing.T) {
	h := New()
	server := httptest.NewServer(h)
	defer server.Close()

	dial(t, server)
	dial(t, server)
	waitSubscribers(t, h, 2)
	h.Close()
	assert.False(t, h.Connected(), "subscribers survived Close")
	assert.Zero(t, h.subscriberCount())
}
