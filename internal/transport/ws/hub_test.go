package ws

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sharetube/player-api/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

const frameOrigin = "https://www.dailymotion.com"

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub(slog.Default())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		window := strings.TrimPrefix(r.URL.Path, "/ws/frame/")
		_ = hub.ServeFrame(w, r, window)
	}))
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/frame/"
}

func dialFrame(t *testing.T, hub *Hub, baseURL, window, origin string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(baseURL+window, http.Header{"Origin": {origin}})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool {
		return slices.Contains(hub.Windows(), window)
	}, time.Second, 10*time.Millisecond)

	return conn
}

func TestInboundMessagesCarryOrigin(t *testing.T) {
	hub, baseURL := newTestHub(t)

	received := make(chan transport.Message, 1)
	hub.Subscribe(func(ctx context.Context, msg transport.Message) {
		received <- msg
	})

	conn := dialFrame(t, hub, baseURL, "f1", frameOrigin)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("id=f1&event=apiready")))

	select {
	case msg := <-received:
		assert.Equal(t, frameOrigin, msg.Origin)
		assert.Equal(t, "id=f1&event=apiready", msg.Data)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}

func TestPostMessage(t *testing.T) {
	hub, baseURL := newTestHub(t)
	conn := dialFrame(t, hub, baseURL, "f1", frameOrigin)
	ctx := context.Background()

	require.NoError(t, hub.PostMessage(ctx, "f1", []byte(`{"command":"play","parameters":[]}`), frameOrigin))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `{"command":"play","parameters":[]}`, string(data))

	require.NoError(t, hub.PostMessage(ctx, "f1", []byte("{}"), transport.Wildcard))
}

func TestPostMessageErrors(t *testing.T) {
	hub, baseURL := newTestHub(t)
	dialFrame(t, hub, baseURL, "f1", "https://evil.example.com")
	ctx := context.Background()

	err := hub.PostMessage(ctx, "f1", []byte("{}"), frameOrigin)
	assert.ErrorIs(t, err, transport.ErrOriginMismatch)

	err = hub.PostMessage(ctx, "missing", []byte("{}"), frameOrigin)
	assert.ErrorIs(t, err, transport.ErrWindowNotFound)
}

func TestFrameDetachedOnClose(t *testing.T) {
	hub, baseURL := newTestHub(t)
	conn := dialFrame(t, hub, baseURL, "f1", frameOrigin)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool {
		return len(hub.Windows()) == 0
	}, time.Second, 10*time.Millisecond)
}
