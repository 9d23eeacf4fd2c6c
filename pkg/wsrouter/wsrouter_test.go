package wsrouter

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

type call struct {
	command string
	seconds float64
}

func TestServeConnRoutesCommands(t *testing.T) {
	calls := make(chan call, 4)
	errs := make(chan error, 4)

	router := New()
	router.Handle("seek", func(ctx context.Context, conn *websocket.Conn, params []json.RawMessage) error {
		seconds, err := Param[float64](params, 0)
		if err != nil {
			return err
		}
		calls <- call{command: GetCommandFromCtx(ctx), seconds: seconds}
		return nil
	})
	router.NotFound(func(ctx context.Context, conn *websocket.Conn, params []json.RawMessage) error {
		calls <- call{command: "unrouted:" + GetCommandFromCtx(ctx)}
		return nil
	})
	router.OnError(func(ctx context.Context, err error) {
		errs <- err
	})

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = router.ServeConn(context.Background(), conn)
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	for _, msg := range []string{
		`{"command":"seek","parameters":[12.5]}`,
		`not json`,
		`{"command":"seek","parameters":[]}`,
		`{"command":"play","parameters":[]}`,
	} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
	}

	receive := func() call {
		select {
		case c := <-calls:
			return c
		case <-time.After(time.Second):
			t.Fatal("no call")
			return call{}
		}
	}
	assert.Equal(t, call{command: "seek", seconds: 12.5}, receive())
	assert.Equal(t, call{command: "unrouted:play"}, receive())

	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			assert.Error(t, err)
		case <-time.After(time.Second):
			t.Fatal("no error reported")
		}
	}
}

func TestParam(t *testing.T) {
	params := []json.RawMessage{json.RawMessage(`"x1"`), json.RawMessage(`null`)}

	id, err := Param[string](params, 0)
	require.NoError(t, err)
	assert.Equal(t, "x1", id)

	settings, err := Param[map[string]any](params, 1)
	require.NoError(t, err)
	assert.Nil(t, settings)

	_, err = Param[string](params, 2)
	assert.ErrorIs(t, err, ErrMissingParameter)

	_, err = Param[bool](params, 0)
	assert.Error(t, err)
}
