package frame

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sharetube/player-api/internal/transport"
	"github.com/sharetube/player-api/internal/transport/ws"
	"github.com/sharetube/player-api/pkg/qs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "https://www.dailymotion.com"

type inbox struct {
	mu     sync.Mutex
	events []qs.Values
}

func (i *inbox) handle(_ context.Context, msg transport.Message) {
	if msg.Origin != testOrigin {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.events = append(i.events, qs.Decode(msg.Data))
}

func (i *inbox) names() []string {
	i.mu.Lock()
	defer i.mu.Unlock()

	names := make([]string, 0, len(i.events))
	for _, ev := range i.events {
		names = append(names, ev.Get("event"))
	}

	return names
}

func (i *inbox) last(name string) qs.Values {
	i.mu.Lock()
	defer i.mu.Unlock()

	for j := len(i.events) - 1; j >= 0; j-- {
		if i.events[j].Get("event") == name {
			return i.events[j]
		}
	}

	return nil
}

func startSimulator(t *testing.T, cfg Config) (*ws.Hub, *inbox, *Simulator) {
	t.Helper()

	hub := ws.NewHub(slog.Default())
	in := &inbox{}
	hub.Subscribe(in.handle)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeFrame(w, r, strings.TrimPrefix(r.URL.Path, "/ws/frame/"))
	}))
	t.Cleanup(server.Close)
	t.Cleanup(hub.Close)

	cfg.HostURL = "ws" + strings.TrimPrefix(server.URL, "http")
	cfg.Origin = testOrigin
	sim := New(cfg, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = sim.Run(ctx) }()

	return hub, in, sim
}

func TestSimulatorAnnounces(t *testing.T) {
	_, in, _ := startSimulator(t, Config{
		PlayerID:  "p1",
		Duration:  90,
		Qualities: []string{"240", "720"},
		Subtitles: []string{"en"},
	})

	require.Eventually(t, func() bool { return len(in.names()) == 4 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"apiready", "qualitiesavailable", "subtitlesavailable", "durationchange"}, in.names())

	assert.Equal(t, "p1", in.last("apiready").Get("id"))
	assert.Equal(t, []string{"240", "720"}, in.last("qualitiesavailable").List("qualities"))
	assert.Equal(t, []string{"en"}, in.last("subtitlesavailable").List("subtitles"))
	assert.Equal(t, "90", in.last("durationchange").Get("duration"))
}

func TestSimulatorAnswersCommands(t *testing.T) {
	hub, in, _ := startSimulator(t, Config{PlayerID: "p1", Duration: 60})
	require.Eventually(t, func() bool { return len(in.names()) == 2 }, time.Second, 10*time.Millisecond)

	ctx := context.Background()
	for _, cmd := range []string{
		`{"command":"play","parameters":[]}`,
		`{"command":"seek","parameters":[12.5]}`,
		`{"command":"toggle-muted","parameters":[]}`,
		`{"command":"controls","parameters":[false]}`,
		`{"command":"quality","parameters":["720"]}`,
		`{"command":"unknown","parameters":[]}`,
		`{"command":"seek","parameters":[]}`,
		`{"command":"toggle-play","parameters":[]}`,
	} {
		require.NoError(t, hub.PostMessage(ctx, "p1", []byte(cmd), testOrigin))
	}

	require.Eventually(t, func() bool { return in.last("pause") != nil }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{
		"apiready", "durationchange",
		"play", "playing",
		"seeking", "seeked",
		"volumechange",
		"controlschange",
		"qualitychange",
		"pause",
	}, in.names())

	assert.Equal(t, "12.5", in.last("seeked").Get("time"))
	assert.Equal(t, "true", in.last("volumechange").Get("muted"))
	assert.Equal(t, "1", in.last("volumechange").Get("volume"))
	assert.Equal(t, "false", in.last("controlschange").Get("controls"))
	assert.Equal(t, "720", in.last("qualitychange").Get("quality"))
}

func TestSimulatorUnload(t *testing.T) {
	hub, in, sim := startSimulator(t, Config{PlayerID: "p1"})
	require.Eventually(t, func() bool { return len(in.names()) == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, sim.Unload())
	require.Eventually(t, func() bool { return len(hub.Windows()) == 0 }, time.Second, 10*time.Millisecond)
	assert.NotNil(t, in.last("unload"))
}

func TestSimulatorRunFailsWithoutHost(t *testing.T) {
	sim := New(Config{HostURL: "ws://127.0.0.1:1", PlayerID: "p1"}, slog.Default())
	assert.Error(t, sim.Run(context.Background()))
	assert.Error(t, sim.Emit("play", nil))
}
