// Package frame simulates the remote end of the player channel: an embedded
// player that connects to the host, announces readiness and answers
// commands with the events a real player would emit.
package frame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sharetube/player-api/pkg/qs"
	"github.com/sharetube/player-api/pkg/wsrouter"
)

type Config struct {
	// HostURL is the websocket base URL of the host, e.g. ws://localhost:8080.
	HostURL   string
	Origin    string
	PlayerID  string
	Duration  float64
	Qualities []string
	Subtitles []string
}

type playback struct {
	currentTime float64
	paused      bool
	volume      float64
	muted       bool
	fullscreen  bool
	controls    bool
	video       string
}

type Simulator struct {
	cfg    Config
	router *wsrouter.WSRouter
	logger *slog.Logger

	conn    *websocket.Conn
	writeMu sync.Mutex

	// state is only touched by the read loop
	state playback
}

func New(cfg Config, logger *slog.Logger) *Simulator {
	s := &Simulator{
		cfg:    cfg,
		logger: logger.With("player_id", cfg.PlayerID),
		state: playback{
			paused:   true,
			volume:   1,
			controls: true,
		},
	}
	s.router = s.getRouter()

	return s
}

// Run connects to the host, emits the startup events and serves commands
// until ctx is done or the connection drops.
func (s *Simulator) Run(ctx context.Context) error {
	url := strings.TrimSuffix(s.cfg.HostURL, "/") + "/ws/frame/" + s.cfg.PlayerID
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, http.Header{"Origin": {s.cfg.Origin}})
	if err != nil {
		return fmt.Errorf("failed to connect to host: %w", err)
	}
	s.conn = conn
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	if err := s.announce(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "frame simulator running", "url", url)
	err = s.router.ServeConn(ctx, conn)
	if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}

	return err
}

func (s *Simulator) announce() error {
	if err := s.Emit(eventAPIReady, nil); err != nil {
		return err
	}
	if len(s.cfg.Qualities) > 0 {
		if err := s.emitList(eventQualitiesAvailable, "qualities", s.cfg.Qualities); err != nil {
			return err
		}
	}
	if len(s.cfg.Subtitles) > 0 {
		if err := s.emitList(eventSubtitlesAvailable, "subtitles", s.cfg.Subtitles); err != nil {
			return err
		}
	}

	return s.Emit(eventDurationChange, map[string]any{"duration": s.cfg.Duration})
}

// Emit posts event with fields to the host.
func (s *Simulator) Emit(event string, fields map[string]any) error {
	body := map[string]any{"id": s.cfg.PlayerID, "event": event}
	for k, v := range fields {
		body[k] = v
	}

	return s.write(qs.Encode(body))
}

// emitList sends values as a repeated key[] list, which the codec cannot
// produce from a map.
func (s *Simulator) emitList(event, key string, values []string) error {
	var b strings.Builder
	b.WriteString(qs.Encode(map[string]any{"id": s.cfg.PlayerID, "event": event}))
	for _, v := range values {
		b.WriteString("&" + qs.EscapeComponent(key+"[]") + "=" + qs.EscapeComponent(v))
	}

	return s.write(b.String())
}

// Unload tells the host the player is going away and closes the connection.
func (s *Simulator) Unload() error {
	if err := s.Emit(eventUnload, nil); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Simulator) write(body string) error {
	if s.conn == nil {
		return errors.New("simulator is not connected")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.conn.WriteMessage(websocket.TextMessage, []byte(body))
}

func (s *Simulator) getRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	// playback
	mux.Handle("play", s.handlePlay)
	mux.Handle("pause", s.handlePause)
	mux.Handle("toggle-play", s.handleTogglePlay)
	mux.Handle("seek", s.handleSeek)
	mux.Handle("load", s.handleLoad)
	mux.Handle("watch-on-site", s.handlePause)

	// sound
	mux.Handle("volume", s.handleVolume)
	mux.Handle("muted", s.handleMuted)
	mux.Handle("toggle-muted", s.handleToggleMuted)

	// display
	mux.Handle("fullscreen", s.handleFullscreen)
	mux.Handle("controls", s.handleControls)
	mux.Handle("toggle-controls", s.handleToggleControls)
	mux.Handle("quality", s.handleQuality)
	mux.Handle("subtitle", s.handleSubtitle)

	mux.NotFound(func(ctx context.Context, _ *websocket.Conn, params []json.RawMessage) error {
		s.logger.DebugContext(ctx, "command ignored", "command", wsrouter.GetCommandFromCtx(ctx), "parameters", len(params))
		return nil
	})
	mux.OnError(func(ctx context.Context, err error) {
		s.logger.WarnContext(ctx, "command failed", "err", err)
	})

	return mux
}
