package frame

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/sharetube/player-api/pkg/wsrouter"
)

const (
	eventAPIReady           = "apiready"
	eventUnload             = "unload"
	eventStart              = "start"
	eventLoadedMetadata     = "loadedmetadata"
	eventDurationChange     = "durationchange"
	eventPlay               = "play"
	eventPlaying            = "playing"
	eventPause              = "pause"
	eventSeeking            = "seeking"
	eventSeeked             = "seeked"
	eventVolumeChange       = "volumechange"
	eventFullscreenChange   = "fullscreenchange"
	eventControlsChange     = "controlschange"
	eventQualitiesAvailable = "qualitiesavailable"
	eventQualityChange      = "qualitychange"
	eventSubtitlesAvailable = "subtitlesavailable"
	eventSubtitleChange     = "subtitlechange"
)

func (s *Simulator) handlePlay(ctx context.Context, _ *websocket.Conn, _ []json.RawMessage) error {
	s.state.paused = false
	if err := s.Emit(eventPlay, nil); err != nil {
		return err
	}

	return s.Emit(eventPlaying, nil)
}

func (s *Simulator) handlePause(ctx context.Context, _ *websocket.Conn, _ []json.RawMessage) error {
	s.state.paused = true
	return s.Emit(eventPause, nil)
}

func (s *Simulator) handleTogglePlay(ctx context.Context, conn *websocket.Conn, params []json.RawMessage) error {
	if s.state.paused {
		return s.handlePlay(ctx, conn, params)
	}

	return s.handlePause(ctx, conn, params)
}

func (s *Simulator) handleSeek(ctx context.Context, _ *websocket.Conn, params []json.RawMessage) error {
	seconds, err := wsrouter.Param[float64](params, 0)
	if err != nil {
		return err
	}

	s.state.currentTime = seconds
	if err := s.Emit(eventSeeking, map[string]any{"time": seconds}); err != nil {
		return err
	}

	return s.Emit(eventSeeked, map[string]any{"time": seconds})
}

func (s *Simulator) handleLoad(ctx context.Context, _ *websocket.Conn, params []json.RawMessage) error {
	video, err := wsrouter.Param[string](params, 0)
	if err != nil {
		return err
	}

	s.state.video = video
	s.state.currentTime = 0
	for _, ev := range []struct {
		name   string
		fields map[string]any
	}{
		{eventLoadedMetadata, nil},
		{eventDurationChange, map[string]any{"duration": s.cfg.Duration}},
		{eventStart, nil},
	} {
		if err := s.Emit(ev.name, ev.fields); err != nil {
			return err
		}
	}

	return nil
}

func (s *Simulator) handleVolume(ctx context.Context, _ *websocket.Conn, params []json.RawMessage) error {
	volume, err := wsrouter.Param[float64](params, 0)
	if err != nil {
		return err
	}

	s.state.volume = volume
	return s.emitVolume()
}

func (s *Simulator) handleMuted(ctx context.Context, _ *websocket.Conn, params []json.RawMessage) error {
	muted, err := wsrouter.Param[bool](params, 0)
	if err != nil {
		return err
	}

	s.state.muted = muted
	return s.emitVolume()
}

func (s *Simulator) handleToggleMuted(ctx context.Context, _ *websocket.Conn, _ []json.RawMessage) error {
	s.state.muted = !s.state.muted
	return s.emitVolume()
}

func (s *Simulator) emitVolume() error {
	return s.Emit(eventVolumeChange, map[string]any{
		"volume": s.state.volume,
		"muted":  s.state.muted,
	})
}

func (s *Simulator) handleFullscreen(ctx context.Context, _ *websocket.Conn, params []json.RawMessage) error {
	fullscreen, err := wsrouter.Param[bool](params, 0)
	if err != nil {
		return err
	}

	s.state.fullscreen = fullscreen
	return s.Emit(eventFullscreenChange, map[string]any{"fullscreen": fullscreen})
}

func (s *Simulator) handleControls(ctx context.Context, _ *websocket.Conn, params []json.RawMessage) error {
	controls, err := wsrouter.Param[bool](params, 0)
	if err != nil {
		return err
	}

	s.state.controls = controls
	return s.Emit(eventControlsChange, map[string]any{"controls": controls})
}

func (s *Simulator) handleToggleControls(ctx context.Context, _ *websocket.Conn, _ []json.RawMessage) error {
	s.state.controls = !s.state.controls
	return s.Emit(eventControlsChange, map[string]any{"controls": s.state.controls})
}

func (s *Simulator) handleQuality(ctx context.Context, _ *websocket.Conn, params []json.RawMessage) error {
	quality, err := wsrouter.Param[string](params, 0)
	if err != nil {
		return err
	}

	return s.Emit(eventQualityChange, map[string]any{"quality": quality})
}

func (s *Simulator) handleSubtitle(ctx context.Context, _ *websocket.Conn, params []json.RawMessage) error {
	subtitle, err := wsrouter.Param[string](params, 0)
	if err != nil {
		return err
	}

	return s.Emit(eventSubtitleChange, map[string]any{"subtitle": subtitle})
}
