package player

import "context"

// Command names understood by the embedded player.
const (
	CommandPlay           = "play"
	CommandTogglePlay     = "toggle-play"
	CommandPause          = "pause"
	CommandSeek           = "seek"
	CommandLoad           = "load"
	CommandMuted          = "muted"
	CommandToggleMuted    = "toggle-muted"
	CommandVolume         = "volume"
	CommandQuality        = "quality"
	CommandSubtitle       = "subtitle"
	CommandFullscreen     = "fullscreen"
	CommandControls       = "controls"
	CommandToggleControls = "toggle-controls"
	CommandSetProp        = "set-prop"
	CommandWatchOnSite    = "watch-on-site"
)

// API sends command with any parameters. Until the player is ready the
// command is dropped and ErrPlayerNotReady returned; a nil error only means
// the command was handed to the channel.
func (p *Player) API(ctx context.Context, command string, params ...any) error {
	return p.host.send(ctx, p, command, params)
}

func (p *Player) Play(ctx context.Context) error {
	return p.API(ctx, CommandPlay)
}

func (p *Player) TogglePlay(ctx context.Context) error {
	return p.API(ctx, CommandTogglePlay)
}

func (p *Player) Pause(ctx context.Context) error {
	return p.API(ctx, CommandPause)
}

// Seek moves playback to seconds.
func (p *Player) Seek(ctx context.Context, seconds float64) error {
	return p.API(ctx, CommandSeek, seconds)
}

// Load replaces the current content. Both parameters are always sent, a
// nil settings map goes out as null.
func (p *Player) Load(ctx context.Context, video string, settings map[string]any) error {
	return p.API(ctx, CommandLoad, video, settings)
}

func (p *Player) SetMuted(ctx context.Context, muted bool) error {
	return p.API(ctx, CommandMuted, muted)
}

func (p *Player) ToggleMuted(ctx context.Context) error {
	return p.API(ctx, CommandToggleMuted)
}

// SetVolume takes a level between 0 and 1.
func (p *Player) SetVolume(ctx context.Context, volume float64) error {
	return p.API(ctx, CommandVolume, volume)
}

func (p *Player) SetQuality(ctx context.Context, quality string) error {
	return p.API(ctx, CommandQuality, quality)
}

func (p *Player) SetSubtitle(ctx context.Context, subtitle string) error {
	return p.API(ctx, CommandSubtitle, subtitle)
}

func (p *Player) SetFullscreen(ctx context.Context, fullscreen bool) error {
	return p.API(ctx, CommandFullscreen, fullscreen)
}

func (p *Player) SetControls(ctx context.Context, controls bool) error {
	return p.API(ctx, CommandControls, controls)
}

func (p *Player) ToggleControls(ctx context.Context) error {
	return p.API(ctx, CommandToggleControls)
}

// SetProp forwards args unchanged, usually a property name then its value.
func (p *Player) SetProp(ctx context.Context, args ...any) error {
	return p.API(ctx, CommandSetProp, args...)
}

func (p *Player) WatchOnSite(ctx context.Context) error {
	return p.API(ctx, CommandWatchOnSite)
}
