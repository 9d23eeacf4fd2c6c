package player

import "github.com/sharetube/player-api/pkg/qs"

type transition func(s *State, f qs.Values)

// transitions holds the state effect of each kind. Kinds without an entry,
// including KindUnknown, leave the state untouched. KindAPIReady and
// KindUnload act on the player itself, not on its state.
var transitions = map[EventKind]transition{
	KindStart: func(s *State, _ qs.Values) {
		s.Ended = false
	},
	KindLoadedMetadata: func(s *State, _ qs.Values) {
		s.Error = nil
	},
	KindTimeUpdate: func(s *State, f qs.Values) {
		s.CurrentTime = parseNumber(f.Get("time"))
	},
	KindProgress: func(s *State, f qs.Values) {
		s.BufferedTime = parseNumber(f.Get("time"))
	},
	KindDurationChange: func(s *State, f qs.Values) {
		s.Duration = parseNumber(f.Get("duration"))
	},
	KindSeeking: func(s *State, f qs.Values) {
		s.Seeking = true
		s.CurrentTime = parseNumber(f.Get("time"))
	},
	KindSeeked: func(s *State, f qs.Values) {
		s.Seeking = false
		s.CurrentTime = parseNumber(f.Get("time"))
	},
	KindFullscreenChange: func(s *State, f qs.Values) {
		s.Fullscreen = parseBool(f.Get("fullscreen"))
	},
	KindControlsChange: func(s *State, f qs.Values) {
		controls := parseBool(f.Get("controls"))
		s.Controls = &controls
	},
	KindVolumeChange: func(s *State, f qs.Values) {
		s.Volume = parseNumber(f.Get("volume"))
		s.Muted = parseBool(f.Get("muted"))
	},
	KindPlaying: func(s *State, _ qs.Values) {
		s.Paused = false
	},
	KindEnd: func(s *State, _ qs.Values) {
		s.Ended = true
	},
	KindPaused: func(s *State, _ qs.Values) {
		s.Paused = true
	},
	KindError: func(s *State, f qs.Values) {
		s.Error = &Error{
			Code:    f.Get("code"),
			Title:   f.Get("title"),
			Message: f.Get("message"),
		}
	},
	KindRebuffer: func(s *State, f qs.Values) {
		s.Rebuffering = parseBool(f.Get("rebuffering"))
	},
	KindQualitiesAvailable: func(s *State, f qs.Values) {
		s.Qualities = f.List("qualities")
	},
	KindQualityChange: func(s *State, f qs.Values) {
		s.Quality = f.Get("quality")
	},
	KindSubtitlesAvailable: func(s *State, f qs.Values) {
		s.Subtitles = f.List("subtitles")
	},
	KindSubtitleChange: func(s *State, f qs.Values) {
		s.Subtitle = f.Get("subtitle")
	},
}

// Reduce returns the state that results from applying ev to s. s is not
// modified.
func Reduce(s State, ev InboundEvent) State {
	t, ok := transitions[ev.Kind]
	if !ok {
		return s
	}

	next := s.clone()
	t(&next, ev.Fields)

	return next
}
