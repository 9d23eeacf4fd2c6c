package player

import (
	"math"

	"golang.org/x/exp/slices"
)

// Error is the last error reported by the remote player.
type Error struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// State mirrors the remote player. Controls is nil until the player reports
// it; Quality and Subtitle are empty until reported.
type State struct {
	CurrentTime  float64
	BufferedTime float64
	Duration     float64
	Seeking      bool
	Error        *Error
	Ended        bool
	Muted        bool
	Volume       float64
	Paused       bool
	Fullscreen   bool
	Controls     *bool
	Rebuffering  bool
	Qualities    []string
	Quality      string
	Subtitles    []string
	Subtitle     string
}

func DefaultState() State {
	return State{
		Duration:  math.NaN(),
		Volume:    1,
		Paused:    true,
		Qualities: []string{},
		Subtitles: []string{},
	}
}

func (s State) clone() State {
	c := s
	if s.Error != nil {
		e := *s.Error
		c.Error = &e
	}
	if s.Controls != nil {
		v := *s.Controls
		c.Controls = &v
	}
	c.Qualities = slices.Clone(s.Qualities)
	c.Subtitles = slices.Clone(s.Subtitles)

	return c
}
