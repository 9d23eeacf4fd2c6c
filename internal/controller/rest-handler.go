package controller

import (
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sharetube/player-api/internal/player"
	"github.com/sharetube/player-api/pkg/rest"
)

type createPlayer struct {
	ElementID string         `json:"element_id" validate:"max=64"`
	Video     string         `json:"video" validate:"max=64"`
	Width     int            `json:"width" validate:"gte=0,lte=7680"`
	Height    int            `json:"height" validate:"gte=0,lte=4320"`
	Title     string         `json:"title" validate:"max=256"`
	Params    map[string]any `json:"params"`
}

type createPlayerResponse struct {
	ID         string            `json:"id"`
	Src        string            `json:"src"`
	Attributes map[string]string `json:"attributes"`
}

func (c Controller) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayer
	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.InfoContext(r.Context(), "CreatePlayer", "read json err", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.InfoContext(r.Context(), "CreatePlayer", "validate err", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	el := player.NewAttrs(req.ElementID)
	p, err := c.host.NewPlayer(r.Context(), el, &player.Options{
		Video:  req.Video,
		Width:  req.Width,
		Height: req.Height,
		Title:  req.Title,
		Params: req.Params,
	})
	if err != nil {
		c.logger.InfoContext(r.Context(), "CreatePlayer", "new player err", err)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": err.Error()})
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.Envelope{"data": createPlayerResponse{
		ID:         p.ID(),
		Src:        p.Src(),
		Attributes: el.All(),
	}})
}

type playerError struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type playerState struct {
	CurrentTime  *float64     `json:"current_time"`
	BufferedTime *float64     `json:"buffered_time"`
	Duration     *float64     `json:"duration"`
	Seeking      bool         `json:"seeking"`
	Error        *playerError `json:"error"`
	Ended        bool         `json:"ended"`
	Muted        bool         `json:"muted"`
	Volume       *float64     `json:"volume"`
	Paused       bool         `json:"paused"`
	Fullscreen   bool         `json:"fullscreen"`
	Controls     *bool        `json:"controls"`
	Rebuffering  bool         `json:"rebuffering"`
	Qualities    []string     `json:"qualities"`
	Quality      string       `json:"quality"`
	Subtitles    []string     `json:"subtitles"`
	Subtitle     string       `json:"subtitle"`
}

type getPlayerResponse struct {
	ID       string      `json:"id"`
	Src      string      `json:"src"`
	Ready    bool        `json:"ready"`
	Autoplay bool        `json:"autoplay"`
	State    playerState `json:"state"`
}

// number maps NaN and infinities to null, which JSON cannot carry.
func number(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	return &f
}

func newPlayerState(s player.State) playerState {
	view := playerState{
		CurrentTime:  number(s.CurrentTime),
		BufferedTime: number(s.BufferedTime),
		Duration:     number(s.Duration),
		Seeking:      s.Seeking,
		Ended:        s.Ended,
		Muted:        s.Muted,
		Volume:       number(s.Volume),
		Paused:       s.Paused,
		Fullscreen:   s.Fullscreen,
		Controls:     s.Controls,
		Rebuffering:  s.Rebuffering,
		Qualities:    s.Qualities,
		Quality:      s.Quality,
		Subtitles:    s.Subtitles,
		Subtitle:     s.Subtitle,
	}
	if s.Error != nil {
		view.Error = &playerError{Code: s.Error.Code, Title: s.Error.Title, Message: s.Error.Message}
	}

	return view
}

func (c Controller) GetPlayer(w http.ResponseWriter, r *http.Request) {
	p, ok := c.lookupPlayer(w, r)
	if !ok {
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": getPlayerResponse{
		ID:       p.ID(),
		Src:      p.Src(),
		Ready:    p.Ready(),
		Autoplay: p.Autoplay(),
		State:    newPlayerState(p.State()),
	}})
}

type sendCommand struct {
	Command    string `json:"command" validate:"required,max=32"`
	Parameters []any  `json:"parameters"`
}

func (c Controller) SendCommand(w http.ResponseWriter, r *http.Request) {
	p, ok := c.lookupPlayer(w, r)
	if !ok {
		return
	}

	var req sendCommand
	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.InfoContext(r.Context(), "SendCommand", "read json err", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.InfoContext(r.Context(), "SendCommand", "validate err", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	if err := p.API(r.Context(), req.Command, req.Parameters...); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, player.ErrPlayerNotReady) {
			status = http.StatusConflict
		}
		rest.WriteJSON(w, status, rest.Envelope{"error": err.Error()})
		return
	}

	rest.WriteJSON(w, http.StatusAccepted, rest.Envelope{"data": rest.Envelope{"command": req.Command}})
}

func (c Controller) lookupPlayer(w http.ResponseWriter, r *http.Request) (*player.Player, bool) {
	playerID := chi.URLParam(r, "player-id")
	p, err := c.host.Player(playerID)
	if err != nil {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "player not found"})
		return nil, false
	}

	return p, true
}
