package player

import (
	"golang.org/x/exp/maps"
)

const (
	DefaultWidth  = 480
	DefaultHeight = 270
	DefaultTitle  = "video player"
)

// Element is the frame-hosting element a player is attached to. Creating
// and rendering it is left to the caller.
type Element interface {
	Attribute(name string) string
	SetAttribute(name, value string)
}

// Options configure a new player. Zero Width, Height and Title take the
// defaults.
type Options struct {
	// Video is the content id loaded first. Empty embeds the bare player.
	Video  string              `json:"video" validate:"excludesall=/?#"`
	Width  int                 `json:"width" validate:"gte=0"`
	Height int                 `json:"height" validate:"gte=0"`
	Title  string              `json:"title" validate:"max=256"`
	Params map[string]any      `json:"params"`
	Events map[string]Listener `json:"-"`
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}

	params := make(map[string]any, len(o.Params))
	maps.Copy(params, o.Params)
	o.Params = params

	if o.Events == nil {
		o.Events = map[string]Listener{}
	}

	return o
}

// Attrs is a map backed Element for callers without a document model.
type Attrs struct {
	values map[string]string
}

func NewAttrs(id string) *Attrs {
	a := &Attrs{values: make(map[string]string)}
	if id != "" {
		a.values["id"] = id
	}

	return a
}

func (a *Attrs) Attribute(name string) string {
	return a.values[name]
}

func (a *Attrs) SetAttribute(name, value string) {
	a.values[name] = value
}

// All returns a copy of every attribute set so far.
func (a *Attrs) All() map[string]string {
	return maps.Clone(a.values)
}
