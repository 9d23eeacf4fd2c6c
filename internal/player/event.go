package player

import "github.com/sharetube/player-api/pkg/qs"

// Event names emitted by embedded players. Listeners subscribe with these or
// with any other token the remote end emits.
const (
	EventAPIReady           = "apiready"
	EventStart              = "start"
	EventLoadedMetadata     = "loadedmetadata"
	EventTimeUpdate         = "timeupdate"
	EventAdTimeUpdate       = "ad_timeupdate"
	EventProgress           = "progress"
	EventDurationChange     = "durationchange"
	EventSeeking            = "seeking"
	EventSeeked             = "seeked"
	EventFullscreenChange   = "fullscreenchange"
	EventControlsChange     = "controlschange"
	EventVolumeChange       = "volumechange"
	EventVideoStart         = "video_start"
	EventAdStart            = "ad_start"
	EventAdPlay             = "ad_play"
	EventPlaying            = "playing"
	EventPlay               = "play"
	EventEnd                = "end"
	EventAdPause            = "ad_pause"
	EventAdEnd              = "ad_end"
	EventVideoEnd           = "video_end"
	EventPause              = "pause"
	EventError              = "error"
	EventRebuffer           = "rebuffer"
	EventQualitiesAvailable = "qualitiesavailable"
	EventQualityChange      = "qualitychange"
	EventSubtitlesAvailable = "subtitlesavailable"
	EventSubtitleChange     = "subtitlechange"
	EventUnload             = "unload"
)

// EventKind groups wire tokens that have the same effect on a player.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindAPIReady
	KindStart
	KindLoadedMetadata
	KindTimeUpdate
	KindProgress
	KindDurationChange
	KindSeeking
	KindSeeked
	KindFullscreenChange
	KindControlsChange
	KindVolumeChange
	KindPlaying
	KindEnd
	KindPaused
	KindError
	KindRebuffer
	KindQualitiesAvailable
	KindQualityChange
	KindSubtitlesAvailable
	KindSubtitleChange
	KindUnload
)

var eventKinds = map[string]EventKind{
	EventAPIReady:           KindAPIReady,
	EventStart:              KindStart,
	EventLoadedMetadata:     KindLoadedMetadata,
	EventTimeUpdate:         KindTimeUpdate,
	EventAdTimeUpdate:       KindTimeUpdate,
	EventProgress:           KindProgress,
	EventDurationChange:     KindDurationChange,
	EventSeeking:            KindSeeking,
	EventSeeked:             KindSeeked,
	EventFullscreenChange:   KindFullscreenChange,
	EventControlsChange:     KindControlsChange,
	EventVolumeChange:       KindVolumeChange,
	EventVideoStart:         KindPlaying,
	EventAdStart:            KindPlaying,
	EventAdPlay:             KindPlaying,
	EventPlaying:            KindPlaying,
	EventPlay:               KindPlaying,
	EventEnd:                KindEnd,
	EventAdPause:            KindPaused,
	EventAdEnd:              KindPaused,
	EventVideoEnd:           KindPaused,
	EventPause:              KindPaused,
	EventError:              KindError,
	EventRebuffer:           KindRebuffer,
	EventQualitiesAvailable: KindQualitiesAvailable,
	EventQualityChange:      KindQualityChange,
	EventSubtitlesAvailable: KindSubtitlesAvailable,
	EventSubtitleChange:     KindSubtitleChange,
	EventUnload:             KindUnload,
}

// KindOf returns the kind of a wire token, KindUnknown for unlisted names.
func KindOf(name string) EventKind {
	return eventKinds[name]
}

// InboundEvent is one decoded message addressed to a player.
type InboundEvent struct {
	ID     string
	Name   string
	Kind   EventKind
	Fields qs.Values
}

// NewInboundEvent builds the event carried by decoded message fields.
func NewInboundEvent(fields qs.Values) InboundEvent {
	name := fields.Get("event")
	return InboundEvent{
		ID:     fields.Get("id"),
		Name:   name,
		Kind:   KindOf(name),
		Fields: fields,
	}
}
