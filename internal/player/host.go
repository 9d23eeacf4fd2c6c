package player

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sharetube/player-api/internal/repository/state"
	"github.com/sharetube/player-api/internal/transport"
	"github.com/sharetube/player-api/pkg/ctxlogger"
	"github.com/sharetube/player-api/pkg/qs"
	"github.com/sharetube/player-api/pkg/validator"
)

const (
	APIModePostMessage = "postMessage"
	DefaultDomain      = "//www.dailymotion.com"
	defaultProtocol    = "http:"
	// forwardedParamsKey is the page query key whose value is itself a query
	// string of embed parameters.
	forwardedParamsKey = "dm:params"
)

var schemeRe = regexp.MustCompile(`^https?:`)

type iChannel interface {
	PostMessage(ctx context.Context, window string, data []byte, targetOrigin string) error
	Subscribe(handler transport.Handler)
}

type iRegistry interface {
	Add(id string, p *Player)
	Get(id string) (*Player, error)
	Remove(id string) error
}

// StateMirror receives a copy of a player's state after every event.
type StateMirror interface {
	SetState(ctx context.Context, params *state.SetStateParams) error
	RemoveState(ctx context.Context, playerID string) error
}

type Config struct {
	// Domain of the embed endpoint, with or without scheme.
	Domain string
	// PageURL is the URL of the page hosting the players. Its scheme picks
	// the protocol, its origin is announced to the frames and its query may
	// forward embed parameters.
	PageURL string
	APIKey  string
}

// Envelope is the outbound wire format of a command.
type Envelope struct {
	Command    string `json:"command"`
	Parameters []any  `json:"parameters"`
}

// Host owns everything shared by the players of one page: the channel and
// its single inbound handler, the instance registry and the embed settings.
type Host struct {
	channel   iChannel
	registry  iRegistry
	stateRepo StateMirror
	validate  *validator.Validator
	logger    *slog.Logger

	protocol   string
	domain     string
	pageOrigin string
	pageQuery  string
	apiKey     string

	installOnce sync.Once
	apiMode     string
	// mu serialises inbound handling across connections.
	mu sync.Mutex
}

// NewHost builds a Host. stateRepo may be nil.
func NewHost(channel iChannel, registry iRegistry, stateRepo StateMirror, cfg *Config, logger *slog.Logger) (*Host, error) {
	h := &Host{
		channel:    channel,
		registry:   registry,
		stateRepo:  stateRepo,
		validate:   validator.NewValidator(),
		logger:     logger,
		protocol:   defaultProtocol,
		domain:     normalizeDomain(cfg.Domain),
		pageOrigin: transport.Wildcard,
		apiKey:     cfg.APIKey,
	}

	if cfg.PageURL != "" {
		page, err := url.Parse(cfg.PageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page url: %w", err)
		}

		if page.Scheme == "http" || page.Scheme == "https" {
			h.protocol = page.Scheme + ":"
		}
		if page.Scheme != "" && page.Host != "" {
			h.pageOrigin = page.Scheme + "://" + page.Host
		}
		h.pageQuery = page.RawQuery
	}

	return h, nil
}

func normalizeDomain(domain string) string {
	if domain == "" {
		return DefaultDomain
	}

	domain = schemeRe.ReplaceAllString(domain, "")
	if !strings.HasPrefix(domain, "//") {
		domain = "//" + domain
	}

	return strings.TrimSuffix(domain, "/")
}

// Origin is the origin the frames are expected to live on. Inbound messages
// must come from it and outbound commands are scoped to it.
func (h *Host) Origin() string {
	return h.protocol + h.domain
}

// APIMode is empty until the first player has been created.
func (h *Host) APIMode() string {
	return h.apiMode
}

func (h *Host) install() {
	h.installOnce.Do(func() {
		h.apiMode = APIModePostMessage
		h.channel.Subscribe(h.HandleMessage)
		h.logger.Debug("inbound handler installed", "origin", h.Origin())
	})
}

// Player returns the live player registered under id.
func (h *Host) Player(id string) (*Player, error) {
	p, err := h.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}

	return p, nil
}

// NewPlayer attaches a player to el and returns it. Configuration problems
// are returned before anything is registered.
func (h *Host) NewPlayer(ctx context.Context, el Element, opts *Options) (*Player, error) {
	if el == nil {
		return nil, ErrInvalidElement
	}
	if opts == nil {
		return nil, ErrMissingOptions
	}

	o := opts.withDefaults()
	if err := h.validate.Check(o); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	params := h.forwardedParams()
	for key, value := range o.Params {
		if _, ok := params[key]; !ok {
			params[key] = value
		}
	}

	el.SetAttribute("frameborder", "0")
	el.SetAttribute("allowfullscreen", "true")
	el.SetAttribute("webkitallowfullscreen", "true")
	el.SetAttribute("mozallowfullscreen", "true")
	el.SetAttribute("width", strconv.Itoa(o.Width))
	el.SetAttribute("height", strconv.Itoa(o.Height))
	el.SetAttribute("title", o.Title)

	h.install()

	p := h.initPlayer(el, o.Video, params)
	for name, l := range o.Events {
		p.AddListener(name, l)
	}

	h.logger.InfoContext(ctx, "player created", "player_id", p.id, "src", p.src)
	return p, nil
}

// forwardedParams decodes embed parameters the page received in its own
// query string under forwardedParamsKey.
func (h *Host) forwardedParams() map[string]any {
	params := make(map[string]any)
	if !strings.Contains(h.pageQuery, forwardedParamsKey) {
		return params
	}

	page := qs.Decode(h.pageQuery)
	if !page.Has(forwardedParamsKey) {
		return params
	}

	for key, value := range qs.Decode(page.Get(forwardedParamsKey)).Map() {
		params[key] = value
	}

	return params
}

func (h *Host) initPlayer(el Element, video string, params map[string]any) *Player {
	params["api"] = h.apiMode
	params["origin"] = h.pageOrigin
	if h.apiKey != "" {
		params["apiKey"] = h.apiKey
	}

	id := el.Attribute("id")
	if id == "" {
		id = generateID()
		el.SetAttribute("id", id)
	}
	params["id"] = id

	src := h.Origin() + "/embed"
	if video != "" {
		src += "/video/" + video
	}
	src += "?" + qs.Encode(qs.Flatten(params))
	el.SetAttribute("src", src)

	p := newPlayer(h, id, src, h.logger)
	p.autoplay = parseBoolValue(params["autoplay"])

	h.registry.Add(id, p)
	return p
}

func generateID() string {
	return "f" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// HandleMessage is the single inbound handler of the channel. Messages from
// foreign origins, without id or event, or for unknown players are dropped.
func (h *Host) HandleMessage(ctx context.Context, msg transport.Message) {
	if msg.Origin == "" || !strings.HasPrefix(msg.Origin, h.Origin()) {
		return
	}

	ev := NewInboundEvent(qs.Decode(msg.Data))
	if ev.ID == "" || ev.Name == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.registry.Get(ev.ID)
	if err != nil {
		h.logger.DebugContext(ctx, "message for unknown player dropped", "player_id", ev.ID, "event", ev.Name)
		return
	}

	ctx = ctxlogger.AppendCtx(ctx, slog.String("player_id", ev.ID))
	p.receive(ctx, ev)
}

// send is the readiness gate: commands of a player that is not ready are
// dropped, never queued.
func (h *Host) send(ctx context.Context, p *Player, command string, params []any) error {
	if !p.Ready() {
		h.logger.WarnContext(ctx, "player not ready, ignoring command", "player_id", p.id, "command", command)
		return fmt.Errorf("%w: ignoring command %q", ErrPlayerNotReady, command)
	}

	if h.apiMode != APIModePostMessage {
		return nil
	}

	if params == nil {
		params = []any{}
	}

	data, err := json.Marshal(Envelope{Command: command, Parameters: params})
	if err != nil {
		return fmt.Errorf("failed to encode command %q: %w", command, err)
	}

	if err := h.channel.PostMessage(ctx, p.id, data, h.Origin()); err != nil {
		h.logger.WarnContext(ctx, "failed to post command", "player_id", p.id, "command", command, "err", err)
		return fmt.Errorf("failed to post command %q: %w", command, err)
	}

	h.logger.DebugContext(ctx, "command posted", "player_id", p.id, "command", command)
	return nil
}

func (h *Host) unregister(ctx context.Context, p *Player) {
	if current, err := h.registry.Get(p.id); err != nil || current != p {
		return
	}

	if err := h.registry.Remove(p.id); err != nil {
		h.logger.DebugContext(ctx, "failed to unregister player", "err", err)
	}

	if h.stateRepo == nil {
		return
	}
	if err := h.stateRepo.RemoveState(ctx, p.id); err != nil {
		h.logger.DebugContext(ctx, "failed to remove mirrored state", "err", err)
	}
}

func (h *Host) mirrorState(ctx context.Context, p *Player, event string) {
	if h.stateRepo == nil {
		return
	}

	s := p.State()
	params := state.SetStateParams{
		PlayerID:     p.id,
		Ready:        p.Ready(),
		CurrentTime:  s.CurrentTime,
		BufferedTime: s.BufferedTime,
		Duration:     s.Duration,
		Seeking:      s.Seeking,
		Ended:        s.Ended,
		Muted:        s.Muted,
		Volume:       s.Volume,
		Paused:       s.Paused,
		Fullscreen:   s.Fullscreen,
		Controls:     s.Controls,
		Rebuffering:  s.Rebuffering,
		Qualities:    s.Qualities,
		Quality:      s.Quality,
		Subtitles:    s.Subtitles,
		Subtitle:     s.Subtitle,
		LastEvent:    event,
		UpdatedAt:    time.Now().Unix(),
	}
	if s.Error != nil {
		params.ErrorCode = s.Error.Code
		params.ErrorTitle = s.Error.Title
		params.ErrorMessage = s.Error.Message
	}

	if err := h.stateRepo.SetState(ctx, &params); err != nil {
		h.logger.WarnContext(ctx, "failed to mirror state", "event", event, "err", err)
	}
}
