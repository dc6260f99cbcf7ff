// Package player resolves what to play from tag attributes, article fields
// and preferences, and renders the embedded player.
package player

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"ouiplayer/internal/embed"
	"ouiplayer/internal/prefs"
	"ouiplayer/internal/provider"
)

// ErrNothingToPlay is returned when neither the play attribute nor the
// custom field preference yields an item.
var ErrNothingToPlay = errors.New("nothing to play")

// Request carries one tag invocation.
type Request struct {
	// Atts maps tag attribute names to values.
	Atts map[string]string
	// Fields holds the current article's custom fields, keyed by lower-case name.
	Fields map[string]string
}

// Player renders embeds for a registry, reading defaults from a preference store.
type Player struct {
	reg    *provider.Registry
	prefs  prefs.Store
	strict bool
	logger hclog.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithStrict rejects parameter values outside their constraints.
func WithStrict(strict bool) Option {
	return func(p *Player) { p.strict = strict }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger hclog.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Player. store may be nil, in which case every preference
// takes its built-in default.
func New(reg *provider.Registry, store prefs.Store, opts ...Option) *Player {
	p := &Player{
		reg:    reg,
		prefs:  store,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Match classifies the item a request points at, without rendering.
func (p *Player) Match(req Request) (provider.Match, bool, error) {
	play := p.play(req)
	if play == "" {
		return provider.Match{}, false, ErrNothingToPlay
	}
	return p.classify(play, req.Atts["provider"])
}

// Embed renders the player for a request.
func (p *Player) Embed(req Request) (string, error) {
	play := p.play(req)
	if play == "" {
		return "", ErrNothingToPlay
	}

	explicit := req.Atts["provider"]
	m, ok, err := p.classify(play, explicit)
	if err != nil {
		return "", err
	}

	name, id := m.Provider, m.ID
	if !ok {
		name = explicit
		if name == "" {
			name = prefs.Lookup(p.prefs, prefs.ProviderKey, prefs.DefaultProvider)
		}
		id = play
		p.logger.Debug("no provider match, using raw id", "play", play, "provider", name)
	} else {
		p.logger.Debug("classified", "play", play, "provider", name, "id", id, "type", m.Type)
	}

	prov, err := p.reg.Get(name)
	if err != nil {
		return "", err
	}

	ep := prov.Params()
	used := provider.UsedParams(ep.Params, req.Atts, func(d provider.ParamDef) string {
		return prefs.Lookup(p.prefs, prefs.Key(prov.Name(), d.Name), d.Default)
	})
	if p.strict {
		if err := provider.CheckParams(ep.Params, used); err != nil {
			return "", fmt.Errorf("%s: %w", prov.Name(), err)
		}
	}

	src := prov.EmbedURL(id, used)
	out := embed.Render(src, p.dimensions(prov.Name(), req.Atts))

	return wrap(out, req.Atts)
}

// play returns the item to play: the play attribute, which may name an
// article field, else the article field named by the custom field preference.
func (p *Player) play(req Request) string {
	play := strings.TrimSpace(req.Atts["play"])
	if play == "" {
		field := strings.ToLower(prefs.Lookup(p.prefs, prefs.CustomFieldKey, prefs.DefaultCustomField))
		return strings.TrimSpace(req.Fields[field])
	}
	if v, ok := req.Fields[play]; ok {
		play = strings.TrimSpace(v)
	}
	return play
}

func (p *Player) classify(play, explicit string) (provider.Match, bool, error) {
	if explicit == "" {
		m, ok := p.reg.Classify(play)
		return m, ok, nil
	}

	prov, err := p.reg.Get(explicit)
	if err != nil {
		return provider.Match{}, false, err
	}
	m, ok := prov.Match(play)
	return m, ok, nil
}

// dimensions reads width, height and ratio from attributes, falling back
// to the provider's size preferences.
func (p *Player) dimensions(name string, atts map[string]string) embed.Dimensions {
	get := func(key string) string {
		if v := strings.TrimSpace(atts[key]); v != "" {
			return v
		}
		return prefs.Lookup(p.prefs, prefs.Key(name, key), prefs.DimensionDefault(key))
	}
	return embed.Dimensions{
		Width:  parseDim(get("width")),
		Height: parseDim(get("height")),
		Ratio:  get("ratio"),
	}
}

// parseDim reads a pixel size; "640px" is accepted, garbage and sizes
// above embed.MaxDimension count as unset.
func parseDim(v string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if err != nil || n < 0 || n > embed.MaxDimension {
		return 0
	}
	return n
}
