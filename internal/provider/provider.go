// Package provider defines video providers, the registry that classifies
// URLs against them, and the rules for building their embed URLs.
package provider

import (
	"regexp"
	"strings"
)

// Match types.
const (
	TypeVideo = "video"
	TypeList  = "list"
)

// Provider is the interface that video providers must implement.
type Provider interface {
	// Name returns the lower-case provider name.
	Name() string

	// Patterns returns the URL patterns in the order they are tried.
	Patterns() []Pattern

	// Params returns the player base URL and its parameter definitions.
	Params() EmbedParams

	// Match extracts the item id from a URL.
	Match(input string) (Match, bool)

	// EmbedURL appends the id and the used parameters to the base URL.
	EmbedURL(id string, used []Param) string
}

// Match is a URL recognised as belonging to a provider.
type Match struct {
	Provider string `json:"provider"`
	ID       string `json:"id"`
	Type     string `json:"type"`
}

// Pattern recognises one URL shape of a provider.
type Pattern struct {
	Re     *regexp.Regexp
	Group  int    // capture group holding the id
	Prefix string // prepended to the captured id, e.g. "list="
	Type   string
}

// EmbedParams is what a provider exposes to build a player.
type EmbedParams struct {
	Src    string
	Params []ParamDef
}

// base carries the data shared by every provider; behaviour that differs
// (YouTube's join token) is overridden by the embedding type.
type base struct {
	name     string
	patterns []Pattern
	src      string
	glue     []string
	params   []ParamDef
}

func (b *base) Name() string        { return b.name }
func (b *base) Patterns() []Pattern { return b.patterns }

func (b *base) Params() EmbedParams {
	defs := make([]ParamDef, len(b.params))
	copy(defs, b.params)
	return EmbedParams{Src: b.src, Params: defs}
}

func (b *base) Match(input string) (Match, bool) {
	for _, p := range b.patterns {
		m := p.Re.FindStringSubmatch(input)
		if m == nil || p.Group >= len(m) || m[p.Group] == "" {
			continue
		}
		typ := p.Type
		if typ == "" {
			typ = TypeVideo
		}
		return Match{Provider: b.name, ID: p.Prefix + m[p.Group], Type: typ}, true
	}
	return Match{}, false
}

func (b *base) EmbedURL(id string, used []Param) string {
	return appendParams(b.src+id, used, b.glue)
}

// appendParams joins used parameters onto src. The first glue token not
// already present in src opens the query string; the last one separates
// parameters.
func appendParams(src string, used []Param, glue []string) string {
	if len(used) == 0 {
		return src
	}

	open := glue[len(glue)-1]
	for _, g := range glue[:len(glue)-1] {
		if !strings.Contains(src, g) {
			open = g
			break
		}
	}

	pairs := make([]string, len(used))
	for i, p := range used {
		pairs[i] = p.String()
	}
	return src + open + strings.Join(pairs, glue[len(glue)-1])
}

// NormalizeName trims and lower-cases a provider name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
