package provider

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// Value types a parameter can be constrained to.
const (
	KindNumber = "number"
	KindURL    = "url"
)

var numericPattern = regexp.MustCompile(`^[0-9]+$`)

// ParamDef describes one player parameter.
type ParamDef struct {
	Name    string   `json:"name"`
	Default string   `json:"default"`
	Allowed []string `json:"allowed,omitempty"`
	Kind    string   `json:"kind,omitempty"`
}

// Validate checks v against the definition's constraint.
// The empty string means "unset" and is always accepted.
func (d ParamDef) Validate(v string) error {
	if v == "" {
		return nil
	}
	if len(d.Allowed) > 0 && !slices.Contains(d.Allowed, v) {
		return &InvalidParamError{Name: d.Name, Value: v, Reason: "valid: " + strings.Join(d.Allowed, ", ")}
	}
	switch d.Kind {
	case KindNumber:
		if !numericPattern.MatchString(v) {
			return &InvalidParamError{Name: d.Name, Value: v, Reason: "expected a number"}
		}
	case KindURL:
		if err := validateURL(v); err != nil {
			return &InvalidParamError{Name: d.Name, Value: v, Reason: err.Error()}
		}
	}
	return nil
}

// AttrName returns the tag attribute name for the parameter.
func (d ParamDef) AttrName() string {
	return strings.ReplaceAll(d.Name, "-", "_")
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("only http(s) URLs are allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// Param is a parameter value that ends up in the embed URL.
type Param struct {
	Name  string
	Value string
}

func (p Param) String() string {
	return p.Name + "=" + url.QueryEscape(p.Value)
}

// UsedParams applies the merge policy to every definition, in order:
// a non-empty attribute wins, then a non-empty preference that differs from
// the default; anything else is left out so the provider default applies.
// pref may be nil when no preferences are available.
func UsedParams(defs []ParamDef, atts map[string]string, pref func(d ParamDef) string) []Param {
	var used []Param
	for _, d := range defs {
		if att := atts[d.AttrName()]; att != "" {
			used = append(used, Param{Name: d.Name, Value: stripHash(att)})
			continue
		}
		if pref == nil {
			continue
		}
		if v := pref(d); v != "" && v != d.Default {
			used = append(used, Param{Name: d.Name, Value: stripHash(v)})
		}
	}
	return used
}

// CheckParams validates used parameters against their definitions.
func CheckParams(defs []ParamDef, used []Param) error {
	for _, p := range used {
		i := slices.IndexFunc(defs, func(d ParamDef) bool { return d.Name == p.Name })
		if i < 0 {
			continue
		}
		if err := defs[i].Validate(p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Colour values come from colour pickers and carry a leading #.
func stripHash(v string) string {
	return strings.ReplaceAll(v, "#", "")
}
