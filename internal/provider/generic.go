package provider

// Generic is the fallback provider: it never claims a URL during
// classification and uses the id verbatim as the player source.
type Generic struct {
	base
}

// NewGeneric creates the fallback provider.
func NewGeneric() Provider {
	return &Generic{base{
		name: "generic",
		glue: []string{"?", "&"},
	}}
}

func (g *Generic) Match(string) (Match, bool) {
	return Match{}, false
}
