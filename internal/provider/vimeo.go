package provider

import "regexp"

// Vimeo embeds videos through player.vimeo.com.
type Vimeo struct {
	base
}

// NewVimeo creates the Vimeo provider.
func NewVimeo() Provider {
	return &Vimeo{base{
		name: "vimeo",
		patterns: []Pattern{
			{
				Re:    regexp.MustCompile(`(?i)^(?:https?:)?//(?:player\.vimeo\.com/video|(?:www\.)?vimeo\.com)/(\d+)(?:[/?#].*)?$`),
				Group: 1,
				Type:  TypeVideo,
			},
		},
		src:  "//player.vimeo.com/video/",
		glue: []string{"?", "&"},
		params: []ParamDef{
			{Name: "autopause", Default: "1", Allowed: []string{"0", "1"}},
			{Name: "autoplay", Default: "0", Allowed: []string{"0", "1"}},
			{Name: "badge", Default: "1", Allowed: []string{"0", "1"}},
			{Name: "byline", Default: "1", Allowed: []string{"0", "1"}},
			{Name: "color", Default: "#00adef"},
			{Name: "loop", Default: "0", Allowed: []string{"0", "1"}},
			{Name: "player_id"},
			{Name: "portrait", Default: "1", Allowed: []string{"0", "1"}},
			{Name: "title", Default: "1", Allowed: []string{"0", "1"}},
		},
	}}
}
