package provider

import (
	"regexp"
	"strings"
)

const youtubeListPrefix = "list="

// YouTube embeds videos and playlists through the privacy-enhanced domain.
type YouTube struct {
	base
}

// ensure YouTube implements Provider
var _ Provider = (*YouTube)(nil)

// NewYouTube creates the YouTube provider.
func NewYouTube() Provider {
	return &YouTube{base{
		name: "youtube",
		// Videos first: a watch URL carrying a list plays its video.
		patterns: []Pattern{
			{
				Re:    regexp.MustCompile(`(?i)^(?:https?:)?//(?:www\.|m\.)?(?:youtube(?:-nocookie)?\.com/(?:watch\?v=|embed/|v/|shorts/)|youtu\.be/)([^&?/#]+)`),
				Group: 1,
				Type:  TypeVideo,
			},
			{
				Re:     regexp.MustCompile(`(?i)^(?:https?:)?//(?:www\.|m\.)?(?:youtube(?:-nocookie)?\.com/(?:watch\?v=|embed/|embed\?|v/|playlist\?)|youtu\.be/)\S*list=([^&?/#]+)`),
				Group:  1,
				Prefix: youtubeListPrefix,
				Type:   TypeList,
			},
		},
		src:  "//www.youtube-nocookie.com/",
		glue: []string{"?", "&"},
		params: []ParamDef{
			{Name: "autohide", Default: "2", Allowed: []string{"0", "1", "2"}},
			{Name: "autoplay", Default: "0", Allowed: []string{"0", "1"}},
			{Name: "cc_load_policy", Default: "1", Allowed: []string{"0", "1"}},
			{Name: "color", Default: "red", Allowed: []string{"red", "white"}},
			{Name: "controls", Default: "1", Allowed: []string{"0", "1", "2"}},
			{Name: "disablekb", Default: "0", Allowed: []string{"0", "1"}},
			{Name: "enablejsapi", Default: "0", Allowed: []string{"0", "1"}},
			{Name: "end", Kind: KindNumber},
			{Name: "fs", Default: "1", Allowed: []string{"0", "1"}},
			{Name: "hl"},
			{Name: "iv_load_policy", Default: "1", Allowed: []string{"1", "3"}},
			{Name: "list"},
			{Name: "listType", Allowed: []string{"playlist", "search", "user_uploads"}},
			{Name: "loop", Default: "0", Allowed: []string{"0", "1"}},
			{Name: "modestbranding", Default: "0", Allowed: []string{"0", "1"}},
			{Name: "origin", Kind: KindURL},
			{Name: "playlist"},
			{Name: "playsinline", Default: "0", Allowed: []string{"0", "1"}},
			{Name: "rel", Default: "1", Allowed: []string{"0", "1"}},
			{Name: "start", Default: "0", Kind: KindNumber},
			{Name: "showinfo", Default: "1", Allowed: []string{"0", "1"}},
			{Name: "theme", Default: "dark", Allowed: []string{"dark", "light"}},
		},
	}}
}

// EmbedURL joins playlists with "embed?" and videos with "embed/".
func (y *YouTube) EmbedURL(id string, used []Param) string {
	join := "embed/"
	if IsList(id) {
		join = "embed?"
	}
	return appendParams(y.src+join+id, used, y.glue)
}

// IsList reports whether a YouTube id refers to a playlist.
func IsList(id string) bool {
	return strings.HasPrefix(id, youtubeListPrefix)
}
