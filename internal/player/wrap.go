package player

import (
	"errors"
	"fmt"
	"html"
	"regexp"
)

// ErrInvalidTag is returned for labeltag or wraptag values that are not
// plain element names.
var ErrInvalidTag = errors.New("invalid tag name")

var tagNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

// wrap adds the optional label and wrapping element around the player.
func wrap(out string, atts map[string]string) (string, error) {
	label, err := doLabel(atts["label"], atts["labeltag"])
	if err != nil {
		return "", err
	}
	if wraptag := atts["wraptag"]; wraptag != "" {
		out, err = doTag(out, wraptag, atts["class"])
		if err != nil {
			return "", err
		}
	}
	return label + out, nil
}

func doLabel(label, labeltag string) (string, error) {
	if label == "" {
		return "", nil
	}
	label = html.EscapeString(label)
	if labeltag == "" {
		return label + "<br />", nil
	}
	return doTag(label, labeltag, "")
}

func doTag(content, tag, class string) (string, error) {
	if !tagNamePattern.MatchString(tag) {
		return "", fmt.Errorf("%w %q", ErrInvalidTag, tag)
	}
	if class == "" {
		return fmt.Sprintf("<%s>%s</%s>", tag, content, tag), nil
	}
	return fmt.Sprintf(`<%s class="%s">%s</%s>`, tag, html.EscapeString(class), content, tag), nil
}
