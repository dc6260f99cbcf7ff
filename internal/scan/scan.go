// Package scan finds embeddable video links in HTML documents.
// Pages are walked with goquery; nothing found in them is executed or fetched.
package scan

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ouiplayer/internal/provider"
)

// Found is a link recognised as a provider item.
type Found struct {
	Element string         `json:"element"` // "a" or "iframe"
	URL     string         `json:"url"`
	Text    string         `json:"text,omitempty"`
	Match   provider.Match `json:"match"`
}

// Reader parses r and scans it.
func Reader(r io.Reader, reg *provider.Registry) ([]Found, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return Document(doc, reg), nil
}

// Document returns every anchor and iframe whose URL classifies, in document
// order. An item linked several times is reported once.
func Document(doc *goquery.Document, reg *provider.Registry) []Found {
	var found []Found
	seen := make(map[provider.Match]bool)

	doc.Find("a[href], iframe[src]").Each(func(_ int, s *goquery.Selection) {
		el := goquery.NodeName(s)
		attr := "href"
		if el == "iframe" {
			attr = "src"
		}
		link := strings.TrimSpace(s.AttrOr(attr, ""))
		if link == "" {
			return
		}

		m, ok := reg.Classify(link)
		if !ok || seen[m] {
			return
		}
		seen[m] = true

		found = append(found, Found{
			Element: el,
			URL:     link,
			Text:    strings.Join(strings.Fields(s.Text()), " "),
			Match:   m,
		})
	})

	return found
}

// FormatDisplay renders a result as a tab-separated line.
func FormatDisplay(f Found) string {
	return strings.Join([]string{f.Match.Provider, f.Match.Type, f.Match.ID, f.URL}, "\t")
}
