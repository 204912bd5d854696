package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces a response exported off a web form to its visible text.
// Markup-free input is returned as-is; script, style, noscript, and iframe
// subtrees are skipped. If the fragment cannot be parsed the original text
// is returned unchanged.
func StripHTML(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(t)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String()
}
