package inspect

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// metaRobotsNoindex reports whether the document carries a
// <meta name="robots" content="...noindex..."> tag. Parsing the HTML (rather
// than pattern matching the raw bytes) keeps attribute order, quoting style
// and case irrelevant.
func metaRobotsNoindex(body []byte) bool {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		// Not parseable as HTML; no meta signal.
		return false
	}

	var found bool
	var walker func(*html.Node)
	walker = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" && metaIsRobotsNoindex(n) {
			found = true
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walker(c)
		}
	}
	walker(doc)
	return found
}

func metaIsRobotsNoindex(n *html.Node) bool {
	var name, content string
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "name":
			name = strings.ToLower(strings.TrimSpace(attr.Val))
		case "content":
			content = strings.ToLower(attr.Val)
		}
	}
	return name == "robots" && strings.Contains(content, "noindex")
}
