package web

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Extracted is the plain-text projection of one fetched HTML page.
type Extracted struct {
	Title string
	Text  string
}

// Extract strips script/style/noscript content and joins the remaining
// text nodes with single spaces, mirroring the original extractor's use of
// BeautifulSoup's stripped_strings join. It deliberately does not attempt
// goresearch's richer heading/paragraph layout — the claim extractor
// downstream only needs flat prose, not structure.
func Extract(rawHTML string) Extracted {
	node, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil || node == nil {
		return Extracted{}
	}

	title := strings.TrimSpace(findTitle(node))

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	return Extracted{Title: title, Text: strings.Join(parts, " ")}
}

func findTitle(n *html.Node) string {
	var title string
	var dfs func(*html.Node) bool
	dfs = func(cur *html.Node) bool {
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, "title") && cur.FirstChild != nil {
			title = cur.FirstChild.Data
			return true
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if dfs(c) {
				return true
			}
		}
		return false
	}
	dfs(n)
	return title
}
