package htmlutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Collapse trims s and squeezes every internal whitespace run down to a
// single space.
func Collapse(s string) string {
	return whitespaceRuns.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Text returns the visible text beneath node. Text nodes are joined with a
// single space so `a<br>b` reads as "a b" rather than "ab".
func Text(node *html.Node) string {
	var parts []string
	collectText(node, &parts)
	return strings.Join(parts, " ")
}

func collectText(node *html.Node, parts *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		if t := Collapse(node.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, parts)
	}
}

// SelectionText returns Text over every node in sel, space-joined.
func SelectionText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		if t := Text(n); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
