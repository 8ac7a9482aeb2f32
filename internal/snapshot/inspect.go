package snapshot

import (
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Counts is what was drawn on a captured page or in an exported SVG.
type Counts struct {
	Nodes int `json:"nodes"`
	Links int `json:"links"`
	// NodeIDs is only filled for documents that carry data-id attributes.
	NodeIDs []string `json:"node_ids,omitempty"`
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return slices.Contains(strings.Fields(attr.Val), class)
		}
	}
	return false
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// countElements walks the tree counting g.node and line.link elements.
func countElements(n *html.Node) Counts {
	var c Counts

	var visitNode func(*html.Node)
	visitNode = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "g" && hasClass(n, "node"):
				c.Nodes++
				if id, ok := attrValue(n, "data-id"); ok {
					c.NodeIDs = append(c.NodeIDs, id)
				}
			case n.Data == "line" && hasClass(n, "link"):
				c.Links++
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visitNode(child)
		}
	}

	visitNode(n)

	return c
}

// Inspect parses an HTML or SVG document and counts the drawn graph in it.
func Inspect(r io.Reader) (Counts, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Counts{}, err
	}
	return countElements(doc), nil
}
