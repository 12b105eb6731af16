// Package goquery implements stat block segmentation and field extraction
// over golang.org/x/net/html trees, using goquery for selector matching.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/statblock"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultContainer selects the element holding the stat block on an archive page.
const DefaultContainer = "#ctl00_RadDrawer1_Content_MainContent_DetailedOutput"

// Parse parses container markup into a fresh container node whose
// children are the top-level nodes of the markup.
func Parse(markup string) (*html.Node, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, statblock.Errorf(statblock.EMALFORMED, "empty markup")
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), newContainer())
	if err != nil {
		return nil, statblock.Errorf(statblock.EMALFORMED, "failed to parse markup: %v", err)
	}

	root := newContainer()
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// ParsePage parses a whole page and returns the first element matching
// container. The returned node stays attached to the page tree.
func ParsePage(page string, container string) (*html.Node, error) {
	if strings.TrimSpace(page) == "" {
		return nil, statblock.Errorf(statblock.EMALFORMED, "empty page")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, statblock.Errorf(statblock.EMALFORMED, "failed to parse HTML: %v", err)
	}

	sel := doc.Find(container).First()
	if sel.Length() == 0 {
		return nil, statblock.Errorf(statblock.EMALFORMED, "container %q not found", container)
	}
	return sel.Get(0), nil
}

// Children returns the top-level nodes of a container in order.
func Children(root *html.Node) []*html.Node {
	var nodes []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	return nodes
}

// Render serializes nodes back to markup, each with its full subtree.
func Render(nodes []*html.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return "", statblock.Errorf(statblock.EINTERNAL, "failed to render node: %v", err)
		}
	}
	return b.String(), nil
}

// newDocument parses markup into a standalone goquery document rooted at
// a container element.
func newDocument(markup string) (*goquery.Document, error) {
	root := newContainer()
	if strings.TrimSpace(markup) != "" {
		parsed, err := Parse(markup)
		if err != nil {
			return nil, err
		}
		root = parsed
	}
	return goquery.NewDocumentFromNode(root), nil
}

func newContainer() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
}
