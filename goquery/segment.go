package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Section is an ordered run of nodes cut from a tree. It references the
// original nodes and never owns them.
type Section struct {
	nodes []*html.Node
}

// Nodes returns the section's nodes in source order.
func (s *Section) Nodes() []*html.Node {
	nodes := make([]*html.Node, len(s.nodes))
	copy(nodes, s.nodes)
	return nodes
}

// Len returns the number of nodes in the section.
func (s *Section) Len() int {
	return len(s.nodes)
}

// HTML renders the section's nodes back to markup. Sections produced by
// SplitByAttr may list a node and its descendants separately; each is
// rendered with its own subtree.
func (s *Section) HTML() (string, error) {
	return Render(s.nodes)
}

// Document re-parses the section markup into a standalone document so
// selectors never see or modify the source tree.
func (s *Section) Document() (*goquery.Document, error) {
	markup, err := s.HTML()
	if err != nil {
		return nil, err
	}
	return newDocument(markup)
}

// SplitByTag splits the top-level children of root into sections, starting
// a new section at every element named tag. Only top-level nodes are
// inspected.
func SplitByTag(root *html.Node, tag string) []*Section {
	var sections []*Section
	var current []*html.Node

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag && len(current) > 0 {
			sections = append(sections, &Section{nodes: current})
			current = nil
		}
		current = append(current, c)
	}

	if len(current) > 0 {
		sections = append(sections, &Section{nodes: current})
	}
	return sections
}

// AttrPredicate matches elements whose attributes hold every listed value.
// The class attribute matches when each whitespace-separated token of the
// value is among the element's classes; other attributes must be equal.
// An empty predicate matches every element.
type AttrPredicate map[string]string

// Match reports whether n is an element satisfying the predicate.
func (p AttrPredicate) Match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for key, want := range p {
		got, ok := attr(n, key)
		if !ok {
			return false
		}
		if key == "class" {
			if !hasTokens(got, want) {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}

// SplitByAttr walks root's descendants in pre-order and starts a new
// section before every element matching pred. Every visited node is
// appended to the section current at the time it is visited, so sections
// hold nodes from several depths flattened into one sequence.
func SplitByAttr(root *html.Node, pred AttrPredicate) []*Section {
	current, sections := splitByAttr(root, pred, nil, nil)
	if len(current) > 0 {
		sections = append(sections, &Section{nodes: current})
	}
	return sections
}

// splitByAttr folds the children of n into the accumulator and returns the
// accumulator current after the last descendant together with the
// sections completed so far.
func splitByAttr(n *html.Node, pred AttrPredicate, current []*html.Node, sections []*Section) ([]*html.Node, []*Section) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pred.Match(c) && len(current) > 0 {
			sections = append(sections, &Section{nodes: current})
			current = nil
		}
		current = append(current, c)
		if c.Type == html.ElementNode {
			current, sections = splitByAttr(c, pred, current, sections)
		}
	}
	return current, sections
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasTokens(have, want string) bool {
	classes := make(map[string]bool)
	for _, c := range strings.Fields(have) {
		classes[c] = true
	}
	for _, w := range strings.Fields(want) {
		if !classes[w] {
			return false
		}
	}
	return true
}
