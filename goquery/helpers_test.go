package goquery_test

import (
	"testing"

	pq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/statblock/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func mustParse(t *testing.T, markup string) *html.Node {
	t.Helper()

	root, err := goquery.Parse(markup)
	require.NoError(t, err)
	return root
}

func mustDoc(t *testing.T, markup string) *pq.Document {
	t.Helper()

	return pq.NewDocumentFromNode(mustParse(t, markup))
}

// preorder lists the descendants of root in document order, root excluded.
func preorder(root *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
			walk(c)
		}
	}
	walk(root)
	return nodes
}

func concat(sections []*goquery.Section) []*html.Node {
	var nodes []*html.Node
	for _, s := range sections {
		nodes = append(nodes, s.Nodes()...)
	}
	return nodes
}

func requireSameNodes(t *testing.T, want, got []*html.Node) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		require.Same(t, want[i], got[i], "node %d", i)
	}
}
