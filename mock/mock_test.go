package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestRetriever_Retrieve(t *testing.T) {
	t.Parallel()

	t.Run("delegates to RetrieveFn", func(t *testing.T) {
		t.Parallel()

		var gotKind statblock.Kind
		var gotID int
		r := &mock.Retriever{
			RetrieveFn: func(_ context.Context, kind statblock.Kind, id int) (string, error) {
				gotKind, gotID = kind, id
				return "<h1>x</h1>", nil
			},
		}

		markup, err := r.Retrieve(context.Background(), statblock.KindNPC, 12)

		require.NoError(t, err)
		assert.Equal(t, "<h1>x</h1>", markup)
		assert.Equal(t, statblock.KindNPC, gotKind)
		assert.Equal(t, 12, gotID)
	})
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("delegates to ResolveFn", func(t *testing.T) {
		t.Parallel()

		node := &html.Node{Type: html.ElementNode, Data: "div"}
		r := &mock.Resolver{
			ResolveFn: func(_ context.Context, src statblock.Source) (*html.Node, error) {
				return src.Tree, nil
			},
		}

		got, err := r.Resolve(context.Background(), statblock.FromTree(node))

		require.NoError(t, err)
		assert.Same(t, node, got)
	})
}
