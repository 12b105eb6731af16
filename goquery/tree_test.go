package goquery_test

import (
	"testing"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("returns container with top-level nodes as children", func(t *testing.T) {
		t.Parallel()

		root, err := goquery.Parse(`<h1>Goblin</h1>text<br/>`)

		require.NoError(t, err)
		children := goquery.Children(root)
		require.Len(t, children, 3)
		assert.Equal(t, "h1", children[0].Data)
		assert.Equal(t, html.TextNode, children[1].Type)
		assert.Equal(t, "text", children[1].Data)
		assert.Equal(t, "br", children[2].Data)
	})

	t.Run("rejects empty markup", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.Parse("  \n ")

		assert.Equal(t, statblock.EMALFORMED, statblock.ErrorCode(err))
	})

	t.Run("keeps comments", func(t *testing.T) {
		t.Parallel()

		root, err := goquery.Parse(`<!-- note --><p>x</p>`)

		require.NoError(t, err)
		children := goquery.Children(root)
		require.Len(t, children, 2)
		assert.Equal(t, html.CommentNode, children[0].Type)
	})
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	page := `<!DOCTYPE html>
<html>
<body>
<nav><a href="/">Home</a></nav>
<span id="ctl00_RadDrawer1_Content_MainContent_DetailedOutput"><h1 class="title">Goblin Creature 1</h1></span>
</body>
</html>`

	t.Run("returns the container element", func(t *testing.T) {
		t.Parallel()

		root, err := goquery.ParsePage(page, goquery.DefaultContainer)

		require.NoError(t, err)
		children := goquery.Children(root)
		require.Len(t, children, 1)
		assert.Equal(t, "h1", children[0].Data)
	})

	t.Run("fails when container is missing", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParsePage(page, "#missing")

		assert.Equal(t, statblock.EMALFORMED, statblock.ErrorCode(err))
	})

	t.Run("rejects empty page", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParsePage("", goquery.DefaultContainer)

		assert.Equal(t, statblock.EMALFORMED, statblock.ErrorCode(err))
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `<b>Lore</b> a &amp; b<br/>`)

	markup, err := goquery.Render(goquery.Children(root))

	require.NoError(t, err)
	assert.Equal(t, `<b>Lore</b> a &amp; b<br/>`, markup)
}
