package statblock_test

import (
	"testing"

	"github.com/fwojciec/statblock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts each well-formed variant", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, statblock.FromTree(&html.Node{Type: html.ElementNode, Data: "div"}).Validate())
		assert.NoError(t, statblock.FromMarkup("<h1>x</h1>").Validate())
		assert.NoError(t, statblock.FromIdentifier(statblock.KindCreature, 42).Validate())
	})

	t.Run("rejects tree source without node", func(t *testing.T) {
		t.Parallel()

		err := statblock.FromTree(nil).Validate()

		assert.Equal(t, statblock.EINVALID, statblock.ErrorCode(err))
	})

	t.Run("rejects non-positive identifier", func(t *testing.T) {
		t.Parallel()

		err := statblock.FromIdentifier(statblock.KindNPC, 0).Validate()

		assert.Equal(t, statblock.EINVALID, statblock.ErrorCode(err))
	})

	t.Run("rejects identifier without kind", func(t *testing.T) {
		t.Parallel()

		err := statblock.Source{Kind: statblock.SourceIdentifier, ID: 3}.Validate()

		assert.Equal(t, statblock.EINVALID, statblock.ErrorCode(err))
	})

	t.Run("rejects zero source", func(t *testing.T) {
		t.Parallel()

		err := statblock.Source{}.Validate()

		assert.Equal(t, statblock.EINVALID, statblock.ErrorCode(err))
	})
}
