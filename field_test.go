package statblock_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/statblock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	t.Parallel()

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		tbl := statblock.NewTable()
		tbl.Set("Society", "15")
		tbl.Set("Arcana", "17")
		tbl.Set("Lore", "13")

		assert.Equal(t, []string{"Society", "Arcana", "Lore"}, tbl.Keys())
		assert.Equal(t, 3, tbl.Len())
	})

	t.Run("duplicate key overwrites value and keeps position", func(t *testing.T) {
		t.Parallel()

		tbl := statblock.NewTable()
		tbl.Set("Lore", "13")
		tbl.Set("Stealth", "20")
		tbl.Set("Lore", "15")

		v, ok := tbl.Get("Lore")
		require.True(t, ok)
		assert.Equal(t, "15", v)
		assert.Equal(t, []string{"Lore", "Stealth"}, tbl.Keys())
	})

	t.Run("marshals as ordered JSON object", func(t *testing.T) {
		t.Parallel()

		tbl := statblock.NewTable()
		tbl.Set("Zeta", "1")
		tbl.Set("Alpha", "2 \"quoted\"")

		b, err := json.Marshal(tbl)

		require.NoError(t, err)
		assert.Equal(t, `{"Zeta":"1","Alpha":"2 \"quoted\""}`, string(b))
	})

	t.Run("empty table marshals as empty object", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(statblock.NewTable())

		require.NoError(t, err)
		assert.Equal(t, `{}`, string(b))
	})
}

func TestFieldSet(t *testing.T) {
	t.Parallel()

	t.Run("unwritten field is absent without error", func(t *testing.T) {
		t.Parallel()

		fs := statblock.NewFieldSet()

		f, err := fs.Get(statblock.FieldSize)

		require.NoError(t, err)
		assert.True(t, f.IsAbsent())
	})

	t.Run("later set clears earlier failure", func(t *testing.T) {
		t.Parallel()

		fs := statblock.NewFieldSet()
		fs.Fail(statblock.FieldSize, errors.New("boom"))
		fs.Set(statblock.FieldSize, statblock.Scalar("Small"))

		f, err := fs.Get(statblock.FieldSize)

		require.NoError(t, err)
		assert.Equal(t, "Small", f.Text)
		assert.Empty(t, fs.Errors())
	})

	t.Run("errors keep first-write order", func(t *testing.T) {
		t.Parallel()

		fs := statblock.NewFieldSet()
		errA := statblock.FieldErrorf(statblock.EMALFORMEDFIELD, "a", "a")
		errB := statblock.FieldErrorf(statblock.EMALFORMEDFIELD, "b", "b")
		fs.Fail("a", errA)
		fs.Set("c", statblock.Scalar("ok"))
		fs.Fail("b", errB)

		assert.Equal(t, []error{errA, errB}, fs.Errors())
	})

	t.Run("record dispatches on error", func(t *testing.T) {
		t.Parallel()

		fs := statblock.NewFieldSet()
		fs.Record("x", statblock.Scalar("ignored"), errors.New("failed"))
		fs.Record("y", statblock.Scalar("kept"), nil)

		_, err := fs.Get("x")
		assert.Error(t, err)
		f, err := fs.Get("y")
		require.NoError(t, err)
		assert.Equal(t, "kept", f.Text)
	})
}
