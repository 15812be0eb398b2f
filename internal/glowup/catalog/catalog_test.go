package catalog_test

import (
	"strconv"
	"testing"

	"github.com/aussiebroadwan/glowup/internal/glowup/catalog"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	require.Len(t, c.Categories, 6)
	require.NotEmpty(t, c.Challenges)

	tpl, err := c.Lookup("bookworm")
	require.NoError(t, err)
	require.Equal(t, "knowledge", tpl.Category)
	require.Equal(t, 10, tpl.DurationDays)

	_, err = c.Lookup("missing")
	require.ErrorIs(t, err, catalog.ErrUnknownChallenge)

	require.Len(t, c.InCategory("wellness"), 1)
	require.Len(t, c.InCategory(""), len(c.Challenges))
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	t.Run("duplicate ids", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`
categories: [{id: a, title: A}]
challenges:
  - {id: x, title: X, category: a, duration: 1}
  - {id: x, title: Y, category: a, duration: 2}
`))
		require.Error(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`
categories: [{id: a, title: A}]
challenges:
  - {id: x, title: X, category: b, duration: 1}
`))
		require.Error(t, err)
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`
categories: [{id: a, title: A}]
challenges:
  - {id: x, title: X, category: a, duration: 0}
`))
		require.Error(t, err)
	})
}

func TestInstantiate(t *testing.T) {
	n := 0
	newID := func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}

	tpl := catalog.Template{
		ID: "soft-mornings", Title: "Soft Mornings", Category: "wellness",
		DurationDays: 7, Tasks: []string{"a", "b"},
	}

	ch := tpl.Instantiate("ch-1", newID)
	require.Equal(t, "ch-1", ch.ID)
	require.Len(t, ch.Tasks, 2)
	require.Equal(t, "id-1", ch.Tasks[0].ID)
	require.Equal(t, "id-2", ch.Tasks[1].ID)
	require.False(t, ch.Completed)
	require.NoError(t, ch.Validate())
}
