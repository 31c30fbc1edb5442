package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunelytics/internal/aggregate"
	"tunelytics/internal/core"
)

func post(id, ts int64, author string) core.Post {
	return core.Post{ID: id, Timestamp: ts, Author: author, Content: "post"}
}

func quoting(id, ts, quoted int64, author string) core.Post {
	p := post(id, ts, author)
	p.QuotedPostID = quoted
	return p
}

func TestCountQuotes(t *testing.T) {
	t.Parallel()

	posts := []core.Post{
		post(1, 100, alice),
		quoting(2, 200, 1, bob),
		quoting(3, 300, 1, carol),
		quoting(4, 400, 2, alice),
	}

	quotes := aggregate.CountQuotes(posts)

	assert.Equal(t, map[int64]int{1: 2, 2: 1}, quotes)
}

func TestCountQuotes_SkipsDeletedQuoters(t *testing.T) {
	t.Parallel()

	deleted := quoting(2, 200, 1, bob)
	deleted.IsDeleted = true

	quotes := aggregate.CountQuotes([]core.Post{
		post(1, 100, alice),
		deleted,
		quoting(3, 300, 1, carol),
	})

	assert.Equal(t, map[int64]int{1: 1}, quotes)
}

func TestCountQuotes_UsesLatestVersion(t *testing.T) {
	t.Parallel()

	// Post 2 quoted post 1, then a later version was deleted.
	v1 := quoting(2, 200, 1, bob)
	v2 := quoting(2, 500, 1, bob)
	v2.IsDeleted = true

	quotes := aggregate.CountQuotes([]core.Post{post(1, 100, alice), v2, v1})

	assert.Empty(t, quotes)
}

func TestCollapseVersions_KeepsLatestByTimestamp(t *testing.T) {
	t.Parallel()

	early := post(1, 100, alice)
	late := post(1, 300, alice)
	late.Content = "edited"

	for _, in := range [][]core.Post{{early, late}, {late, early}} {
		collapsed := aggregate.CollapseVersions(in)
		require.Len(t, collapsed, 1)
		assert.Equal(t, "edited", collapsed[0].Content)
	}
}

func TestCollapseVersions_SortedByID(t *testing.T) {
	t.Parallel()

	collapsed := aggregate.CollapseVersions([]core.Post{
		post(3, 1, alice),
		post(1, 2, bob),
		post(2, 3, carol),
	})

	require.Len(t, collapsed, 3)
	assert.Equal(t, int64(1), collapsed[0].ID)
	assert.Equal(t, int64(2), collapsed[1].ID)
	assert.Equal(t, int64(3), collapsed[2].ID)
}
