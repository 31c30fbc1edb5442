package feed_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunelytics/internal/aggregate"
	"tunelytics/internal/core"
	"tunelytics/internal/feed"
)

const author = "0xabc0000000000000000000000000000000000001"

func post(id, ts int64) core.Post {
	return core.Post{ID: id, Timestamp: ts, Author: author, Content: fmt.Sprintf("post %d", id)}
}

func posts(n int) []core.Post {
	out := make([]core.Post, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, post(int64(i), int64(i*1000)))
	}
	return out
}

func TestAssemble_NewestFirst(t *testing.T) {
	t.Parallel()

	page := feed.Assemble(posts(3), nil, nil, "", 0, 20)

	require.Len(t, page, 3)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, int64(2), page[1].ID)
	assert.Equal(t, int64(1), page[2].ID)
}

func TestAssemble_Pagination(t *testing.T) {
	t.Parallel()

	all := posts(45)

	page0 := feed.Assemble(all, nil, nil, "", 0, 20)
	page1 := feed.Assemble(all, nil, nil, "", 1, 20)
	page2 := feed.Assemble(all, nil, nil, "", 2, 20)
	page3 := feed.Assemble(all, nil, nil, "", 3, 20)

	assert.Len(t, page0, 20)
	assert.Len(t, page1, 20)
	assert.Len(t, page2, 5)
	assert.Empty(t, page3)

	assert.Equal(t, int64(45), page0[0].ID)
	assert.Equal(t, int64(25), page1[0].ID)
	assert.Equal(t, int64(5), page2[0].ID)
	assert.Equal(t, int64(1), page2[4].ID)
}

func TestAssemble_DefaultPageSize(t *testing.T) {
	t.Parallel()

	page := feed.Assemble(posts(30), nil, nil, "", 0, 0)

	assert.Len(t, page, feed.DefaultPageSize)
}

func TestAssemble_NegativePageClampsToFirst(t *testing.T) {
	t.Parallel()

	page := feed.Assemble(posts(3), nil, nil, "", -2, 20)

	require.Len(t, page, 3)
	assert.Equal(t, int64(3), page[0].ID)
}

func TestAssemble_DeletedPostsAreHidden(t *testing.T) {
	t.Parallel()

	deleted := post(2, 2000)
	deleted.IsDeleted = true

	page := feed.Assemble([]core.Post{post(1, 1000), deleted, post(3, 3000)}, nil, nil, "", 0, 20)

	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, int64(1), page[1].ID)
}

func TestAssemble_MissingStatsDefaultToZero(t *testing.T) {
	t.Parallel()

	page := feed.Assemble(posts(1), map[int64]*core.PostStats{}, nil, "", 0, 20)

	require.Len(t, page, 1)
	assert.Equal(t, int64(1), page[0].Stats.TargetID)
	assert.Zero(t, page[0].Stats.Likes)
	assert.Zero(t, page[0].Quotes)
}

func TestAssemble_MergesStatsAndQuotes(t *testing.T) {
	t.Parallel()

	stats := aggregate.BuildStats([]core.Interaction{
		{ID: 1, Timestamp: 1, Type: core.InteractionLike, TargetID: 1, TargetType: core.TargetPost, FromUser: author},
	}, "")
	quotes := map[int64]int{1: 4}

	page := feed.Assemble(posts(1), stats, quotes, author, 0, 20)

	require.Len(t, page, 1)
	assert.Equal(t, 1, page[0].Stats.Likes)
	assert.True(t, page[0].Stats.UserLiked)
	assert.Equal(t, 4, page[0].Quotes)
}

func TestAssemble_QuoteChainResolvedToDepthThree(t *testing.T) {
	t.Parallel()

	chain := []core.Post{post(1, 1000)}
	for i := int64(2); i <= 5; i++ {
		p := post(i, i*1000)
		p.QuotedPostID = i - 1
		chain = append(chain, p)
	}

	page := feed.Assemble(chain, nil, nil, "", 0, 1)

	require.Len(t, page, 1)
	assert.Equal(t, int64(5), page[0].ID)

	level1 := page[0].QuotedPost
	require.NotNil(t, level1)
	assert.Equal(t, int64(4), level1.ID)

	level2 := level1.QuotedPost
	require.NotNil(t, level2)
	assert.Equal(t, int64(3), level2.ID)

	level3 := level2.QuotedPost
	require.NotNil(t, level3)
	assert.Equal(t, int64(2), level3.ID)

	assert.Nil(t, level3.QuotedPost)
}

func TestAssemble_QuoteCycleTerminates(t *testing.T) {
	t.Parallel()

	a := post(1, 1000)
	a.QuotedPostID = 2
	b := post(2, 2000)
	b.QuotedPostID = 1

	page := feed.Assemble([]core.Post{a, b}, nil, nil, "", 0, 20)

	require.Len(t, page, 2)
	top := page[0]
	require.NotNil(t, top.QuotedPost)
	require.NotNil(t, top.QuotedPost.QuotedPost)
	require.NotNil(t, top.QuotedPost.QuotedPost.QuotedPost)
	assert.Nil(t, top.QuotedPost.QuotedPost.QuotedPost.QuotedPost)
}

func TestAssemble_MissingQuotedPostIsDropped(t *testing.T) {
	t.Parallel()

	p := post(1, 1000)
	p.QuotedPostID = 999

	page := feed.Assemble([]core.Post{p}, nil, nil, "", 0, 20)

	require.Len(t, page, 1)
	assert.Nil(t, page[0].QuotedPost)
}

func TestAssemble_DeletedQuotedPostNotResolved(t *testing.T) {
	t.Parallel()

	quoted := post(1, 1000)
	quoted.IsDeleted = true
	p := post(2, 2000)
	p.QuotedPostID = 1

	page := feed.Assemble([]core.Post{quoted, p}, nil, nil, "", 0, 20)

	require.Len(t, page, 1)
	assert.Nil(t, page[0].QuotedPost)
}
