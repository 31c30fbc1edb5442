package feed

import (
	"cmp"
	"slices"

	"tunelytics/internal/aggregate"
	"tunelytics/internal/core"
)

const (
	// DefaultPageSize is applied when the caller asks for nothing.
	DefaultPageSize = 20
	// MaxPageSize is the hard cap. It is enforced by the external API
	// surface, not by the assembler itself.
	MaxPageSize = 100

	// maxQuoteDepth bounds quoted-post resolution. Deeper chains are
	// truncated by simply not attaching the next quote, which also makes
	// reference cycles harmless: depth strictly decreases per step.
	maxQuoteDepth = 3
)

// Assemble merges posts with their derived stats and quote counts, newest
// first, sliced to the requested page. Posts without a stats entry get
// zero counts, not an omission. Deleted posts never surface.
func Assemble(posts []core.Post, stats map[int64]*core.PostStats, quotes map[int64]int, viewer string, page, pageSize int) []core.FeedPost {
	visible := make([]core.Post, 0, len(posts))
	index := map[int64]core.Post{}
	for _, p := range aggregate.CollapseVersions(posts) {
		if p.IsDeleted {
			continue
		}
		visible = append(visible, p)
		index[p.ID] = p
	}

	slices.SortFunc(visible, func(a, b core.Post) int {
		if c := cmp.Compare(b.Timestamp, a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	pageSlice := paginate(visible, page, pageSize)

	out := make([]core.FeedPost, 0, len(pageSlice))
	for _, p := range pageSlice {
		fp := merge(p, stats, quotes, viewer)
		fp.QuotedPost = resolveQuoted(p.QuotedPostID, index, stats, quotes, viewer, maxQuoteDepth)
		out = append(out, fp)
	}
	return out
}

// paginate slices by 0-based page index. A page past the end is an empty
// result, not an error.
func paginate(posts []core.Post, page, pageSize int) []core.Post {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}

	start := page * pageSize
	if start >= len(posts) {
		return nil
	}
	return posts[start:min(start+pageSize, len(posts))]
}

func merge(p core.Post, stats map[int64]*core.PostStats, quotes map[int64]int, viewer string) core.FeedPost {
	fp := core.FeedPost{Post: p, Quotes: quotes[p.ID]}

	if s, ok := stats[p.ID]; ok {
		fp.Stats = *s
	} else {
		fp.Stats = core.PostStats{TargetID: p.ID}
	}
	if viewer != "" {
		fp.Stats = aggregate.ForViewer(fp.Stats, viewer)
	}
	return fp
}

func resolveQuoted(quotedID int64, index map[int64]core.Post, stats map[int64]*core.PostStats, quotes map[int64]int, viewer string, depth int) *core.FeedPost {
	if depth <= 0 || quotedID == 0 {
		return nil
	}
	quoted, ok := index[quotedID]
	if !ok {
		return nil
	}

	fp := merge(quoted, stats, quotes, viewer)
	fp.QuotedPost = resolveQuoted(quoted.QuotedPostID, index, stats, quotes, viewer, depth-1)
	return &fp
}
