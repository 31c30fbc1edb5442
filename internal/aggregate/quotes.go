package aggregate

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"tunelytics/internal/core"
)

// CollapseVersions reduces the append-only post versions to the latest
// version of each logical post. Versions are ordered by (timestamp, then
// position in the already-sorted input), so re-fetching in a different
// order yields the same survivor.
func CollapseVersions(posts []core.Post) []core.Post {
	ordered := slices.Clone(posts)
	slices.SortStableFunc(ordered, func(a, b core.Post) int {
		if c := cmp.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	latest := map[int64]core.Post{}
	for _, p := range ordered {
		latest[p.ID] = p
	}

	collapsed := lo.Values(latest)
	slices.SortFunc(collapsed, func(a, b core.Post) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return collapsed
}

// CountQuotes frequency-counts non-deleted posts referencing other posts.
// Quoting is not revocable — there is no unquote event type — so this is a
// plain count, no toggle reconciliation.
func CountQuotes(posts []core.Post) map[int64]int {
	quotes := map[int64]int{}

	for _, p := range CollapseVersions(posts) {
		if p.IsDeleted || p.QuotedPostID == 0 {
			continue
		}
		quotes[p.QuotedPostID]++
	}

	return quotes
}
