package aggregate

import (
	"cmp"
	"slices"

	"tunelytics/internal/core"
)

// arena is the fold state: target → relation → user key → currently active.
type arena map[int64]map[core.Relation]map[string]bool

func (a arena) relation(target int64, rel core.Relation) map[string]bool {
	rels, ok := a[target]
	if !ok {
		rels = map[core.Relation]map[string]bool{}
		a[target] = rels
	}
	users, ok := rels[rel]
	if !ok {
		users = map[string]bool{}
		rels[rel] = users
	}
	return users
}

// BuildStats folds interaction records into per-target stats. The fold is a
// pure function of the chronologically ordered record sequence: records are
// globally sorted by (timestamp, id) first, so any arrival order across
// writers produces identical output. Duplicate deliveries of the same
// record collapse to one.
//
// Counts are membership-set cardinality at the end of the fold, not running
// counters: redundant activate/deactivate pairs are idempotent no-ops and
// never perturb the result.
//
// viewer marks whose UserLiked/UserReposted/UserBookmarked flags to track;
// pass "" when there is no viewer.
func BuildStats(interactions []core.Interaction, viewer string) map[int64]*core.PostStats {
	ordered := chronological(interactions)

	stats := map[int64]*core.PostStats{}
	state := arena{}
	replies := map[int64]map[int64][]core.Interaction{} // target → parent comment id → replies

	viewerKey := core.AddressKey(viewer)

	for _, ev := range ordered {
		if rel, activate, ok := core.ToggleRelation(ev.Type); ok {
			users := state.relation(ev.TargetID, rel)
			user := core.AddressKey(ev.FromUser)

			if activate {
				users[user] = true
			} else {
				delete(users, user)
			}

			if viewer != "" && user == viewerKey {
				s := target(stats, ev.TargetID)
				switch rel {
				case core.RelationLike:
					s.UserLiked = activate
				case core.RelationRepost:
					s.UserReposted = activate
				case core.RelationBookmark:
					s.UserBookmarked = activate
				}
			}
			// Materialize the stats entry so zero-count relations still
			// surface for targets that only ever saw toggles.
			target(stats, ev.TargetID)
			continue
		}

		if ev.Type == core.InteractionComment {
			s := target(stats, ev.TargetID)
			s.Comments++

			if ev.ParentID == 0 {
				s.TopComments = append(s.TopComments, core.Comment{Interaction: ev})
			} else {
				byParent, ok := replies[ev.TargetID]
				if !ok {
					byParent = map[int64][]core.Interaction{}
					replies[ev.TargetID] = byParent
				}
				byParent[ev.ParentID] = append(byParent[ev.ParentID], ev)
			}
		}

		// Tips, follows and future types belong to other consumers.
	}

	for targetID, s := range stats {
		likes := state.relation(targetID, core.RelationLike)
		reposts := state.relation(targetID, core.RelationRepost)
		bookmarks := state.relation(targetID, core.RelationBookmark)

		s.Likes = len(likes)
		s.Reposts = len(reposts)
		s.Bookmarks = len(bookmarks)
		s.LikedBy = likes
		s.RepostedBy = reposts
		s.BookmarkedBy = bookmarks

		attachReplies(s, replies[targetID])
	}

	return stats
}

// ForViewer returns a copy of the stats with the viewer flags derived from
// final membership. Equivalent to folding with the viewer parameter, since
// a flag's post-transition state at the last transition is the final
// membership state.
func ForViewer(s core.PostStats, viewer string) core.PostStats {
	key := core.AddressKey(viewer)
	s.UserLiked = s.LikedBy[key]
	s.UserReposted = s.RepostedBy[key]
	s.UserBookmarked = s.BookmarkedBy[key]
	return s
}

func target(stats map[int64]*core.PostStats, id int64) *core.PostStats {
	s, ok := stats[id]
	if !ok {
		s = &core.PostStats{
			TargetID:     id,
			LikedBy:      map[string]bool{},
			RepostedBy:   map[string]bool{},
			BookmarkedBy: map[string]bool{},
		}
		stats[id] = s
	}
	return s
}

// chronological sorts a copy of the records by (timestamp, id) and drops
// duplicate deliveries. The indexer makes no de-duplication promise, and a
// duplicated COMMENT delivery must not double-count.
func chronological(interactions []core.Interaction) []core.Interaction {
	type identity struct {
		id        int64
		timestamp int64
		kind      core.InteractionType
		targetID  int64
		user      string
	}

	ordered := slices.Clone(interactions)
	slices.SortFunc(ordered, func(a, b core.Interaction) int {
		if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	seen := map[identity]bool{}
	return slices.DeleteFunc(ordered, func(ev core.Interaction) bool {
		key := identity{ev.ID, ev.Timestamp, ev.Type, ev.TargetID, core.AddressKey(ev.FromUser)}
		if seen[key] {
			return true
		}
		seen[key] = true
		return false
	})
}
