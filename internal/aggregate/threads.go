package aggregate

import (
	"cmp"
	"slices"

	"tunelytics/internal/core"
)

// BuildThread groups the target's COMMENT records into a two-level tree:
// top-level comments ordered by timestamp, each with its direct replies
// ordered by timestamp. Replies to replies are not nested deeper.
//
// An orphan reply (parentId pointing at no known comment) stays in the
// target's comment count but is left out of the rendered tree.
func BuildThread(targetID int64, interactions []core.Interaction) []core.Comment {
	var comments []core.Interaction
	for _, ev := range chronological(interactions) {
		if ev.Type == core.InteractionComment && ev.TargetID == targetID {
			comments = append(comments, ev)
		}
	}

	byParent := map[int64][]core.Interaction{}
	var thread []core.Comment

	for _, ev := range comments {
		if ev.ParentID == 0 {
			thread = append(thread, core.Comment{Interaction: ev})
		} else {
			byParent[ev.ParentID] = append(byParent[ev.ParentID], ev)
		}
	}

	for i := range thread {
		thread[i].Replies = byParent[thread[i].ID]
	}

	return thread
}

// attachReplies wires grouped replies onto the stats' top-level comments.
// Comments arrive from the fold already in chronological order; replies
// are re-sorted here since grouping does not preserve global order for a
// single parent across writers.
func attachReplies(s *core.PostStats, byParent map[int64][]core.Interaction) {
	slices.SortFunc(s.TopComments, func(a, b core.Comment) int {
		if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if byParent == nil {
		return
	}

	for i := range s.TopComments {
		replies := byParent[s.TopComments[i].ID]
		slices.SortFunc(replies, func(a, b core.Interaction) int {
			if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		s.TopComments[i].Replies = replies
	}
}
