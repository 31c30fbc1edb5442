package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunelytics/internal/aggregate"
	"tunelytics/internal/core"
)

func TestBuildThread_TwoLevels(t *testing.T) {
	t.Parallel()

	events := []core.Interaction{
		comment(10, 100, 7, 0, alice, "top A"),
		comment(11, 200, 7, 10, bob, "reply to A"),
		comment(12, 300, 7, 11, carol, "reply to a reply"),
		comment(13, 400, 7, 0, carol, "top B"),
	}

	thread := aggregate.BuildThread(7, events)

	require.Len(t, thread, 2)
	assert.Equal(t, int64(10), thread[0].ID)
	assert.Equal(t, int64(13), thread[1].ID)

	// Comment 12 replies to a reply, so it hangs off nothing renderable.
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, int64(11), thread[0].Replies[0].ID)
	assert.Empty(t, thread[1].Replies)
}

func TestBuildThread_OrphanReplyIsCountedButNotRendered(t *testing.T) {
	t.Parallel()

	events := []core.Interaction{
		comment(10, 100, 7, 0, alice, "top"),
		comment(20, 200, 7, 999, bob, "orphan"),
	}

	thread := aggregate.BuildThread(7, events)
	require.Len(t, thread, 1)
	assert.Empty(t, thread[0].Replies)

	stats := aggregate.BuildStats(events, "")
	assert.Equal(t, 2, stats[7].Comments)
}

func TestBuildThread_OrderedByTimestamp(t *testing.T) {
	t.Parallel()

	events := []core.Interaction{
		comment(3, 300, 7, 0, carol, "third"),
		comment(1, 100, 7, 0, alice, "first"),
		comment(2, 200, 7, 0, bob, "second"),
		comment(5, 250, 7, 1, bob, "later reply"),
		comment(4, 150, 7, 1, carol, "earlier reply"),
	}

	thread := aggregate.BuildThread(7, events)

	require.Len(t, thread, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{thread[0].ID, thread[1].ID, thread[2].ID})
	require.Len(t, thread[0].Replies, 2)
	assert.Equal(t, int64(4), thread[0].Replies[0].ID)
	assert.Equal(t, int64(5), thread[0].Replies[1].ID)
}

func TestBuildThread_IgnoresOtherTargets(t *testing.T) {
	t.Parallel()

	events := []core.Interaction{
		comment(1, 100, 7, 0, alice, "here"),
		comment(2, 200, 8, 0, bob, "elsewhere"),
		like(3, 300, 7, carol),
	}

	thread := aggregate.BuildThread(7, events)
	require.Len(t, thread, 1)
	assert.Equal(t, int64(1), thread[0].ID)
}

func TestBuildStats_ThreadMatchesBuildThread(t *testing.T) {
	t.Parallel()

	events := []core.Interaction{
		comment(10, 100, 7, 0, alice, "top"),
		comment(11, 200, 7, 10, bob, "reply"),
	}

	stats := aggregate.BuildStats(events, "")
	assert.Equal(t, aggregate.BuildThread(7, events), stats[7].TopComments)
}
