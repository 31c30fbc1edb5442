package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tunelytics/internal/core"
)

func TestAddressKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0xabcdef", core.AddressKey("0xAbCdEf"))
	assert.True(t, core.SameAddress("0xABC", "0xabc"))
	assert.False(t, core.SameAddress("0xabc", "0xdef"))
}

func TestToggleRelation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind     core.InteractionType
		relation core.Relation
		activate bool
		ok       bool
	}{
		{core.InteractionLike, core.RelationLike, true, true},
		{core.InteractionUnlike, core.RelationLike, false, true},
		{core.InteractionRepost, core.RelationRepost, true, true},
		{core.InteractionUnrepost, core.RelationRepost, false, true},
		{core.InteractionBookmark, core.RelationBookmark, true, true},
		{core.InteractionUnbookmark, core.RelationBookmark, false, true},
		{core.InteractionComment, "", false, false},
		{core.InteractionTip, "", false, false},
		{core.InteractionFollow, "", false, false},
	}

	for _, c := range cases {
		relation, activate, ok := core.ToggleRelation(c.kind)
		assert.Equal(t, c.relation, relation, c.kind.String())
		assert.Equal(t, c.activate, activate, c.kind.String())
		assert.Equal(t, c.ok, ok, c.kind.String())
	}
}

func TestInteractionTypeValid(t *testing.T) {
	t.Parallel()

	assert.True(t, core.InteractionLike.Valid())
	assert.True(t, core.InteractionUnfollow.Valid())
	assert.False(t, core.InteractionType(0).Valid())
	assert.False(t, core.InteractionType(11).Valid())
}

func TestTargetTypeValid(t *testing.T) {
	t.Parallel()

	assert.True(t, core.TargetPost.Valid())
	assert.True(t, core.TargetUser.Valid())
	assert.False(t, core.TargetType(0).Valid())
	assert.False(t, core.TargetType(4).Valid())
}
