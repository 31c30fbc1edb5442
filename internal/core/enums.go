package core

// InteractionType mirrors the on-chain u8 enum. Values outside the declared
// range are rejected by the normalizer.
type InteractionType uint8

const (
	InteractionLike InteractionType = iota + 1
	InteractionUnlike
	InteractionComment
	InteractionRepost
	InteractionUnrepost
	InteractionBookmark
	InteractionUnbookmark
	InteractionTip
	InteractionFollow
	InteractionUnfollow
)

func (t InteractionType) Valid() bool {
	return t >= InteractionLike && t <= InteractionUnfollow
}

func (t InteractionType) String() string {
	switch t {
	case InteractionLike:
		return "like"
	case InteractionUnlike:
		return "unlike"
	case InteractionComment:
		return "comment"
	case InteractionRepost:
		return "repost"
	case InteractionUnrepost:
		return "unrepost"
	case InteractionBookmark:
		return "bookmark"
	case InteractionUnbookmark:
		return "unbookmark"
	case InteractionTip:
		return "tip"
	case InteractionFollow:
		return "follow"
	case InteractionUnfollow:
		return "unfollow"
	default:
		return "unknown"
	}
}

// TargetType mirrors the on-chain u8 target enum.
type TargetType uint8

const (
	TargetPost TargetType = iota + 1
	TargetComment
	TargetUser
)

func (t TargetType) Valid() bool {
	return t >= TargetPost && t <= TargetUser
}

func (t TargetType) String() string {
	switch t {
	case TargetPost:
		return "post"
	case TargetComment:
		return "comment"
	case TargetUser:
		return "user"
	default:
		return "unknown"
	}
}

// Relation is a toggle-class relation between a user and a target.
type Relation string

const (
	RelationLike     Relation = "like"
	RelationRepost   Relation = "repost"
	RelationBookmark Relation = "bookmark"
)

// ToggleRelation maps an interaction type to the relation it toggles.
// activate is true for the activating half of the pair. ok is false for
// types that are not toggle-class (comment, tip, follow, ...).
func ToggleRelation(t InteractionType) (rel Relation, activate bool, ok bool) {
	switch t {
	case InteractionLike:
		return RelationLike, true, true
	case InteractionUnlike:
		return RelationLike, false, true
	case InteractionRepost:
		return RelationRepost, true, true
	case InteractionUnrepost:
		return RelationRepost, false, true
	case InteractionBookmark:
		return RelationBookmark, true, true
	case InteractionUnbookmark:
		return RelationBookmark, false, true
	default:
		return "", false, false
	}
}
