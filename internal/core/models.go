package core

import (
	"strings"
	"time"
)

// MaxContentLength is the write-side limit for post and comment text.
// The normalizer rejects rows that exceed it anyway.
const MaxContentLength = 5000

// RawRecord is a positional row as returned by the ledger indexer. Field
// order is significant; see the schema constants in internal/ledger.
type RawRecord []any

// Interaction is an immutable social event appended to the ledger by an
// independent writer. "unlike", "delete" and friends are new records, the
// original record is never mutated.
type Interaction struct {
	ID         int64
	Timestamp  int64 // milliseconds
	Type       InteractionType
	TargetID   int64
	TargetType TargetType
	FromUser   string // verbatim address, lower-cased only for comparisons
	Content    string
	ParentID   int64 // 0 = top-level comment
	TipAmount  int64 // wei-scale
}

// Time returns the interaction timestamp as time.Time.
func (i Interaction) Time() time.Time {
	return time.UnixMilli(i.Timestamp)
}

// Post is the subset of the on-chain post record the aggregation core needs.
type Post struct {
	ID           int64
	Timestamp    int64
	Content      string
	QuotedPostID int64 // 0 = not a quote
	ReplyToID    int64
	Author       string
	IsDeleted    bool
}

// PlayEvent is an immutable listen record for a token.
type PlayEvent struct {
	ID        int64
	Timestamp int64
	TokenID   int64
	Listener  string
	Duration  int64 // seconds
	Source    string
}

// PostStats is derived state, recomputed from scratch every aggregation
// round and never persisted as a source of truth.
type PostStats struct {
	TargetID  int64
	Likes     int
	Comments  int
	Reposts   int
	Bookmarks int

	UserLiked      bool
	UserReposted   bool
	UserBookmarked bool

	LikedBy      map[string]bool
	RepostedBy   map[string]bool
	BookmarkedBy map[string]bool

	TopComments []Comment
}

// Comment is a top-level comment annotated with its direct replies. The
// tree is two levels deep, replies to replies are not nested further.
type Comment struct {
	Interaction
	Replies []Interaction
}

// FeedPost is a post merged with its derived stats, ready for a caller.
type FeedPost struct {
	Post
	Stats      PostStats
	Quotes     int
	QuotedPost *FeedPost
}

// TokenScore is a trending score for a single token.
type TokenScore struct {
	TokenID         int64
	Score           float64
	PlayCount       int
	UniqueListeners int
	RecencyBoost    float64
}

// StatUpdate is the per-post message published to JetStream after every
// aggregation round, and the unit the archiver persists.
type StatUpdate struct {
	PostID     int64     `json:"post_id"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	Reposts    int       `json:"reposts"`
	Bookmarks  int       `json:"bookmarks"`
	Quotes     int       `json:"quotes"`
	Round      int64     `json:"round"`
	ObservedAt time.Time `json:"observed_at"`
}

// Snapshot is the result of one aggregation round over everything the
// ledger reader could see at the time. Repeated rounds over the same
// records produce identical snapshots.
type Snapshot struct {
	Round   int64
	TakenAt time.Time

	Posts  []Post
	Stats  map[int64]*PostStats
	Quotes map[int64]int
	Plays  []PlayEvent
}

// AddressKey canonicalizes an address for comparisons and set membership.
// Addresses are hex, canonical form is lower-case.
func AddressKey(addr string) string {
	return strings.ToLower(addr)
}

// SameAddress reports whether two addresses refer to the same account.
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}
