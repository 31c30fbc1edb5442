package api

import (
	"slices"

	"github.com/samber/lo"

	"tunelytics/internal/core"
)

type feedResponse struct {
	Posts []feedPost `json:"posts"`
	Meta  feedMeta   `json:"meta"`
}

type feedMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Round    int64 `json:"round"`
}

type feedPost struct {
	ID           int64     `json:"id"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	Timestamp    int64     `json:"timestamp"`
	QuotedPostID int64     `json:"quotedPostId,omitempty"`
	ReplyToID    int64     `json:"replyToId,omitempty"`
	Stats        stats     `json:"stats"`
	QuotedPost   *feedPost `json:"quotedPost,omitempty"`
}

type stats struct {
	TargetID       int64     `json:"targetId"`
	Likes          int       `json:"likes"`
	Comments       int       `json:"comments"`
	Reposts        int       `json:"reposts"`
	Bookmarks      int       `json:"bookmarks"`
	Quotes         int       `json:"quotes"`
	UserLiked      bool      `json:"userLiked"`
	UserReposted   bool      `json:"userReposted"`
	UserBookmarked bool      `json:"userBookmarked"`
	LikedBy        []string  `json:"likedBy"`
	RepostedBy     []string  `json:"repostedBy"`
	TopComments    []comment `json:"topComments"`
}

type comment struct {
	ID        int64     `json:"id"`
	Timestamp int64     `json:"timestamp"`
	FromUser  string    `json:"fromUser"`
	Content   string    `json:"content"`
	ParentID  int64     `json:"parentId"`
	Replies   []comment `json:"replies,omitempty"`
}

type commentsResponse struct {
	Comments []comment `json:"comments"`
}

type trendingResponse struct {
	Tokens []tokenScore `json:"tokens"`
}

type tokenScore struct {
	TokenID         int64   `json:"tokenId"`
	Score           float64 `json:"score"`
	PlayCount       int     `json:"playCount"`
	UniqueListeners int     `json:"uniqueListeners"`
	RecencyBoost    float64 `json:"recencyBoost"`
}

func toFeedPost(p core.FeedPost) feedPost {
	fp := feedPost{
		ID:           p.ID,
		Author:       p.Author,
		Content:      p.Content,
		Timestamp:    p.Timestamp,
		QuotedPostID: p.QuotedPostID,
		ReplyToID:    p.ReplyToID,
		Stats:        toStats(p.Stats, p.Quotes),
	}
	if p.QuotedPost != nil {
		quoted := toFeedPost(*p.QuotedPost)
		fp.QuotedPost = &quoted
	}
	return fp
}

func toStats(s core.PostStats, quotes int) stats {
	return stats{
		TargetID:       s.TargetID,
		Likes:          s.Likes,
		Comments:       s.Comments,
		Reposts:        s.Reposts,
		Bookmarks:      s.Bookmarks,
		Quotes:         quotes,
		UserLiked:      s.UserLiked,
		UserReposted:   s.UserReposted,
		UserBookmarked: s.UserBookmarked,
		LikedBy:        members(s.LikedBy),
		RepostedBy:     members(s.RepostedBy),
		TopComments: lo.Map(s.TopComments, func(c core.Comment, _ int) comment {
			return toComment(c)
		}),
	}
}

func toComment(c core.Comment) comment {
	return comment{
		ID:        c.ID,
		Timestamp: c.Timestamp,
		FromUser:  c.FromUser,
		Content:   c.Content,
		ParentID:  c.ParentID,
		Replies: lo.Map(c.Replies, func(r core.Interaction, _ int) comment {
			return comment{
				ID:        r.ID,
				Timestamp: r.Timestamp,
				FromUser:  r.FromUser,
				Content:   r.Content,
				ParentID:  r.ParentID,
			}
		}),
	}
}

func members(set map[string]bool) []string {
	keys := lo.Keys(set)
	slices.Sort(keys)
	return keys
}
