package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"tunelytics/internal/aggregate"
	"tunelytics/internal/core"
	"tunelytics/internal/feed"
	"tunelytics/internal/trending"
)

// GET /v1/feed?page=0&pageSize=20&viewer=0x...
func (s *Server) getFeed(w http.ResponseWriter, r *http.Request) {
	snapshot := s.Source.Current()
	if snapshot == nil {
		// No aggregation round has completed yet. An empty feed is a
		// valid state, not an error.
		writeJSON(w, http.StatusOK, feedResponse{Posts: []feedPost{}})
		return
	}

	page := queryInt(r, "page", 0)
	pageSize := queryInt(r, "pageSize", feed.DefaultPageSize)
	if pageSize > feed.MaxPageSize {
		pageSize = feed.MaxPageSize
	}
	viewer := r.URL.Query().Get("viewer")

	posts := feed.Assemble(snapshot.Posts, snapshot.Stats, snapshot.Quotes, viewer, page, pageSize)

	writeJSON(w, http.StatusOK, feedResponse{
		Posts: lo.Map(posts, func(p core.FeedPost, _ int) feedPost {
			return toFeedPost(p)
		}),
		Meta: feedMeta{Page: page, PageSize: pageSize, Round: snapshot.Round},
	})
}

// GET /v1/posts/{id}/stats?viewer=0x...
func (s *Server) getPostStats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	stats := core.PostStats{TargetID: id}
	var quotes int

	if snapshot := s.Source.Current(); snapshot != nil {
		if found, ok := snapshot.Stats[id]; ok {
			stats = *found
		}
		quotes = snapshot.Quotes[id]
	}

	if viewer := r.URL.Query().Get("viewer"); viewer != "" {
		stats = aggregate.ForViewer(stats, viewer)
	}

	writeJSON(w, http.StatusOK, toStats(stats, quotes))
}

// GET /v1/posts/{id}/comments
func (s *Server) getPostComments(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var thread []core.Comment
	if snapshot := s.Source.Current(); snapshot != nil {
		if stats, ok := snapshot.Stats[id]; ok {
			thread = stats.TopComments
		}
	}

	writeJSON(w, http.StatusOK, commentsResponse{
		Comments: lo.Map(thread, func(c core.Comment, _ int) comment {
			return toComment(c)
		}),
	})
}

// GET /v1/trending?limit=20&windowHours=168
func (s *Server) getTrending(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	window := time.Duration(queryInt(r, "windowHours", 0)) * time.Hour

	var scores []core.TokenScore
	if snapshot := s.Source.Current(); snapshot != nil {
		candidates := lo.Uniq(lo.Map(snapshot.Plays, func(p core.PlayEvent, _ int) int64 {
			return p.TokenID
		}))
		scores = trending.Score(snapshot.Plays, candidates, window, limit, time.Now())
	}

	writeJSON(w, http.StatusOK, trendingResponse{
		Tokens: lo.Map(scores, func(s core.TokenScore, _ int) tokenScore {
			return tokenScore{
				TokenID:         s.TokenID,
				Score:           s.Score,
				PlayCount:       s.PlayCount,
				UniqueListeners: s.UniqueListeners,
				RecencyBoost:    s.RecencyBoost,
			}
		}),
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
