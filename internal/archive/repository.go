package archive

import (
	"context"
	"time"

	"github.com/samber/lo"

	"tunelytics/internal/core"
	"tunelytics/internal/persistence"
)

// Model is an archived stat update row. The archive is append-only and is
// never consulted on the aggregation path — derived state always comes
// from re-folding the ledger.
type Model struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	PostID     int64 `gorm:"index"`
	Likes      int
	Comments   int
	Reposts    int
	Bookmarks  int
	Quotes     int
	Round      int64
	ObservedAt time.Time
}

func (Model) TableName() string {
	return "stat_updates"
}

type Repository struct {
	DB *persistence.DB
}

func (r *Repository) InsertUpdates(ctx context.Context, updates ...core.StatUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	rows := lo.Map(updates, func(u core.StatUpdate, _ int) Model {
		return Model{
			PostID:     u.PostID,
			Likes:      u.Likes,
			Comments:   u.Comments,
			Reposts:    u.Reposts,
			Bookmarks:  u.Bookmarks,
			Quotes:     u.Quotes,
			Round:      u.Round,
			ObservedAt: u.ObservedAt,
		}
	})

	return r.DB.Model(&Model{}).WithContext(ctx).Create(&rows).Error
}
