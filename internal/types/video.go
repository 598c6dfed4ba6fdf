package types

import (
	"time"
)

// Video is one YouTube video this system knows about. Rows are created or
// refreshed by upsert (metadata fetch or ingest, whichever arrives first) and
// never deleted by this subsystem. Published stays the upstream ISO string.
type Video struct {
	VideoID   string    `gorm:"column:video_id;primaryKey" json:"video_id"`
	Title     string    `gorm:"column:title" json:"title"`
	Channel   string    `gorm:"column:channel" json:"channel"`
	Published string    `gorm:"column:published" json:"published"`
	URL       string    `gorm:"column:url" json:"url"`
	Thumbnail string    `gorm:"column:thumbnail" json:"thumbnail"`
	Source    string    `gorm:"column:source" json:"source"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Video) TableName() string { return "videos" }
