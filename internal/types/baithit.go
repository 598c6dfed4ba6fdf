package types

import (
	"time"
)

// BaitHit is one evidenced bait mention in one video. Rows are append-only:
// corrections are new rows, never edits. Deleting a video or bait cascades to
// its hits.
type BaitHit struct {
	HitID      uint      `gorm:"column:hit_id;primaryKey;autoIncrement" json:"hit_id"`
	VideoID    string    `gorm:"column:video_id;not null;index" json:"video_id"`
	Video      *Video    `gorm:"belongsTo;constraint:OnDelete:CASCADE;foreignKey:VideoID;references:VideoID" json:"video,omitempty"`
	BaitID     uint      `gorm:"column:bait_id;not null;index" json:"bait_id"`
	Bait       *Bait     `gorm:"belongsTo;constraint:OnDelete:CASCADE;foreignKey:BaitID;references:BaitID" json:"bait,omitempty"`
	BaitText   string    `gorm:"column:bait_text" json:"bait_text"`
	Snippet    string    `gorm:"column:snippet" json:"snippet"`
	TStart     *float64  `gorm:"column:t_start" json:"t_start,omitempty"`
	TEnd       *float64  `gorm:"column:t_end" json:"t_end,omitempty"`
	Confidence int       `gorm:"column:confidence;not null;default:70" json:"confidence"`
	Source     string    `gorm:"column:source" json:"source"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (BaitHit) TableName() string { return "bait_hits" }

// VideoBaitHit is the per-video read shape: hit rows joined with their bait's
// name and category, most recent first.
type VideoBaitHit struct {
	HitID      uint      `json:"hit_id"`
	VideoID    string    `json:"video_id"`
	BaitName   string    `json:"bait_name"`
	Category   *string   `json:"category"`
	BaitText   string    `json:"bait_text"`
	Snippet    string    `json:"snippet"`
	TStart     *float64  `json:"t_start"`
	TEnd       *float64  `json:"t_end"`
	Confidence int       `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// BaitSummary is one row of the cross-video ranking.
type BaitSummary struct {
	BaitName string  `json:"bait_name"`
	Category *string `json:"category"`
	Hits     int64   `json:"hits"`
	Videos   int64   `json:"videos"`
}
