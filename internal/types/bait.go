package types

import (
	"time"
)

// Bait is a canonical bait entry, created lazily the first time a hit
// references its name. The unique index on name is what serializes concurrent
// resolution of the same bait; a name maps to exactly one id for the lifetime
// of the store.
type Bait struct {
	BaitID    uint      `gorm:"column:bait_id;primaryKey;autoIncrement" json:"bait_id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Category  *string   `gorm:"column:category" json:"category,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Bait) TableName() string { return "baits" }

// BaitCategory is the optional taxonomy table backing category validation.
// Seeded from the registry at migration time.
type BaitCategory struct {
	Slug  string `gorm:"column:slug;primaryKey" json:"slug"`
	Label string `gorm:"column:label;not null" json:"label"`
}

func (BaitCategory) TableName() string { return "bait_categories" }
