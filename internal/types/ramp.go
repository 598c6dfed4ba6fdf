package types

import (
	"time"

	"gorm.io/datatypes"
)

// Ramp is one boat-ramp access point pulled from the ArcGIS layer. RawJSON
// keeps the full upstream feature so nothing is lost in the flattening.
type Ramp struct {
	RampID    string         `gorm:"column:ramp_id;primaryKey" json:"ramp_id"`
	Name      string         `gorm:"column:name" json:"name"`
	Lat       float64        `gorm:"column:lat" json:"lat"`
	Lng       float64        `gorm:"column:lng" json:"lng"`
	RampType  string         `gorm:"column:ramp_type" json:"ramp_type"`
	RawJSON   datatypes.JSON `gorm:"column:raw_json" json:"raw_json,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
}

func (Ramp) TableName() string { return "ramps" }

// RampLink associates a video with a ramp it likely covers.
type RampLink struct {
	LinkID     string    `gorm:"column:link_id;primaryKey" json:"link_id"`
	VideoID    string    `gorm:"column:video_id;not null;index" json:"video_id"`
	Video      *Video    `gorm:"belongsTo;constraint:OnDelete:CASCADE;foreignKey:VideoID;references:VideoID" json:"video,omitempty"`
	RampID     string    `gorm:"column:ramp_id;not null;index" json:"ramp_id"`
	Ramp       *Ramp     `gorm:"belongsTo;constraint:OnDelete:CASCADE;foreignKey:RampID;references:RampID" json:"ramp,omitempty"`
	Confidence int       `gorm:"column:confidence;not null;default:75" json:"confidence"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (RampLink) TableName() string { return "links" }
