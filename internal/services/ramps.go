package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rayburnranger/backend/internal/clients/arcgis"
	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/repos"
	"github.com/rayburnranger/backend/internal/types"
)

// DefaultLinkConfidence is used when a video-to-ramp link arrives without a
// score.
const DefaultLinkConfidence = 75

type RampService interface {
	// GeoJSON proxies the access-points layer untouched.
	GeoJSON(ctx context.Context) (json.RawMessage, error)
	// Sync fetches the layer and upserts one ramp row per feature,
	// returning how many rows were written.
	Sync(ctx context.Context) (int, error)
	LinkVideo(ctx context.Context, videoID, rampID string, confidence *int) (*types.RampLink, error)
}

type rampService struct {
	db       *gorm.DB
	log      *logger.Logger
	client   *arcgis.Client
	rampRepo repos.RampRepo
}

func NewRampService(db *gorm.DB, baseLog *logger.Logger, client *arcgis.Client, rampRepo repos.RampRepo) RampService {
	return &rampService{
		db:       db,
		log:      baseLog.With("service", "RampService"),
		client:   client,
		rampRepo: rampRepo,
	}
}

func (s *rampService) GeoJSON(ctx context.Context) (json.RawMessage, error) {
	if s.client == nil {
		return nil, fmt.Errorf("access points layer is not configured")
	}
	return s.client.QueryGeoJSON(ctx)
}

type geoFeature struct {
	ID       any `json:"id"`
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geoCollection struct {
	Features []geoFeature `json:"features"`
}

func (s *rampService) Sync(ctx context.Context) (int, error) {
	raw, err := s.GeoJSON(ctx)
	if err != nil {
		return 0, err
	}
	var collection geoCollection
	if err := json.Unmarshal(raw, &collection); err != nil {
		return 0, fmt.Errorf("parse access points geojson: %w", err)
	}

	written := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, feature := range collection.Features {
			ramp, err := rampFromFeature(feature)
			if err != nil {
				s.log.Warn("skipping unusable feature", "feature_index", i, "error", err)
				continue
			}
			if err := s.rampRepo.Upsert(ctx, tx, ramp); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("synced ramps", "written", written, "features", len(collection.Features))
	return written, nil
}

func (s *rampService) LinkVideo(ctx context.Context, videoID, rampID string, confidence *int) (*types.RampLink, error) {
	conf := DefaultLinkConfidence
	if confidence != nil {
		conf = *confidence
	}
	link := &types.RampLink{
		LinkID:     uuid.NewString(),
		VideoID:    videoID,
		RampID:     rampID,
		Confidence: conf,
	}
	if err := s.rampRepo.CreateLink(ctx, nil, link); err != nil {
		return nil, err
	}
	return link, nil
}

func rampFromFeature(feature geoFeature) (*types.Ramp, error) {
	id := featureID(feature)
	if id == "" {
		return nil, fmt.Errorf("feature has no usable id")
	}
	if feature.Geometry.Type != "Point" || len(feature.Geometry.Coordinates) < 2 {
		return nil, fmt.Errorf("feature %s is not a point", id)
	}
	raw, err := json.Marshal(feature)
	if err != nil {
		return nil, err
	}
	return &types.Ramp{
		RampID:   id,
		Name:     stringProp(feature.Properties, "Name", "NAME", "name"),
		Lng:      feature.Geometry.Coordinates[0],
		Lat:      feature.Geometry.Coordinates[1],
		RampType: stringProp(feature.Properties, "RampType", "TYPE", "type"),
		RawJSON:  datatypes.JSON(raw),
	}, nil
}

func featureID(feature geoFeature) string {
	if feature.ID != nil {
		return fmt.Sprintf("%v", feature.ID)
	}
	return stringProp(feature.Properties, "OBJECTID", "objectid", "FID")
}

func stringProp(props map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := props[key]; ok && v != nil {
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}
