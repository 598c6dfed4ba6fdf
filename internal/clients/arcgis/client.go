// Package arcgis queries a FeatureServer layer for its features as GeoJSON.
package arcgis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rayburnranger/backend/internal/logger"
)

type Client struct {
	layerURL string
	client   *http.Client
	log      *logger.Logger
}

// NewClient validates the configured layer URL up front. It must point at a
// concrete layer (".../FeatureServer/0"), not the service root.
func NewClient(layerURL string, baseLog *logger.Logger) (*Client, error) {
	layerURL = strings.TrimSpace(layerURL)
	if layerURL == "" {
		return nil, fmt.Errorf("access points layer URL is not configured")
	}
	if strings.HasSuffix(layerURL, "/FeatureServer") || strings.HasSuffix(layerURL, "/FeatureServer/") {
		return nil, fmt.Errorf("layer URL must end with a layer index (e.g. /0), not the FeatureServer root")
	}
	return &Client{
		layerURL: layerURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      baseLog.With("client", "ArcGISClient"),
	}, nil
}

// QueryGeoJSON fetches every feature of the layer in WGS84 as raw GeoJSON.
func (c *Client) QueryGeoJSON(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.layerURL+"/query", nil)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Add("where", "1=1")
	q.Add("outFields", "*")
	q.Add("outSR", "4326")
	q.Add("f", "geojson")
	req.URL.RawQuery = q.Encode()

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arcgis query request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arcgis query failed: HTTP %d", res.StatusCode)
	}
	var raw json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode arcgis response: %w", err)
	}
	return raw, nil
}
