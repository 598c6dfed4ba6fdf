// Package youtube wraps the Data API v3 search endpoint. Only the fields the
// intel endpoint serves are kept from the upstream response.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rayburnranger/backend/internal/logger"
)

const searchURL = "https://www.googleapis.com/youtube/v3/search"

// VideoItem is the flattened metadata record the rest of the system consumes.
type VideoItem struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Published string `json:"published"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

type Client struct {
	apiKey string
	client *http.Client
	log    *logger.Logger
}

func NewClient(apiKey string, baseLog *logger.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    baseLog.With("client", "YouTubeClient"),
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search runs a video search ordered by date. maxResults is clamped to the
// API's 1..50 range. Items without a videoId (channels, playlists) are
// dropped.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]VideoItem, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("missing YouTube API key")
	}
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > 50 {
		maxResults = 50
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Add("part", "snippet")
	q.Add("q", query)
	q.Add("type", "video")
	q.Add("order", "date")
	q.Add("maxResults", strconv.Itoa(maxResults))
	q.Add("safeSearch", "none")
	q.Add("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube search request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		c.log.Error("youtube search failed", "status", res.StatusCode, "body", string(body))
		return nil, fmt.Errorf("youtube search: HTTP %d", res.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode youtube response: %w", err)
	}

	items := make([]VideoItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it.ID.VideoID == "" {
			continue
		}
		items = append(items, VideoItem{
			VideoID:   it.ID.VideoID,
			Title:     it.Snippet.Title,
			Channel:   it.Snippet.ChannelTitle,
			Published: it.Snippet.PublishedAt,
			URL:       "https://www.youtube.com/watch?v=" + it.ID.VideoID,
			Thumbnail: it.Snippet.Thumbnails.Medium.URL,
		})
	}
	return items, nil
}
