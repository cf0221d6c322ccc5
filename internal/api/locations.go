package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/peakfindr/peakfindr/internal/model"
)

type locationResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	MapsURL     *string `json:"maps_url"`
	PriceLevel  *int    `json:"price_level"`
	Area        *string `json:"area"`
	CreatedAt   string  `json:"created_at"`
}

type locationImage struct {
	ID         int    `json:"id"`
	LocationID string `json:"location_id"`
	FilePath   string `json:"file_path"`
}

type tagResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type locationDetailResponse struct {
	Location locationResponse `json:"location"`
	Images   []locationImage  `json:"images"`
	Tags     []tagResponse    `json:"tags"`
}

// LoadFeed fetches the discovery feed for user, or the client's user when
// empty. Locations the user already saved are excluded by the backend.
// Entries with malformed ids are dropped.
func (c *Client) LoadFeed(ctx context.Context, user string) ([]model.FeedItem, error) {
	details, err := do[[]locationDetailResponse](ctx, c, http.MethodGet, "/locations/discover"+limitQuery(c.limit), user, nil)
	if err != nil {
		return nil, err
	}

	items := make([]model.FeedItem, 0, len(details))
	for _, d := range details {
		item, ok := c.toFeedItem(d)
		if !ok {
			c.logger.Warn("Dropping location with invalid id", zap.String("id", d.Location.ID))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Client) toFeedItem(d locationDetailResponse) (model.FeedItem, bool) {
	key, err := model.ParseKey(d.Location.ID)
	if err != nil || key.IsNil() {
		return model.FeedItem{}, false
	}

	item := model.FeedItem{
		Key:         key,
		Name:        d.Location.Name,
		Description: deref(d.Location.Description),
		Area:        deref(d.Location.Area),
		MapsURL:     deref(d.Location.MapsURL),
		Category:    model.CategoryAll,
	}
	if d.Location.PriceLevel != nil {
		item.PriceLevel = *d.Location.PriceLevel
	}
	if len(d.Images) > 0 {
		item.ImageRef = c.ImageURL(key)
	}

	item.Tags = make([]model.Tag, 0, len(d.Tags))
	for _, t := range d.Tags {
		item.Tags = append(item.Tags, model.Tag{ID: t.ID, Name: t.Name})
		// The first tag naming a category classifies the item.
		if item.Category == model.CategoryAll {
			item.Category = model.ParseCategory(t.Name)
		}
	}
	return item, true
}

// ImageURL returns the main image endpoint for a location
func (c *Client) ImageURL(key model.Key) string {
	return c.baseURL + "/locations/" + key.String() + "/image"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
