package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakfindr/peakfindr/internal/model"
)

const (
	testUser  = "0b9f6a5e-4c1d-4a55-9a3e-0d2c1b7e8f10"
	peakID    = "6f1c2a3b-4d5e-4f60-8a71-92b3c4d5e6f7"
	dragonsID = "7a2b3c4d-5e6f-4071-8b82-a3c4d5e6f708"
)

const discoverBody = `[
  {
    "location": {"id": "` + peakID + `", "name": "The Peak", "description": "Highest point on HK Island",
                 "maps_url": "https://maps.example.com/peak", "price_level": 2, "area": "HK Island",
                 "created_at": "2025-01-01T00:00:00"},
    "images": [{"id": 1, "location_id": "` + peakID + `", "file_path": "media/peak.jpg", "created_at": "2025-01-01T00:00:00"}],
    "tags": [{"id": 3, "name": "views"}, {"id": 4, "name": "Sights"}]
  },
  {
    "location": {"id": "not-a-uuid", "name": "Broken", "created_at": "2025-01-01T00:00:00"},
    "images": [], "tags": []
  },
  {
    "location": {"id": "` + dragonsID + `", "name": "Dragon's Back", "description": null,
                 "maps_url": null, "price_level": null, "area": "Shek O", "created_at": "2025-01-01T00:00:00"},
    "images": [], "tags": [{"id": 9, "name": "hiking"}]
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Options{
		BaseURL:   srv.URL + "/",
		Token:     "secret",
		UserID:    testUser,
		FeedLimit: 20,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultFeedLimit, c.limit)

	_, err = NewClient(Options{BaseURL: "::not a url"})
	assert.Error(t, err)
}

func TestLoadFeed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/locations/discover", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, testUser, r.Header.Get(UserIDHeader))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(discoverBody))
	})

	items, err := c.LoadFeed(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 2, "entry with invalid id is dropped")

	peak := items[0]
	assert.Equal(t, model.MustParseKey(peakID), peak.Key)
	assert.Equal(t, "The Peak", peak.Name)
	assert.Equal(t, "HK Island", peak.Area)
	assert.Equal(t, "https://maps.example.com/peak", peak.MapsURL)
	assert.Equal(t, 2, peak.PriceLevel)
	assert.Equal(t, model.CategorySights, peak.Category)
	assert.Equal(t, []string{"views", "Sights"}, peak.TagNames())
	assert.Equal(t, c.BaseURL()+"/locations/"+peakID+"/image", peak.ImageRef)

	dragons := items[1]
	assert.Equal(t, "Dragon's Back", dragons.Name)
	assert.Empty(t, dragons.Description)
	assert.Empty(t, dragons.ImageRef)
	assert.Zero(t, dragons.PriceLevel)
	assert.Equal(t, model.CategoryHiking, dragons.Category)
}

func TestLoadFeed_ExplicitUser(t *testing.T) {
	const other = "11111111-2222-4333-8444-555555555555"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, other, r.Header.Get(UserIDHeader))
		_, _ = w.Write([]byte(`[]`))
	})

	items, err := c.LoadFeed(context.Background(), other)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadFeed_HTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"fastapi detail", http.StatusUnauthorized, `{"detail":"X-User-ID header missing"}`, "X-User-ID header missing"},
		{"plain text", http.StatusBadGateway, "upstream down", "upstream down"},
		{"empty body", http.StatusInternalServerError, "", "Request failed"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				_, _ = w.Write([]byte(test.body))
			})

			_, err := c.LoadFeed(context.Background(), "")
			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, test.status, httpErr.Status)
			assert.Equal(t, test.message, httpErr.Message)
		})
	}
}

func TestLoadFeed_BadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	})
	_, err := c.LoadFeed(context.Background(), "")
	assert.Error(t, err)
}

func TestLoadFeed_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.LoadFeed(ctx, "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRecordInteractions(t *testing.T) {
	key := model.MustParseKey(peakID)

	tests := []struct {
		name string
		call func(*Client) error
		path string
	}{
		{"save", func(c *Client) error { return c.RecordSave(context.Background(), key) }, "/interactions/save/" + peakID},
		{"like", func(c *Client) error { return c.RecordLike(context.Background(), key) }, "/interactions/like/" + peakID},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var gotPath string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, testUser, r.Header.Get(UserIDHeader))
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(`{"message":"ok"}`))
			})

			require.NoError(t, test.call(c))
			assert.Equal(t, test.path, gotPath)
		})
	}
}

func TestRecordSave_AlreadySaved(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Already saved"}`))
	})

	err := c.RecordSave(context.Background(), model.MustParseKey(peakID))
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "HTTP 400: Already saved", httpErr.Error())
}

func TestSaver(t *testing.T) {
	key := model.MustParseKey(peakID)

	tests := []struct {
		action SaveAction
		paths  []string
	}{
		{"", []string{"/interactions/save/" + peakID}},
		{SaveActionSave, []string{"/interactions/save/" + peakID}},
		{SaveActionLike, []string{"/interactions/like/" + peakID}},
		{SaveActionBoth, []string{"/interactions/save/" + peakID, "/interactions/like/" + peakID}},
		{"bogus", []string{"/interactions/save/" + peakID}},
	}

	for _, test := range tests {
		t.Run(string(test.action), func(t *testing.T) {
			var mu sync.Mutex
			var paths []string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				paths = append(paths, r.URL.Path)
				mu.Unlock()
				_, _ = w.Write([]byte(`{"message":"ok"}`))
			})

			require.NoError(t, c.Saver(test.action).RecordSave(context.Background(), key))
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, test.paths, paths)
		})
	}
}

func TestSaver_BothKeepsGoingAfterSaveFailure(t *testing.T) {
	var liked bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/interactions/save/"+peakID {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"Already saved"}`))
			return
		}
		liked = true
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	err := c.Saver(SaveActionBoth).RecordSave(context.Background(), model.MustParseKey(peakID))
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.True(t, liked)
}

func TestParseSaveAction(t *testing.T) {
	for _, s := range []string{"", "save", "like", "both"} {
		_, err := ParseSaveAction(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseSaveAction("favourite")
	assert.Error(t, err)
}
