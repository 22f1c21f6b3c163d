package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RecentMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/media", r.URL.Path)
		assert.Equal(t, "token-123", r.URL.Query().Get("access_token"))
		assert.Equal(t, "6", r.URL.Query().Get("limit"))
		assert.Contains(t, r.URL.Query().Get("fields"), "permalink")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"1","caption":"E30","media_type":"IMAGE","media_url":"https://cdn.example.com/1.jpg","timestamp":"2024-03-01T18:10:00+0000","like_count":12},
			{"id":"2","media_type":"VIDEO","media_url":"https://cdn.example.com/2.mp4","thumbnail_url":"https://cdn.example.com/2.jpg","timestamp":"2024-03-02T09:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	media, err := NewClient("token-123", srv.URL).RecentMedia(context.Background(), 6)

	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, "https://cdn.example.com/1.jpg", media[0].ImageURL())
	assert.Equal(t, time.Date(2024, 3, 1, 18, 10, 0, 0, time.UTC), media[0].PostedAt().UTC())
	assert.Equal(t, "https://cdn.example.com/2.jpg", media[1].ImageURL())
	assert.Equal(t, 2, media[1].PostedAt().Day())
}

func TestClient_Errors(t *testing.T) {
	disabled := NewClient("", "")
	assert.False(t, disabled.Enabled())
	_, err := disabled.RecentMedia(context.Background(), 5)
	assert.Error(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"token expired"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err = NewClient("token", srv.URL).RecentMedia(context.Background(), 5)
	assert.ErrorContains(t, err, "status 400")

	assert.True(t, Media{Timestamp: "yesterday"}.PostedAt().IsZero())
}
