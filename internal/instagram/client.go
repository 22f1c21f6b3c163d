// Package instagram reads recent media from the Instagram Graph API.
package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the Graph API host for Instagram basic display tokens.
const DefaultBaseURL = "https://graph.instagram.com"

const mediaFields = "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp,like_count,username"

// timestampLayout is the Graph API format, e.g. 2024-03-01T18:10:00+0000.
const timestampLayout = "2006-01-02T15:04:05-0700"

// Media is one post as returned by the Graph API.
type Media struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
	LikeCount    int    `json:"like_count"`
	Username     string `json:"username"`
}

// ImageURL prefers the thumbnail for videos, whose media URL is not an image.
func (m Media) ImageURL() string {
	if m.MediaType == "VIDEO" && m.ThumbnailURL != "" {
		return m.ThumbnailURL
	}
	return m.MediaURL
}

// PostedAt parses the timestamp, returning the zero time when it is malformed.
func (m Media) PostedAt() time.Time {
	t, err := time.Parse(timestampLayout, m.Timestamp)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, m.Timestamp)
	}
	return t
}

// Client fetches media for the account that owns the access token.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a client. An empty token yields a disabled client.
func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether an access token is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.token != ""
}

// RecentMedia returns up to limit of the newest posts.
func (c *Client) RecentMedia(ctx context.Context, limit int) ([]Media, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("instagram access token not configured")
	}

	q := url.Values{}
	q.Set("fields", mediaFields)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("access_token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me/media?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("instagram API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page struct {
		Data []Media `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode media: %w", err)
	}
	return page.Data, nil
}
