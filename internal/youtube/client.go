// Package youtube provides the YouTube Data API v3 client used to browse
// channel content: recency-ordered channel search with continuation tokens
// and the batched video detail fetch.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m1nor/minorplay/internal/structures"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// The videos endpoint accepts at most this many ids per request.
const maxDetailBatch = 50

// ErrMissingAPIKey is returned when a client is constructed without a
// credential. This is a configuration error and must surface before any
// network call is attempted.
var ErrMissingAPIKey = errors.New("youtube: api key required")

// DetailParts is the default field selection for detail fetches.
var DetailParts = []string{"contentDetails"}

// Client wraps the YouTube Data API v3 service.
type Client struct {
	service *youtube.Service
}

// New creates a new API client.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{service: service}, nil
}

// SearchVideos fetches one page of a channel's videos, newest first. An
// empty pageToken requests the first page. When shortsOnly is set the
// upstream duration pre-filter is applied; the classifier still has the
// final say on what counts as short-form.
func (c *Client) SearchVideos(ctx context.Context, channelID string, pageSize int64, pageToken string, shortsOnly bool) (structures.Page, error) {
	call := c.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		Order("date").
		Type("video").
		MaxResults(pageSize).
		Context(ctx)

	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	if shortsOnly {
		call = call.VideoDuration("short")
	}

	resp, err := call.Do()
	if err != nil {
		return structures.Page{}, fmt.Errorf("youtube: search channel %s: %w", channelID, err)
	}

	page := structures.Page{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}

		published, perr := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if perr != nil {
			published = time.Time{}
		}

		page.Items = append(page.Items, structures.ContentItem{
			ID:           item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelName:  item.Snippet.ChannelTitle,
			PublishedAt:  published,
			ThumbnailURL: bestThumbnail(item.Snippet.Thumbnails),
		})
	}

	return page, nil
}

// VideoDetails fetches detail records for the given video ids, partitioning
// the input into batches of at most 50 issued concurrently. The flattened
// result keeps batches together but guarantees no order across them. Any
// failed batch fails the whole call: callers get complete detail data or
// none.
func (c *Client) VideoDetails(ctx context.Context, ids []string, parts []string) ([]*youtube.Video, error) {
	return fetchInBatches(ctx, ids, func(ctx context.Context, batch []string) ([]*youtube.Video, error) {
		resp, err := c.service.Videos.List(parts).
			Id(batch...).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("youtube: video details: %w", err)
		}
		return resp.Items, nil
	})
}

// Durations fetches known durations (in seconds) for the given video ids.
// Ids whose duration is missing or unparseable are absent from the result;
// the classifier treats them as duration-unknown.
func (c *Client) Durations(ctx context.Context, ids []string) (map[string]int, error) {
	details, err := c.VideoDetails(ctx, ids, DetailParts)
	if err != nil {
		return nil, err
	}

	durations := make(map[string]int, len(details))
	for _, d := range details {
		if d == nil || d.ContentDetails == nil {
			continue
		}
		if seconds, ok := ParseDuration(d.ContentDetails.Duration); ok {
			durations[d.Id] = seconds
		}
	}

	return durations, nil
}

// fetchInBatches partitions ids into chunks of maxDetailBatch, runs fetch
// once per chunk concurrently, and joins the results in chunk order. Empty
// input issues no request.
func fetchInBatches(ctx context.Context, ids []string, fetch func(context.Context, []string) ([]*youtube.Video, error)) ([]*youtube.Video, error) {
	var valid []string
	for _, id := range ids {
		if id != "" {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}

	batches := chunkIDs(valid, maxDetailBatch)

	results := make([][]*youtube.Video, len(batches))
	errs := make([]error, len(batches))

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func(i int, batch []string) {
			defer wg.Done()
			results[i], errs[i] = fetch(ctx, batch)
		}(i, batch)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var flat []*youtube.Video
	for _, r := range results {
		flat = append(flat, r...)
	}

	return flat, nil
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	return append(chunks, ids)
}

// bestThumbnail resolves the best available thumbnail by a fixed priority
// order, highest resolution first.
func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}

	for _, candidate := range []*youtube.Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if candidate != nil && candidate.Url != "" {
			return candidate.Url
		}
	}

	return ""
}
