package systems

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m1nor/minorplay/internal/structures"
	"github.com/m1nor/minorplay/internal/youtube"
)

// source is the slice of the API client the feed system depends on.
type source interface {
	SearchVideos(ctx context.Context, channelID string, pageSize int64, pageToken string, shortsOnly bool) (structures.Page, error)
	Durations(ctx context.Context, ids []string) (map[string]int, error)
}

// FeedSystem aggregates channel content: it orchestrates search calls,
// joins batched duration details, classifies items, and merges results
// across channels.
type FeedSystem struct {
	config *structures.Config
	client source
}

// NewFeedSystem creates a new feed system.
func NewFeedSystem(cfg *structures.Config) *FeedSystem {
	return &FeedSystem{config: cfg}
}

// Initialize creates the API client. The missing-credential case fails here,
// before any network call.
func (fs *FeedSystem) Initialize(ctx context.Context) error {
	client, err := youtube.New(ctx, fs.config.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create YouTube API client: %w", err)
	}

	fs.client = client
	return nil
}

// FetchVideos fetches one classified page of a channel's long-form videos.
// Duration details are joined before classification runs, so the classifier
// never sees partial detail data.
func (fs *FeedSystem) FetchVideos(ctx context.Context, channelID, pageToken string) (structures.Page, error) {
	if fs.client == nil {
		return structures.Page{}, fmt.Errorf("API client not initialized")
	}

	page, err := fs.client.SearchVideos(ctx, channelID, fs.config.PageSize, pageToken, false)
	if err != nil {
		return structures.Page{}, err
	}

	enriched, err := fs.enrich(ctx, page.Items)
	if err != nil {
		return structures.Page{}, err
	}

	kept := make([]structures.ContentItem, 0, len(enriched))
	for _, item := range enriched {
		if youtube.IsLongForm(item.Duration, item.DurationKnown, item.Title, item.Description) {
			kept = append(kept, item)
		}
	}

	return structures.Page{Items: kept, NextPageToken: page.NextPageToken}, nil
}

// FetchShorts fetches one classified page of a channel's short-form clips.
func (fs *FeedSystem) FetchShorts(ctx context.Context, channelID, pageToken string) (structures.Page, error) {
	if fs.client == nil {
		return structures.Page{}, fmt.Errorf("API client not initialized")
	}

	page, err := fs.client.SearchVideos(ctx, channelID, fs.config.PageSize, pageToken, true)
	if err != nil {
		return structures.Page{}, err
	}

	enriched, err := fs.enrich(ctx, page.Items)
	if err != nil {
		return structures.Page{}, err
	}

	kept := make([]structures.ContentItem, 0, len(enriched))
	for _, item := range enriched {
		if youtube.IsShortForm(item.Duration, item.DurationKnown, item.Title, item.Description) {
			item.IsShortForm = true
			kept = append(kept, item)
		}
	}

	return structures.Page{Items: kept, NextPageToken: page.NextPageToken}, nil
}

// FetchAllChannels fetches one page per channel in parallel and merges the
// results by published date, newest first. This mode is a one-shot snapshot:
// there is no continuation across channels.
func (fs *FeedSystem) FetchAllChannels(ctx context.Context, channelIDs []string) ([]structures.ContentItem, error) {
	if fs.client == nil {
		return nil, fmt.Errorf("API client not initialized")
	}

	pages := make([]structures.Page, len(channelIDs))
	errs := make([]error, len(channelIDs))

	var wg sync.WaitGroup
	for i, channelID := range channelIDs {
		wg.Add(1)
		go func(i int, channelID string) {
			defer wg.Done()
			pages[i], errs[i] = fs.FetchVideos(ctx, channelID, "")
		}(i, channelID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var merged []structures.ContentItem
	for _, p := range pages {
		merged = append(merged, p.Items...)
	}

	sortByPublishedDesc(merged)

	return merged, nil
}

// FetchEverything walks a channel's pages until the continuation token is
// exhausted and returns the accumulated sequence. One large latency spike in
// exchange for a display-ready complete set; do not combine with LoadMore.
func (fs *FeedSystem) FetchEverything(ctx context.Context, channelID string) ([]structures.ContentItem, error) {
	var all []structures.ContentItem

	token := ""
	for {
		page, err := fs.FetchVideos(ctx, channelID, token)
		if err != nil {
			return nil, err
		}

		all = append(all, page.Items...)

		token = page.NextPageToken
		if token == "" {
			break
		}
	}

	return all, nil
}

// enrich joins duration details onto search items. Items without a detail
// record stay duration-unknown.
func (fs *FeedSystem) enrich(ctx context.Context, items []structures.ContentItem) ([]structures.ContentItem, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	durations, err := fs.client.Durations(ctx, ids)
	if err != nil {
		return nil, err
	}

	enriched := make([]structures.ContentItem, len(items))
	for i, item := range items {
		seconds, known := durations[item.ID]
		item.Duration = seconds
		item.DurationKnown = known
		enriched[i] = item
	}

	return enriched, nil
}

func sortByPublishedDesc(items []structures.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}

// Feed is the incremental pagination state for one channel view. LoadMore
// appends the next page in upstream order; the accumulated sequence is not
// re-sorted in single-source mode.
type Feed struct {
	mu sync.Mutex

	system    *FeedSystem
	channelID string
	shorts    bool

	items     []structures.ContentItem
	nextToken string
	loaded    bool
	loading   bool
	err       error
}

// NewFeed creates pagination state for one channel. shorts selects the
// short-form view and its classification rule.
func (fs *FeedSystem) NewFeed(channelID string, shorts bool) *Feed {
	return &Feed{system: fs, channelID: channelID, shorts: shorts}
}

// Refresh discards accumulated state and fetches the first page.
func (f *Feed) Refresh(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()

	page, err := f.fetch(ctx, "")

	f.mu.Lock()
	defer f.mu.Unlock()

	f.loading = false
	f.err = err
	if err != nil {
		return err
	}

	f.items = page.Items
	f.nextToken = page.NextPageToken
	f.loaded = true

	return nil
}

// LoadMore fetches the next page and appends it. A feed with no further
// pages is left untouched.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if !f.loaded || f.nextToken == "" || f.loading {
		f.mu.Unlock()
		return nil
	}
	token := f.nextToken
	f.loading = true
	f.mu.Unlock()

	page, err := f.fetch(ctx, token)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.loading = false
	f.err = err
	if err != nil {
		return err
	}

	f.items = append(f.items, page.Items...)
	f.nextToken = page.NextPageToken

	return nil
}

func (f *Feed) fetch(ctx context.Context, token string) (structures.Page, error) {
	if f.shorts {
		return f.system.FetchShorts(ctx, f.channelID, token)
	}
	return f.system.FetchVideos(ctx, f.channelID, token)
}

// Items returns the accumulated items.
func (f *Feed) Items() []structures.ContentItem {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]structures.ContentItem, len(f.items))
	copy(out, f.items)
	return out
}

// HasMore reports whether a further page is available.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded && f.nextToken != ""
}

// Loading reports whether a fetch is in flight.
func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Err returns the last fetch error, if any.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
