package youtube

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"google.golang.org/api/youtube/v3"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(context.Background(), ""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("New() with empty key error = %v, want %v", err, ErrMissingAPIKey)
	}
}

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("video-%03d", i)
	}
	return ids
}

func TestFetchInBatchesBatchCount(t *testing.T) {
	tests := []struct {
		name        string
		ids         int
		wantBatches int
	}{
		{"single id", 1, 1},
		{"exactly one batch", 50, 1},
		{"one over the batch size", 51, 2},
		{"several batches", 120, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mu sync.Mutex
			calls := 0

			fetch := func(ctx context.Context, batch []string) ([]*youtube.Video, error) {
				mu.Lock()
				calls++
				mu.Unlock()

				if len(batch) > maxDetailBatch {
					t.Errorf("batch size %d exceeds limit %d", len(batch), maxDetailBatch)
				}

				videos := make([]*youtube.Video, len(batch))
				for i, id := range batch {
					videos[i] = &youtube.Video{Id: id}
				}
				return videos, nil
			}

			videos, err := fetchInBatches(context.Background(), makeIDs(tt.ids), fetch)
			if err != nil {
				t.Fatalf("fetchInBatches() failed: %v", err)
			}

			if calls != tt.wantBatches {
				t.Errorf("fetch called %d times, want %d", calls, tt.wantBatches)
			}
			if len(videos) != tt.ids {
				t.Errorf("got %d videos, want %d", len(videos), tt.ids)
			}
		})
	}
}

func TestFetchInBatchesPreservesChunkOrder(t *testing.T) {
	fetch := func(ctx context.Context, batch []string) ([]*youtube.Video, error) {
		videos := make([]*youtube.Video, len(batch))
		for i, id := range batch {
			videos[i] = &youtube.Video{Id: id}
		}
		return videos, nil
	}

	ids := makeIDs(120)
	videos, err := fetchInBatches(context.Background(), ids, fetch)
	if err != nil {
		t.Fatalf("fetchInBatches() failed: %v", err)
	}

	for i, v := range videos {
		if v.Id != ids[i] {
			t.Fatalf("videos[%d].Id = %q, want %q", i, v.Id, ids[i])
		}
	}
}

func TestFetchInBatchesEmptyInput(t *testing.T) {
	fetch := func(ctx context.Context, batch []string) ([]*youtube.Video, error) {
		t.Error("fetch should not be called for empty input")
		return nil, nil
	}

	videos, err := fetchInBatches(context.Background(), nil, fetch)
	if err != nil {
		t.Fatalf("fetchInBatches() failed: %v", err)
	}
	if videos != nil {
		t.Errorf("got %d videos, want none", len(videos))
	}

	// All-empty ids count as empty input too
	if _, err := fetchInBatches(context.Background(), []string{"", "", ""}, fetch); err != nil {
		t.Fatalf("fetchInBatches() failed: %v", err)
	}
}

func TestFetchInBatchesSkipsEmptyIDs(t *testing.T) {
	fetch := func(ctx context.Context, batch []string) ([]*youtube.Video, error) {
		for _, id := range batch {
			if id == "" {
				t.Error("empty id passed to fetch")
			}
		}
		videos := make([]*youtube.Video, len(batch))
		for i, id := range batch {
			videos[i] = &youtube.Video{Id: id}
		}
		return videos, nil
	}

	videos, err := fetchInBatches(context.Background(), []string{"a", "", "b"}, fetch)
	if err != nil {
		t.Fatalf("fetchInBatches() failed: %v", err)
	}
	if len(videos) != 2 {
		t.Errorf("got %d videos, want 2", len(videos))
	}
}

func TestFetchInBatchesPropagatesError(t *testing.T) {
	wantErr := errors.New("quota exceeded")

	fetch := func(ctx context.Context, batch []string) ([]*youtube.Video, error) {
		if batch[0] == "video-050" {
			return nil, wantErr
		}
		videos := make([]*youtube.Video, len(batch))
		for i, id := range batch {
			videos[i] = &youtube.Video{Id: id}
		}
		return videos, nil
	}

	videos, err := fetchInBatches(context.Background(), makeIDs(120), fetch)
	if !errors.Is(err, wantErr) {
		t.Fatalf("fetchInBatches() error = %v, want %v", err, wantErr)
	}
	if videos != nil {
		t.Error("partial results returned alongside an error")
	}
}

func TestChunkIDs(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		size  int
		wants []int
	}{
		{"below size", 3, 5, []int{3}},
		{"exact size", 5, 5, []int{5}},
		{"one over", 6, 5, []int{5, 1}},
		{"multiple", 12, 5, []int{5, 5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunkIDs(makeIDs(tt.n), tt.size)
			if len(chunks) != len(tt.wants) {
				t.Fatalf("got %d chunks, want %d", len(chunks), len(tt.wants))
			}
			for i, want := range tt.wants {
				if len(chunks[i]) != want {
					t.Errorf("chunk %d has %d ids, want %d", i, len(chunks[i]), want)
				}
			}
		})
	}
}

func TestBestThumbnail(t *testing.T) {
	tests := []struct {
		name string
		in   *youtube.ThumbnailDetails
		want string
	}{
		{"nil details", nil, ""},
		{"maxres preferred", &youtube.ThumbnailDetails{
			Maxres:  &youtube.Thumbnail{Url: "maxres"},
			High:    &youtube.Thumbnail{Url: "high"},
			Default: &youtube.Thumbnail{Url: "default"},
		}, "maxres"},
		{"falls back to high", &youtube.ThumbnailDetails{
			High:   &youtube.Thumbnail{Url: "high"},
			Medium: &youtube.Thumbnail{Url: "medium"},
		}, "high"},
		{"default only", &youtube.ThumbnailDetails{
			Default: &youtube.Thumbnail{Url: "default"},
		}, "default"},
		{"all empty", &youtube.ThumbnailDetails{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bestThumbnail(tt.in); got != tt.want {
				t.Errorf("bestThumbnail() = %q, want %q", got, tt.want)
			}
		})
	}
}
