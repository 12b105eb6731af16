package archive_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/archive"
	"github.com/fwojciec/statblock/goquery"
	"github.com/fwojciec/statblock/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// containerFor renders a minimal stat block for entry id. Entry 0 has no header.
func containerFor(id int) string {
	if id == 0 {
		return `<p>Page not found</p>`
	}
	return fmt.Sprintf(`<h1 class="title">Entry %d Creature %d</h1>`, id, id)
}

func newScraper(retrieve func(ctx context.Context, kind statblock.Kind, id int) (string, error)) *archive.Scraper {
	return &archive.Scraper{
		Resolver:    archive.NewResolver(&mock.Retriever{RetrieveFn: retrieve}),
		Extractor:   goquery.NewAssembler(),
		Concurrency: 2,
	}
}

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("extracts a record from markup", func(t *testing.T) {
		t.Parallel()

		s := newScraper(nil)

		rec, err := s.Scrape(context.Background(), statblock.FromMarkup(containerFor(3)))

		require.NoError(t, err)
		assert.Equal(t, "Entry 3", rec.Name)
		assert.Equal(t, 3, rec.Level)
	})

	t.Run("extracts a record from an identifier", func(t *testing.T) {
		t.Parallel()

		s := newScraper(func(_ context.Context, _ statblock.Kind, id int) (string, error) {
			return containerFor(id), nil
		})

		rec, err := s.Scrape(context.Background(), statblock.FromIdentifier(statblock.KindCreature, 7))

		require.NoError(t, err)
		assert.Equal(t, "Entry 7", rec.Name)
	})

	t.Run("does not extract when resolution fails", func(t *testing.T) {
		t.Parallel()

		s := &archive.Scraper{
			Resolver: &mock.Resolver{
				ResolveFn: func(context.Context, statblock.Source) (*html.Node, error) {
					return nil, statblock.Errorf(statblock.ERETRIEVAL, "HTTP 500")
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(*html.Node) (*statblock.Record, error) {
					t.Fatal("extractor must not be called")
					return nil, nil
				},
			},
		}

		_, err := s.Scrape(context.Background(), statblock.FromIdentifier(statblock.KindNPC, 1))

		assert.Equal(t, statblock.ERETRIEVAL, statblock.ErrorCode(err))
	})
}

func TestScraper_ScrapeAll(t *testing.T) {
	t.Parallel()

	t.Run("returns results in input order", func(t *testing.T) {
		t.Parallel()

		s := newScraper(func(_ context.Context, _ statblock.Kind, id int) (string, error) {
			return containerFor(id), nil
		})

		results, err := s.ScrapeAll(context.Background(), statblock.KindCreature, []int{5, 1, 4, 2}, nil)

		require.NoError(t, err)
		require.Len(t, results, 4)
		for i, id := range []int{5, 1, 4, 2} {
			assert.Equal(t, id, results[i].ID)
			assert.Equal(t, statblock.KindCreature, results[i].Kind)
			require.NoError(t, results[i].Err)
			assert.Equal(t, id, results[i].Record.Level)
		}
	})

	t.Run("scrapes repeated identifiers once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		s := newScraper(func(_ context.Context, _ statblock.Kind, id int) (string, error) {
			calls.Add(1)
			return containerFor(id), nil
		})

		var skipped []int
		results, err := s.ScrapeAll(context.Background(), statblock.KindCreature, []int{1, 2, 1, 2, 3}, func(e archive.ProgressEvent) {
			if e.Type == archive.ProgressSkipped {
				skipped = append(skipped, e.ID)
			}
		})

		require.NoError(t, err)
		assert.Len(t, results, 3)
		assert.Equal(t, int32(3), calls.Load())
		assert.Equal(t, []int{1, 2}, skipped)
	})

	t.Run("keeps going after a failed entry", func(t *testing.T) {
		t.Parallel()

		s := newScraper(func(_ context.Context, _ statblock.Kind, id int) (string, error) {
			if id == 2 {
				return "", statblock.Errorf(statblock.ERETRIEVAL, "HTTP 404")
			}
			return containerFor(id), nil
		})

		results, err := s.ScrapeAll(context.Background(), statblock.KindNPC, []int{1, 2, 3}, nil)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.NoError(t, results[0].Err)
		assert.Equal(t, statblock.ERETRIEVAL, statblock.ErrorCode(results[1].Err))
		assert.Nil(t, results[1].Record)
		assert.NoError(t, results[2].Err)
	})

	t.Run("invalid identifier fails only that entry", func(t *testing.T) {
		t.Parallel()

		s := newScraper(func(_ context.Context, _ statblock.Kind, id int) (string, error) {
			return containerFor(id), nil
		})

		results, err := s.ScrapeAll(context.Background(), statblock.KindCreature, []int{0, 1}, nil)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, statblock.EINVALID, statblock.ErrorCode(results[0].Err))
		assert.NoError(t, results[1].Err)
	})

	t.Run("missing anchors fail only that entry", func(t *testing.T) {
		t.Parallel()

		s := newScraper(func(_ context.Context, _ statblock.Kind, id int) (string, error) {
			if id == 9 {
				return containerFor(0), nil
			}
			return containerFor(id), nil
		})

		results, err := s.ScrapeAll(context.Background(), statblock.KindCreature, []int{9, 1}, nil)

		require.NoError(t, err)
		assert.Equal(t, statblock.EMISSINGANCHOR, statblock.ErrorCode(results[0].Err))
		assert.NoError(t, results[1].Err)
	})

	t.Run("never exceeds the concurrency limit", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var active, peak int
		s := newScraper(func(_ context.Context, _ statblock.Kind, id int) (string, error) {
			mu.Lock()
			active++
			if active > peak {
				peak = active
			}
			mu.Unlock()
			defer func() {
				mu.Lock()
				active--
				mu.Unlock()
			}()
			return containerFor(id), nil
		})

		ids := make([]int, 20)
		for i := range ids {
			ids[i] = i + 1
		}
		results, err := s.ScrapeAll(context.Background(), statblock.KindCreature, ids, nil)

		require.NoError(t, err)
		assert.Len(t, results, 20)
		assert.LessOrEqual(t, peak, 2)
	})

	t.Run("emits progress events", func(t *testing.T) {
		t.Parallel()

		s := newScraper(func(_ context.Context, _ statblock.Kind, id int) (string, error) {
			if id == 2 {
				return "", statblock.Errorf(statblock.ERETRIEVAL, "HTTP 404")
			}
			return containerFor(id), nil
		})

		var types []archive.ProgressType
		_, err := s.ScrapeAll(context.Background(), statblock.KindCreature, []int{1, 2}, func(e archive.ProgressEvent) {
			types = append(types, e.Type)
		})

		require.NoError(t, err)
		require.Len(t, types, 4)
		assert.Equal(t, archive.ProgressStarted, types[0])
		assert.ElementsMatch(t, []archive.ProgressType{archive.ProgressCompleted, archive.ProgressFailed}, types[1:3])
		assert.Equal(t, archive.ProgressFinished, types[3])
	})

	t.Run("returns the context error when canceled", func(t *testing.T) {
		t.Parallel()

		s := newScraper(func(ctx context.Context, _ statblock.Kind, _ int) (string, error) {
			return "", statblock.Errorf(statblock.ERETRIEVAL, "%v", ctx.Err())
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := s.ScrapeAll(ctx, statblock.KindCreature, []int{1, 2}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, results, 2)
	})
}
