package archive

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of entries scraped in parallel when
// Scraper.Concurrency is not set.
const DefaultConcurrency = 4

// dedupeFalsePositiveRate sizes the identifier filter of a batch.
const dedupeFalsePositiveRate = 1e-9

// Scraper resolves sources and extracts their records.
type Scraper struct {
	Resolver    statblock.Resolver
	Extractor   statblock.Extractor
	Concurrency int
}

// Result holds the outcome of scraping one entry.
type Result struct {
	Kind   statblock.Kind
	ID     int
	Record *statblock.Record
	Err    error
}

// ProgressEvent reports progress during a batch scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	ID        int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Scrape resolves src and extracts its record.
func (s *Scraper) Scrape(ctx context.Context, src statblock.Source) (*statblock.Record, error) {
	tree, err := s.Resolver.Resolve(ctx, src)
	if err != nil {
		return nil, err
	}
	return s.Extractor.Extract(tree)
}

// ScrapeAll scrapes every distinct entry of kind named in ids. Repeated
// identifiers are scraped once. Per-entry failures are reported in the
// results, which follow the order of first appearance in ids. The error is
// non-nil only if ctx ends before the batch completes.
func (s *Scraper) ScrapeAll(ctx context.Context, kind statblock.Kind, ids []int, progress ProgressFunc) ([]Result, error) {
	unique := s.dedupe(kind, ids, progress)
	total := len(unique)

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	type indexed struct {
		position int
		result   Result
	}
	resultCh := make(chan indexed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, id := range unique {
			g.Go(func() error {
				rec, err := s.Scrape(gctx, statblock.FromIdentifier(kind, id))
				resultCh <- indexed{
					position: i,
					result:   Result{Kind: kind, ID: id, Record: rec, Err: err},
				}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]Result, total)
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r.result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			ID:        r.result.ID,
		}
		if r.result.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.result.Err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return results, ctx.Err()
}

// dedupe drops repeated identifiers, keeping first appearances in order.
func (s *Scraper) dedupe(kind statblock.Kind, ids []int, progress ProgressFunc) []int {
	seen := bloom.NewFilter(uint(len(ids)), dedupeFalsePositiveRate)
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen.TestAndAdd(kind, id) {
			if progress != nil {
				progress(ProgressEvent{Type: ProgressSkipped, ID: id})
			}
			continue
		}
		unique = append(unique, id)
	}
	return unique
}
