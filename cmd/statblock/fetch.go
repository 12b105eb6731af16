package main

import (
	"fmt"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/archive"
)

// Run executes the fetch command. Records that could be extracted are
// written as a JSON array even when other entries fail.
func (c *FetchCmd) Run(deps *Dependencies) error {
	kind, err := statblock.ParseKind(c.Kind)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", statblock.ErrorMessage(err))
		return err
	}

	results, err := deps.Scraper.ScrapeAll(deps.Ctx, kind, c.IDs, func(e archive.ProgressEvent) {
		switch e.Type {
		case archive.ProgressSkipped:
			deps.Logger.Debug("skipping duplicate", "kind", kind, "id", e.ID)
		case archive.ProgressCompleted, archive.ProgressFailed:
			deps.Logger.Debug("progress", "completed", e.Completed, "total", e.Total)
		}
	})

	records := []*statblock.Record{}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s %d: %s\n", r.Kind, r.ID, statblock.ErrorMessage(r.Err))
			continue
		}
		records = append(records, r.Record)
	}

	if werr := writeJSON(deps.Stdout, records); werr != nil {
		return werr
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed", failed, len(results))
	}
	return nil
}
