// Package slog provides log/slog decorators for the statblock interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/statblock"
)

// Ensure LoggingFetcher implements statblock.Fetcher.
var _ statblock.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   statblock.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next statblock.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Ensure LoggingRetriever implements statblock.Retriever.
var _ statblock.Retriever = (*LoggingRetriever)(nil)

// LoggingRetriever wraps a Retriever with logging.
type LoggingRetriever struct {
	next   statblock.Retriever
	logger *slog.Logger
}

// NewLoggingRetriever creates a new LoggingRetriever.
func NewLoggingRetriever(next statblock.Retriever, logger *slog.Logger) *LoggingRetriever {
	return &LoggingRetriever{next: next, logger: logger}
}

// Retrieve delegates to the wrapped retriever and logs the operation.
func (r *LoggingRetriever) Retrieve(ctx context.Context, kind statblock.Kind, id int) (markup string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("retrieve",
			"kind", kind,
			"id", id,
			"bytes", len(markup),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Retrieve(ctx, kind, id)
}
