package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/statblock"
	"golang.org/x/net/html"
)

// Ensure LoggingExtractor implements statblock.Extractor.
var _ statblock.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. Diagnostics of a
// successful extraction are logged as warnings.
type LoggingExtractor struct {
	next   statblock.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next statblock.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(tree *html.Node) (rec *statblock.Record, err error) {
	defer func(begin time.Time) {
		if rec == nil {
			e.logger.Info("extract",
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		for _, d := range rec.Diagnostics {
			e.logger.Warn("degraded field",
				"name", rec.Name,
				"field", statblock.ErrorField(d),
				"code", statblock.ErrorCode(d),
				"message", statblock.ErrorMessage(d),
			)
		}
		e.logger.Info("extract",
			slog.Group("record", "name", rec.Name, "level", rec.Level),
			"diagnostics", len(rec.Diagnostics),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(tree)
}
