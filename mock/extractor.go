package mock

import (
	"context"

	"github.com/fwojciec/statblock"
	"golang.org/x/net/html"
)

var _ statblock.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of statblock.Extractor.
type Extractor struct {
	ExtractFn func(tree *html.Node) (*statblock.Record, error)
}

func (e *Extractor) Extract(tree *html.Node) (*statblock.Record, error) {
	return e.ExtractFn(tree)
}

var _ statblock.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of statblock.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, src statblock.Source) (*html.Node, error)
}

func (r *Resolver) Resolve(ctx context.Context, src statblock.Source) (*html.Node, error) {
	return r.ResolveFn(ctx, src)
}
