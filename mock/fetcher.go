package mock

import (
	"context"

	"github.com/fwojciec/statblock"
)

var _ statblock.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of statblock.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ statblock.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of statblock.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, kind statblock.Kind, id int) (string, error)
}

func (r *Retriever) Retrieve(ctx context.Context, kind statblock.Kind, id int) (string, error) {
	return r.RetrieveFn(ctx, kind, id)
}
