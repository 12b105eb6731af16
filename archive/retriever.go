package archive

import (
	"context"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/goquery"
)

// Ensure Retriever implements statblock.Retriever at compile time.
var _ statblock.Retriever = (*Retriever)(nil)

// Retriever fetches entry pages and cuts out the stat block container.
type Retriever struct {
	fetcher   statblock.Fetcher
	urls      map[statblock.Kind]string
	container string
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithURL overrides the listing URL of kind. An empty base is ignored.
func WithURL(kind statblock.Kind, base string) RetrieverOption {
	return func(r *Retriever) {
		if base != "" {
			r.urls[kind] = base
		}
	}
}

// WithContainer overrides the selector of the stat block container.
// An empty selector is ignored.
func WithContainer(selector string) RetrieverOption {
	return func(r *Retriever) {
		if selector != "" {
			r.container = selector
		}
	}
}

// NewRetriever creates a Retriever using the default listing URLs and container.
func NewRetriever(fetcher statblock.Fetcher, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		fetcher:   fetcher,
		urls:      DefaultURLs(),
		container: goquery.DefaultContainer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// URL returns the page address of an entry.
func (r *Retriever) URL(kind statblock.Kind, id int) (string, error) {
	base, ok := r.urls[kind]
	if !ok {
		return "", statblock.Errorf(statblock.EINVALID, "no listing URL for kind %q", kind)
	}
	return URL(base, id), nil
}

// Retrieve fetches the page of an entry and returns the markup inside its
// stat block container.
func (r *Retriever) Retrieve(ctx context.Context, kind statblock.Kind, id int) (string, error) {
	url, err := r.URL(kind, id)
	if err != nil {
		return "", err
	}

	page, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		if statblock.ErrorCode(err) == statblock.ERETRIEVAL {
			return "", err
		}
		return "", statblock.Errorf(statblock.ERETRIEVAL, "failed to fetch %s: %v", url, err)
	}

	container, err := goquery.ParsePage(page, r.container)
	if err != nil {
		return "", err
	}
	return goquery.Render(goquery.Children(container))
}
