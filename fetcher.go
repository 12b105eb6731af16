package statblock

import "context"

// Fetcher retrieves raw page markup from a URL.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// Retriever fetches the stat block markup of an archive entry.
type Retriever interface {
	// Retrieve returns the markup of the stat block container for the entry.
	// Returns ERETRIEVAL if the page cannot be fetched.
	Retrieve(ctx context.Context, kind Kind, id int) (string, error)
}
