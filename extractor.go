package statblock

import "golang.org/x/net/html"

// Extractor builds a Record from a parsed stat block container.
type Extractor interface {
	// Extract segments the container and assembles its fields.
	// Returns EMISSINGANCHOR or EMALFORMEDFIELD when name or level
	// cannot be recovered. The tree is not modified.
	Extract(tree *html.Node) (*Record, error)
}
