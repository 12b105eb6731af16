package archive

import (
	"context"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/goquery"
	"golang.org/x/net/html"
)

// Ensure Resolver implements statblock.Resolver at compile time.
var _ statblock.Resolver = (*Resolver)(nil)

// Resolver turns each Source variant into a container tree.
type Resolver struct {
	retriever statblock.Retriever
}

// NewResolver creates a Resolver. A nil retriever limits it to tree and
// markup sources.
func NewResolver(retriever statblock.Retriever) *Resolver {
	return &Resolver{retriever: retriever}
}

// Resolve returns the container for src. Trees are returned as is, markup
// is parsed and identifiers are retrieved first.
func (r *Resolver) Resolve(ctx context.Context, src statblock.Source) (*html.Node, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	switch src.Kind {
	case statblock.SourceTree:
		return src.Tree, nil
	case statblock.SourceMarkup:
		return goquery.Parse(src.Markup)
	case statblock.SourceIdentifier:
		if r.retriever == nil {
			return nil, statblock.Errorf(statblock.EINVALID, "identifier sources need a retriever")
		}
		markup, err := r.retriever.Retrieve(ctx, src.EntryKind, src.ID)
		if err != nil {
			return nil, err
		}
		return goquery.Parse(markup)
	}
	return nil, statblock.Errorf(statblock.EINTERNAL, "unhandled source kind %d", src.Kind)
}
