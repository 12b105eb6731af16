package statblock

import (
	"context"

	"golang.org/x/net/html"
)

// SourceKind identifies which variant a Source holds.
type SourceKind int

// Source variants.
const (
	SourceTree SourceKind = iota + 1
	SourceMarkup
	SourceIdentifier
)

// Source is the input of one extraction. The caller picks the variant;
// nothing is inferred from the content.
type Source struct {
	Kind SourceKind

	// Tree is a parsed container whose children are the stat block nodes.
	Tree *html.Node

	// Markup is the raw contents of the container element.
	Markup string

	// ID and EntryKind identify an archive entry to retrieve.
	ID        int
	EntryKind Kind
}

// FromTree returns a Source wrapping an already parsed container.
func FromTree(n *html.Node) Source {
	return Source{Kind: SourceTree, Tree: n}
}

// FromMarkup returns a Source wrapping container markup.
func FromMarkup(markup string) Source {
	return Source{Kind: SourceMarkup, Markup: markup}
}

// FromIdentifier returns a Source naming an archive entry.
func FromIdentifier(kind Kind, id int) Source {
	return Source{Kind: SourceIdentifier, EntryKind: kind, ID: id}
}

// Validate returns an error if the source is not a well-formed variant.
func (s Source) Validate() error {
	switch s.Kind {
	case SourceTree:
		if s.Tree == nil {
			return Errorf(EINVALID, "tree source requires a node")
		}
	case SourceMarkup:
	case SourceIdentifier:
		if s.ID <= 0 {
			return Errorf(EINVALID, "identifier must be positive, got %d", s.ID)
		}
		if s.EntryKind == "" {
			return Errorf(EINVALID, "identifier source requires a kind")
		}
	default:
		return Errorf(EINVALID, "unknown source kind %d", s.Kind)
	}
	return nil
}

// Resolver turns a Source into a parsed container.
type Resolver interface {
	// Resolve returns the container node for src.
	// Returns ERETRIEVAL if the document could not be fetched and
	// EMALFORMED if it could not be parsed.
	Resolve(ctx context.Context, src Source) (*html.Node, error)
}
