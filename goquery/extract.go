package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/statblock"
	"golang.org/x/net/html"
)

// AnchorAttr reads attribute attr of the first descendant matching
// descendant inside the first element matching anchor.
// Returns EMISSINGANCHOR if either element is missing and EMALFORMEDFIELD
// if the attribute is absent or blank.
func AnchorAttr(sel *goquery.Selection, anchor, descendant, attr, field string) (string, error) {
	a := sel.Find(anchor).First()
	if a.Length() == 0 {
		return "", statblock.FieldErrorf(statblock.EMISSINGANCHOR, field, "anchor %q not found", anchor)
	}

	d := a.Find(descendant).First()
	if d.Length() == 0 {
		return "", statblock.FieldErrorf(statblock.EMISSINGANCHOR, field, "%q not found in %q", descendant, anchor)
	}

	v, ok := d.Attr(attr)
	if !ok || strings.TrimSpace(v) == "" {
		return "", statblock.FieldErrorf(statblock.EMALFORMEDFIELD, field, "%q has no %s attribute", descendant, attr)
	}
	return strings.TrimSpace(v), nil
}

// DecomposeAnchorText splits the text of the first element matching anchor
// at the last occurrence of sep and returns both trimmed halves.
// Returns EMISSINGANCHOR for the name field if there is no anchor, and
// EMALFORMEDFIELD for the level field, with the whole text as head, if
// sep does not occur.
func DecomposeAnchorText(sel *goquery.Selection, anchor, sep string) (head, tail string, err error) {
	a := sel.Find(anchor).First()
	if a.Length() == 0 {
		return "", "", statblock.FieldErrorf(statblock.EMISSINGANCHOR, statblock.FieldName, "anchor %q not found", anchor)
	}

	text := a.Text()
	i := strings.LastIndex(text, sep)
	if i < 0 {
		return strings.TrimSpace(text), "", statblock.FieldErrorf(statblock.EMALFORMEDFIELD, statblock.FieldLevel, "separator %q not found in %q", sep, strings.TrimSpace(text))
	}
	return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+len(sep):]), nil
}

// ParseLevel parses a signed creature level.
func ParseLevel(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, statblock.FieldErrorf(statblock.EMALFORMEDFIELD, statblock.FieldLevel, "level %q is not an integer", s)
	}
	return n, nil
}

// FirstPresent returns the index of the first selector with a match in sel,
// or -1 if none matches.
func FirstPresent(sel *goquery.Selection, selectors ...string) int {
	for i, s := range selectors {
		if sel.Find(s).Length() > 0 {
			return i
		}
	}
	return -1
}

// Rarity markers in priority order.
var rarityMarkers = []struct {
	selector string
	rarity   statblock.Rarity
}{
	{"span.traituncommon", statblock.Uncommon},
	{"span.traitrare", statblock.Rare},
}

// ExtractRarity returns the tier of the first rarity marker present.
// A section without a marker is Common.
func ExtractRarity(sel *goquery.Selection) statblock.Rarity {
	selectors := make([]string, len(rarityMarkers))
	for i, m := range rarityMarkers {
		selectors[i] = m.selector
	}
	if i := FirstPresent(sel, selectors...); i >= 0 {
		return rarityMarkers[i].rarity
	}
	return statblock.Common
}

// FirstText returns the trimmed text of the first match of selector.
// No match, or a blank match, is absent.
func FirstText(sel *goquery.Selection, selector string) statblock.Field {
	m := sel.Find(selector).First()
	if m.Length() == 0 {
		return statblock.Absent()
	}
	text := strings.TrimSpace(m.Text())
	if text == "" {
		return statblock.Absent()
	}
	return statblock.Scalar(text)
}

// AllText returns the trimmed, non-blank texts of every match of selector
// in document order. It never returns nil.
func AllText(sel *goquery.Selection, selector string) []string {
	texts := []string{}
	sel.Find(selector).Each(func(_ int, m *goquery.Selection) {
		if text := strings.TrimSpace(m.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

// HasClass returns a predicate matching elements carrying class.
func HasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := attr(n, "class")
		return ok && hasTokens(v, class)
	}
}

// IsNode returns a predicate matching exactly end.
func IsNode(end *html.Node) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n == end
	}
}

// AnyOf returns a predicate matching when any of preds matches.
func AnyOf(preds ...func(*html.Node) bool) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// SiblingWalk renders the siblings following start, in order, until stop
// matches a sibling or the siblings run out. The stopping sibling is not
// included. The result is a self-contained markup fragment.
func SiblingWalk(start *html.Node, stop func(*html.Node) bool) (string, error) {
	var nodes []*html.Node
	for n := start.NextSibling; n != nil; n = n.NextSibling {
		if stop(n) {
			break
		}
		nodes = append(nodes, n)
	}
	return Render(nodes)
}

// KnowledgePrefix is stripped from the start of recall knowledge keys.
const KnowledgePrefix = "Recall Knowledge - "

// KnowledgeTable parses the bold key-value table starting at the first
// occurrence of delimiter in fragment. A fragment without the delimiter has
// no table and yields an absent field.
func KnowledgeTable(fragment, delimiter string) (statblock.Field, error) {
	i := strings.Index(fragment, delimiter)
	if i < 0 {
		return statblock.Absent(), nil
	}

	t, err := ParseBoldTable(fragment[i:])
	if err != nil {
		return statblock.Absent(), err
	}
	return statblock.TableField(t), nil
}

// ParseBoldTable reads one entry per <b> element in document order. The key
// is the bold text with whitespace, trailing colons and KnowledgePrefix
// removed. The value is the text following the bold element, split on "DC",
// keeping the trimmed last segment. Repeated keys keep the last value.
func ParseBoldTable(markup string) (*statblock.Table, error) {
	doc, err := newDocument(markup)
	if err != nil {
		return nil, statblock.FieldErrorf(statblock.EMALFORMEDFIELD, statblock.FieldRecallKnowledge, "%s", statblock.ErrorMessage(err))
	}

	t := statblock.NewTable()
	doc.Find("b").Each(func(_ int, b *goquery.Selection) {
		t.Set(cleanKey(b.Text()), cleanValue(followingText(b.Get(0))))
	})
	return t, nil
}

func cleanKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ":")
	s = strings.TrimPrefix(s, KnowledgePrefix)
	return strings.TrimSpace(s)
}

func cleanValue(s string) string {
	parts := strings.Split(s, "DC")
	return strings.TrimSpace(parts[len(parts)-1])
}

// followingText returns the text of the node right after n: its data for a
// text node, its text content for an element.
func followingText(n *html.Node) string {
	next := n.NextSibling
	if next == nil {
		return ""
	}
	if next.Type == html.TextNode {
		return next.Data
	}
	return goquery.NewDocumentFromNode(next).Text()
}

// CleanDescription reduces a markup fragment to text. Line breaks become
// newlines, everything after the first occurrence of marker is dropped and
// the result is trimmed.
func CleanDescription(fragment, marker string) (string, error) {
	doc, err := newDocument(fragment)
	if err != nil {
		return "", statblock.FieldErrorf(statblock.EMALFORMEDFIELD, statblock.FieldDescription, "%s", statblock.ErrorMessage(err))
	}

	var b strings.Builder
	writeText(&b, doc.Get(0))
	text := b.String()
	if marker != "" {
		if i := strings.Index(text, marker); i >= 0 {
			text = text[:i]
		}
	}
	return strings.TrimSpace(text), nil
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}
