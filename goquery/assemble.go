package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/statblock"
	"golang.org/x/net/html"
)

// Structural cues of archive stat block pages.
const (
	HeaderTag       = "h1"
	TitleClass      = "title"
	FlavorMarker    = `a[href="PFS.aspx"]`
	StatsMarker     = "Creature "
	FamilyMarker    = `a[href^="MonsterFamilies"]`
	RecallDelimiter = `<b><u><a href="Rules.aspx?ID=563">`
	RecallMarker    = "Recall Knowledge"
)

// SectionKind classifies a section by the header that opens it.
type SectionKind int

// Section kinds.
const (
	SectionUnknown SectionKind = iota
	SectionFlavor
	SectionStats
	SectionFamily
)

// String returns a lowercase label for logs.
func (k SectionKind) String() string {
	switch k {
	case SectionFlavor:
		return "flavor"
	case SectionStats:
		return "stats"
	case SectionFamily:
		return "family"
	default:
		return "unknown"
	}
}

// Classify inspects the first header of a section document. The PFS link
// marks the flavor section, the "Creature " text the stat section and a
// monster family link the family section.
func Classify(doc *goquery.Document) SectionKind {
	header := doc.Find(HeaderTag).First()
	switch {
	case header.Length() == 0:
		return SectionUnknown
	case header.Find(FlavorMarker).Length() > 0:
		return SectionFlavor
	case strings.Contains(header.Text(), StatsMarker):
		return SectionStats
	case header.Find(FamilyMarker).Length() > 0:
		return SectionFamily
	}
	return SectionUnknown
}

// ClassifiedSection pairs a section with its kind.
type ClassifiedSection struct {
	Kind    SectionKind
	Section *Section

	doc *goquery.Document
}

// Ensure Assembler implements statblock.Extractor at compile time.
var _ statblock.Extractor = (*Assembler)(nil)

// Assembler builds records by splitting a container on its headers and
// running the extraction strategies matching each section.
type Assembler struct{}

// NewAssembler creates a new Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Extract segments tree, extracts every recognised section and assembles
// the result. Unrecognised sections are skipped.
func (a *Assembler) Extract(tree *html.Node) (*statblock.Record, error) {
	fs, err := a.Fields(tree)
	if err != nil {
		return nil, err
	}
	return statblock.Assemble(fs)
}

// Sections splits tree on its headers and classifies each section.
func (a *Assembler) Sections(tree *html.Node) ([]ClassifiedSection, error) {
	if tree == nil {
		return nil, statblock.Errorf(statblock.EINVALID, "nil tree")
	}

	var out []ClassifiedSection
	for _, s := range SplitByTag(tree, HeaderTag) {
		doc, err := s.Document()
		if err != nil {
			return nil, err
		}
		out = append(out, ClassifiedSection{Kind: Classify(doc), Section: s, doc: doc})
	}
	return out, nil
}

// Fields runs the extraction strategies over every recognised section and
// collects their outcomes. Only segmentation failures are returned as errors.
func (a *Assembler) Fields(tree *html.Node) (*statblock.FieldSet, error) {
	sections, err := a.Sections(tree)
	if err != nil {
		return nil, err
	}

	fs := statblock.NewFieldSet()
	for _, cs := range sections {
		switch cs.Kind {
		case SectionFlavor:
			extractFlavor(cs.doc, fs)
		case SectionStats:
			extractStats(cs.doc, fs)
		case SectionFamily:
			extractFamily(cs.doc, fs)
		}
	}
	return fs, nil
}

func extractFlavor(doc *goquery.Document, fs *statblock.FieldSet) {
	pfs, err := AnchorAttr(doc.Selection, HeaderTag, "img", "alt", statblock.FieldPFS)
	recordOptional(fs, statblock.FieldPFS, statblock.Scalar(pfs), err)

	header := doc.Find(HeaderTag).First()
	walk, err := SiblingWalk(header.Get(0), HasClass(TitleClass))
	if err != nil {
		fs.Fail(statblock.FieldDescription, err)
		fs.Fail(statblock.FieldRecallKnowledge, err)
		return
	}

	desc, err := CleanDescription(walk, RecallMarker)
	fs.Record(statblock.FieldDescription, statblock.Scalar(desc), err)

	recall, err := KnowledgeTable(walk, RecallDelimiter)
	fs.Record(statblock.FieldRecallKnowledge, recall, err)
}

func extractStats(doc *goquery.Document, fs *statblock.FieldSet) {
	sel := doc.Selection

	head, tail, err := DecomposeAnchorText(sel, HeaderTag, StatsMarker)
	switch {
	case statblock.ErrorCode(err) == statblock.EMISSINGANCHOR:
		fs.Fail(statblock.FieldName, err)
		fs.Fail(statblock.FieldLevel, statblock.FieldErrorf(statblock.EMISSINGANCHOR, statblock.FieldLevel, "%s", statblock.ErrorMessage(err)))
	case err != nil:
		recordName(fs, head)
		fs.Fail(statblock.FieldLevel, err)
	default:
		recordName(fs, head)
		level, err := ParseLevel(tail)
		fs.Record(statblock.FieldLevel, statblock.Scalar(strconv.Itoa(level)), err)
	}

	fs.Set(statblock.FieldRarity, statblock.Scalar(ExtractRarity(sel).String()))
	fs.Set(statblock.FieldAlignment, FirstText(sel, ".traitalignment a"))
	fs.Set(statblock.FieldSize, FirstText(sel, ".traitsize a"))
	fs.Set(statblock.FieldTraits, statblock.List(AllText(sel, ".trait a")))
}

func extractFamily(doc *goquery.Document, fs *statblock.FieldSet) {
	header := doc.Find(HeaderTag).First()
	fs.Set(statblock.FieldFamily, FirstText(header, FamilyMarker))
}

func recordName(fs *statblock.FieldSet, name string) {
	if name == "" {
		fs.Fail(statblock.FieldName, statblock.FieldErrorf(statblock.EMALFORMEDFIELD, statblock.FieldName, "header has no name before %q", StatsMarker))
		return
	}
	fs.Set(statblock.FieldName, statblock.Scalar(name))
}

// recordOptional stores the outcome of an optional field. A missing anchor
// only means the field is absent.
func recordOptional(fs *statblock.FieldSet, name string, f statblock.Field, err error) {
	if statblock.ErrorCode(err) == statblock.EMISSINGANCHOR {
		fs.Set(name, statblock.Absent())
		return
	}
	fs.Record(name, f, err)
}
