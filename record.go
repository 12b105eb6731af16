package statblock

import (
	"strconv"
)

// Rarity is the rarity tier of a creature.
type Rarity int

// Rarity tiers. Common is the baseline when no marker is present.
const (
	Common Rarity = iota
	Uncommon
	Rare
)

// String returns the display name of the tier.
func (r Rarity) String() string {
	switch r {
	case Uncommon:
		return "Uncommon"
	case Rare:
		return "Rare"
	default:
		return "Common"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rarity) UnmarshalText(text []byte) error {
	v, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRarity converts a display name back into a Rarity.
func ParseRarity(s string) (Rarity, error) {
	switch s {
	case "Common":
		return Common, nil
	case "Uncommon":
		return Uncommon, nil
	case "Rare":
		return Rare, nil
	}
	return Common, Errorf(EINVALID, "unknown rarity %q", s)
}

// Record is the structured stat block extracted from one archive page.
// It is built once by Assemble and not modified afterwards.
type Record struct {
	Name            string   `json:"name"`
	Level           int      `json:"level"`
	Rarity          Rarity   `json:"rarity"`
	Alignment       *string  `json:"alignment"`
	Size            *string  `json:"size"`
	Traits          []string `json:"traits"`
	Description     string   `json:"description"`
	RecallKnowledge *Table   `json:"recall_knowledge"`
	PFS             *string  `json:"pfs,omitempty"`
	Family          *string  `json:"family,omitempty"`

	// Diagnostics holds failures of optional fields that were degraded to absent.
	Diagnostics []error `json:"-"`
}

// Assemble merges extracted fields into a Record.
// A missing or failed name or level fails the whole record; every other
// field falls back to its default and any failure is kept as a diagnostic.
func Assemble(fs *FieldSet) (*Record, error) {
	name, err := required(fs, FieldName)
	if err != nil {
		return nil, err
	}
	levelText, err := required(fs, FieldLevel)
	if err != nil {
		return nil, err
	}
	level, err := strconv.Atoi(levelText)
	if err != nil {
		return nil, FieldErrorf(EMALFORMEDFIELD, FieldLevel, "level %q is not an integer", levelText)
	}

	rec := &Record{
		Name:   name,
		Level:  level,
		Traits: []string{},
	}

	if f, err := fs.Get(FieldRarity); err == nil && f.Kind == FieldScalar {
		if r, err := ParseRarity(f.Text); err == nil {
			rec.Rarity = r
		} else {
			rec.Diagnostics = append(rec.Diagnostics, FieldErrorf(EMALFORMEDFIELD, FieldRarity, "%s", ErrorMessage(err)))
		}
	}
	rec.Alignment = optionalText(fs, FieldAlignment)
	rec.Size = optionalText(fs, FieldSize)
	rec.PFS = optionalText(fs, FieldPFS)
	rec.Family = optionalText(fs, FieldFamily)
	if f, err := fs.Get(FieldTraits); err == nil && f.Kind == FieldList {
		rec.Traits = append(rec.Traits, f.List...)
	}
	if f, err := fs.Get(FieldDescription); err == nil && f.Kind == FieldScalar {
		rec.Description = f.Text
	}
	if f, err := fs.Get(FieldRecallKnowledge); err == nil && f.Kind == FieldTable {
		rec.RecallKnowledge = f.Table
	}

	for _, err := range fs.Errors() {
		switch ErrorField(err) {
		case FieldName, FieldLevel:
		default:
			rec.Diagnostics = append(rec.Diagnostics, err)
		}
	}

	return rec, nil
}

func required(fs *FieldSet, name string) (string, error) {
	f, err := fs.Get(name)
	if err != nil {
		return "", err
	}
	if f.Kind != FieldScalar {
		return "", FieldErrorf(EMISSINGANCHOR, name, "required field %s not found", name)
	}
	return f.Text, nil
}

func optionalText(fs *FieldSet, name string) *string {
	f, err := fs.Get(name)
	if err != nil || f.Kind != FieldScalar {
		return nil
	}
	text := f.Text
	return &text
}
