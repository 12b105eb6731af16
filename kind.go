package statblock

import (
	"sort"
	"strings"
)

// Kind identifies the archive listing an entry belongs to.
type Kind string

// Supported kinds.
const (
	KindCreature Kind = "creature"
	KindNPC      Kind = "npc"
)

// Kinds returns every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindCreature, KindNPC}
}

// KindAliases maps alternate spellings accepted by front ends to their
// canonical Kind. Canonical names map to themselves.
var KindAliases = map[string]Kind{
	"creature":  KindCreature,
	"creatures": KindCreature,
	"monster":   KindCreature,
	"monsters":  KindCreature,
	"npc":       KindNPC,
	"npcs":      KindNPC,
}

// ParseKind resolves a kind name or alias, ignoring case.
func ParseKind(s string) (Kind, error) {
	if k, ok := KindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", Errorf(EINVALID, "unknown kind %q", s)
}

// Aliases returns the alternate names of k in sorted order, excluding k itself.
func (k Kind) Aliases() []string {
	var names []string
	for name, kind := range KindAliases {
		if kind == k && name != string(k) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
