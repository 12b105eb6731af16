// Package archive retrieves stat block pages from the Archives of Nethys
// and drives extraction for single entries and batches.
package archive

import (
	"strconv"

	"github.com/fwojciec/statblock"
)

// Default listing URLs. The entry identifier is appended to the base.
const (
	DefaultCreatureURL = "https://2e.aonprd.com/Monsters.aspx?ID="
	DefaultNPCURL      = "https://2e.aonprd.com/NPCs.aspx?ID="
)

// DefaultURLs returns the listing URL for every supported kind.
func DefaultURLs() map[statblock.Kind]string {
	return map[statblock.Kind]string{
		statblock.KindCreature: DefaultCreatureURL,
		statblock.KindNPC:      DefaultNPCURL,
	}
}

// URL returns the page address of entry id under base.
func URL(base string, id int) string {
	return base + strconv.Itoa(id)
}
