package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/archive"
)

// Run executes the kinds command.
func (c *KindsCmd) Run(deps *Dependencies) error {
	overrides, err := deps.Config.KindURLs()
	if err != nil {
		return err
	}
	urls := archive.DefaultURLs()
	for kind, base := range overrides {
		urls[kind] = base
	}

	for _, kind := range statblock.Kinds() {
		line := string(kind)
		if aliases := kind.Aliases(); len(aliases) > 0 {
			line += "  (" + strings.Join(aliases, ", ") + ")"
		}
		if base, ok := urls[kind]; ok {
			line += "  " + base
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}
