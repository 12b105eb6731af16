package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/goquery"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	input, err := c.read(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	src := statblock.FromMarkup(input)
	if c.Page {
		tree, err := goquery.ParsePage(input, deps.Config.Container)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", statblock.ErrorMessage(err))
			return err
		}
		src = statblock.FromTree(tree)
	}

	tree, err := deps.Resolver.Resolve(deps.Ctx, src)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", statblock.ErrorMessage(err))
		return err
	}

	rec, err := deps.Extractor.Extract(tree)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", statblock.ErrorMessage(err))
		return err
	}

	return writeJSON(deps.Stdout, rec)
}

func (c *ExtractCmd) read(deps *Dependencies) (string, error) {
	if c.File != "" && c.File != "-" {
		b, err := os.ReadFile(c.File)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	if deps.Stdin == nil {
		return "", fmt.Errorf("no input: pass a file or pipe HTML to stdin")
	}
	b, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
