package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docstamp/internal/build"
)

// HashCmd implements the 'hash' command: the short hash with no trailing newline.
type HashCmd struct{}

func (h *HashCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	querier, err := build.QuerierFromConfig(cfg)
	if err != nil {
		return err
	}
	hash, err := querier.ShortHash(context.Background())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(g.Stdout, hash)
	return err
}
