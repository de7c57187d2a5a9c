package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docstamp/cmd/docstamp/commands"
	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/docstamp/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docstamp"),
		kong.Description("Stamp documentation builds with revision metadata from git."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	global := commands.NewGlobal(os.Stdout)
	if err := parser.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
