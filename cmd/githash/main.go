// Command githash prints the short hash of the most recent commit of the
// repository containing the working directory, with no trailing newline.
//
// It takes no flags. On failure nothing is printed and the exit status tells
// why: 3 when git could not be run, 4 when it printed nothing.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/docstamp/internal/git"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout, git.NewExecGit(git.Options{Dir: "."})))
}

func run(ctx context.Context, stdout io.Writer, q git.Querier) int {
	hash, err := q.ShortHash(ctx)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err)
	}
	if _, err := fmt.Fprint(stdout, hash); err != nil {
		return errors.ExitGeneral
	}
	return errors.ExitOK
}
