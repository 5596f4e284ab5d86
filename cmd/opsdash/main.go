// Command opsdash is the operator CLI for the logistics risk dashboard.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/opsdash/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()

	// Commands print their own failures; only surface the rest.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
