package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/MacroPower/rpathgen/internal/cli"
	"github.com/MacroPower/rpathgen/pkg/log"
)

func init() {
	if err := log.SetDefault(os.Stderr, "warn", "text"); err != nil {
		panic(err)
	}
}

const (
	cmdName = "rpathgen"

	shortDesc = "Compute origin-relative RPATH strings."
	longDesc  = `Compute an origin-relative library search path (RPATH) for a binary.

The first argument is the directory that will contain the binary. Every
following argument is a directory holding shared libraries it depends on.
Each dependency is made relative to the origin, prefixed with $ORIGIN, and
the entries are joined with ':' in the order given.

Paths are handled lexically: they are not required to exist and symbolic
links are not resolved.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
