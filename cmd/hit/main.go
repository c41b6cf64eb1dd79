// Command hit is the command-line driver for the HIT configuration
// language core: find, format, diff, common, subtract, merge,
// validate, rewrite, and braceexpr.
package main

import (
	"github.com/hitlang/hit/internal/cli"
)

func main() {
	cli.Run()
}
