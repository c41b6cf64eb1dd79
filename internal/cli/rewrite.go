package cli

import (
	"fmt"
	"os"

	"github.com/hitlang/hit/hit/rewrite"
	"github.com/hitlang/hit/hit/transform"
	"github.com/urfave/cli/v2"
)

func newRewriteCommand() *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "apply [ReplacementRules] pattern files to a document",
		ArgsUsage: "<input> <rules...>",
		Action: func(c *cli.Context) error {
			args := c.Args().Slice()
			if len(args) < 2 {
				return cli.Exit("rewrite: expected an input file and at least one rule file", 1)
			}

			input, err := loadDoc(args[0])
			if err != nil {
				return cli.Exit(err, 1)
			}
			inputRoot := input.Node(input.Root())

			rulesTree, err := loadDoc(args[1])
			if err != nil {
				return cli.Exit(err, 1)
			}
			rulesRoot := rulesTree.Node(rulesTree.Root())
			for _, file := range args[2:] {
				more, err := loadDoc(file)
				if err != nil {
					return cli.Exit(err, 1)
				}
				transform.Merge(more.Node(more.Root()), rulesRoot)
			}

			rules, err := rewrite.LoadRules(rulesRoot)
			if err != nil {
				return cli.Exit(err, 1)
			}
			if len(rules) == 0 {
				return cli.Exit("rewrite: no [ReplacementRules] block found in the rule files", 1)
			}

			for _, rule := range rules {
				if _, err := rewrite.Apply(rule, inputRoot); err != nil {
					return cli.Exit(err, 1)
				}
			}

			fmt.Fprintln(os.Stdout, renderDefault(inputRoot))
			return nil
		},
	}
}
