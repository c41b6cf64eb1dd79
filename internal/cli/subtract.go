package cli

import (
	"fmt"

	"github.com/hitlang/hit/hit/transform"
	"github.com/urfave/cli/v2"
)

func newSubtractCommand() *cli.Command {
	return &cli.Command{
		Name:      "subtract",
		Usage:     "remove parameters of 'remove' that base also declares identically",
		ArgsUsage: "<base> <remove>",
		Action: func(c *cli.Context) error {
			args := c.Args().Slice()
			if len(args) != 2 {
				return cli.Exit("subtract: expected exactly <base> and <remove>", 1)
			}

			base, err := loadDoc(args[0])
			if err != nil {
				return cli.Exit(err, 1)
			}
			remove, err := loadDoc(args[1])
			if err != nil {
				return cli.Exit(err, 1)
			}

			baseRoot := base.Node(base.Root())
			params := transform.GatherParamWalker(remove.Node(remove.Root()))
			transform.RemoveParamWalker(baseRoot, params)
			transform.RemoveEmptySectionWalker(baseRoot)

			fmt.Print(renderDefault(baseRoot))
			return nil
		},
	}
}
