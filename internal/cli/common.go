package cli

import (
	"fmt"

	"github.com/hitlang/hit/hit/transform"
	"github.com/urfave/cli/v2"
)

func newCommonCommand() *cli.Command {
	return &cli.Command{
		Name:      "common",
		Usage:     "print parameters common to all given documents with identical values",
		ArgsUsage: "<file...>",
		Action: func(c *cli.Context) error {
			files := c.Args().Slice()
			if len(files) < 2 {
				return cli.Exit("common: expected at least two files", 1)
			}

			var common map[string]string
			for _, file := range files {
				tree, err := loadDoc(file)
				if err != nil {
					return cli.Exit(err, 1)
				}
				params := transform.GatherParamWalker(tree.Node(tree.Root()))
				if common == nil {
					common = params
					continue
				}
				for path, value := range common {
					v, ok := params[path]
					if !ok || v != value {
						delete(common, path)
					}
				}
			}

			if len(common) == 0 {
				return cli.Exit("", 1)
			}
			for path, value := range common {
				fmt.Printf("%s = %s\n", path, value)
			}
			return nil
		},
	}
}
