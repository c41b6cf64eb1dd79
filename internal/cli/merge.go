package cli

import (
	"os"

	"github.com/hitlang/hit/hit/ast"
	"github.com/hitlang/hit/hit/transform"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

func newMergeCommand() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "merge several HIT documents into one",
		ArgsUsage: "<file...>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Required: true, Usage: "file to write the merged document to"},
		},
		Action: func(c *cli.Context) error {
			files := c.Args().Slice()
			if len(files) == 0 {
				return cli.Exit("merge: expected at least one file", 1)
			}

			into, err := ast.Parse("<merged>", "")
			if err != nil {
				return cli.Exit(err, 1)
			}
			intoRoot := into.Node(into.Root())

			for _, file := range files {
				tree, err := loadDoc(file)
				if err != nil {
					return cli.Exit(err, 1)
				}
				transform.Merge(tree.Node(tree.Root()), intoRoot)
			}

			out := renderDefault(intoRoot)
			output := c.String("output")
			if output == "-" {
				_, err = os.Stdout.WriteString(out)
				return err
			}
			return afero.WriteFile(fs, output, []byte(out), 0o644)
		},
	}
}
