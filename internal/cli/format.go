package cli

import (
	"fmt"
	"os"

	"github.com/hitlang/hit/hit/render"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

func newFormatCommand() *cli.Command {
	return &cli.Command{
		Name:      "format",
		Usage:     "pretty-print HIT documents",
		ArgsUsage: "<file...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "i", Usage: "format in place"},
			&cli.StringFlag{Name: "style", Usage: "style document to format with"},
		},
		Action: func(c *cli.Context) error {
			files := c.Args().Slice()
			if len(files) == 0 {
				return cli.Exit("format: expected at least one file", 1)
			}

			f, err := loadFormatter(c.String("style"))
			if err != nil {
				return cli.Exit(err, 1)
			}

			for _, file := range files {
				tree, err := loadDoc(file)
				if err != nil {
					return cli.Exit(err, 1)
				}
				root := tree.Node(tree.Root())
				f.Walk(root)
				out := render.Render(root, f.IndentString, f.LineLength)

				if c.Bool("i") {
					if err := afero.WriteFile(fs, file, []byte(out), 0o644); err != nil {
						return cli.Exit(err, 1)
					}
					continue
				}
				fmt.Fprint(os.Stdout, out)
			}
			return nil
		},
	}
}

func loadFormatter(styleFile string) (*render.Formatter, error) {
	if styleFile == "" {
		return render.DefaultFormatter(), nil
	}
	tree, err := loadDoc(styleFile)
	if err != nil {
		return nil, err
	}
	return render.NewFormatter(tree.Node(tree.Root()))
}
