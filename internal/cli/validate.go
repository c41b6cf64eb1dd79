package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/hitlang/hit/hit/ast"
	"github.com/hitlang/hit/hit/hiterr"
	"github.com/urfave/cli/v2"
)

func newValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "structurally validate documents and detect duplicate parameters",
		ArgsUsage: "<file...>",
		Action: func(c *cli.Context) error {
			files := c.Args().Slice()
			if len(files) == 0 {
				return cli.Exit("validate: expected at least one file", 1)
			}

			// Every file is validated independently even after a
			// failure, and every problem found across the whole
			// batch is reported together.
			var result *multierror.Error
			for _, file := range files {
				tree, err := loadDoc(file)
				if err != nil {
					result = multierror.Append(result, fmt.Errorf("%s: %w", file, err))
					continue
				}
				dups := findDuplicates(tree.Node(tree.Root()))
				for path, nodes := range dups {
					for _, n := range nodes {
						result = multierror.Append(result,
							hiterr.New(hiterr.KindDuplicateParam, n.Pos(), "'%s' declared more than once", path))
					}
				}
			}

			if result != nil {
				fmt.Print(result.Error())
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// findDuplicates records fullpath -> every Field node sharing it, for
// any fullpath declared more than once.
func findDuplicates(root ast.Node) map[string][]ast.Node {
	byPath := map[string][]ast.Node{}
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for _, c := range n.Children() {
			if c.Kind() == ast.KindField {
				byPath[c.FullPath()] = append(byPath[c.FullPath()], c)
			}
			if c.Kind() == ast.KindSection {
				walk(c)
			}
		}
	}
	walk(root)
	for path, nodes := range byPath {
		if len(nodes) < 2 {
			delete(byPath, path)
		}
	}
	return byPath
}
