package cli

import (
	"fmt"
	"sort"

	"github.com/hitlang/hit/hit/transform"
	"github.com/urfave/cli/v2"
)

func newDiffCommand() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare parameters between two sets of documents",
		ArgsUsage: "[left] [right]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "left", Usage: "left-hand files (alternative to the positional form)"},
			&cli.StringSliceFlag{Name: "right", Usage: "right-hand files (alternative to the positional form)"},
			&cli.BoolFlag{Name: "v", Usage: "verbose: also print parameters present on both sides with equal values"},
			&cli.BoolFlag{Name: "common", Usage: "only print parameters present on both sides with equal values"},
			&cli.BoolFlag{Name: "C", Aliases: []string{"color"}, Usage: "colorize output"},
		},
		Action: func(c *cli.Context) error {
			left := c.StringSlice("left")
			right := c.StringSlice("right")
			args := c.Args().Slice()
			if len(left) == 0 && len(right) == 0 {
				if len(args) != 2 {
					return cli.Exit("diff: expected [left] [right] or -left/-right file lists", 1)
				}
				left = []string{args[0]}
				right = []string{args[1]}
			}

			leftParams, err := gatherAll(left)
			if err != nil {
				return cli.Exit(err, 1)
			}
			rightParams, err := gatherAll(right)
			if err != nil {
				return cli.Exit(err, 1)
			}

			verbose := c.Bool("v")
			onlyCommon := c.Bool("common")
			color := c.Bool("C")

			paths := unionKeys(leftParams, rightParams)
			changed := false
			for _, path := range paths {
				lv, lok := leftParams[path]
				rv, rok := rightParams[path]

				switch {
				case lok && rok && lv == rv:
					if onlyCommon || verbose {
						printDiffLine(' ', path, lv, color)
					}
				case onlyCommon:
					continue
				case lok && rok:
					changed = true
					printDiffLine('-', path, lv, color)
					printDiffLine('+', path, rv, color)
				case lok:
					changed = true
					printDiffLine('-', path, lv, color)
				case rok:
					changed = true
					printDiffLine('+', path, rv, color)
				}
			}

			if changed {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func gatherAll(files []string) (map[string]string, error) {
	out := map[string]string{}
	for _, file := range files {
		tree, err := loadDoc(file)
		if err != nil {
			return nil, err
		}
		for path, value := range transform.GatherParamWalker(tree.Node(tree.Root())) {
			out[path] = value
		}
	}
	return out, nil
}

func unionKeys(a, b map[string]string) []string {
	seen := map[string]bool{}
	var out []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func printDiffLine(marker byte, path, value string, color bool) {
	line := fmt.Sprintf("%c %s = %s", marker, path, value)
	if !color {
		fmt.Println(line)
		return
	}
	switch marker {
	case '-':
		fmt.Printf("\x1b[31m%s\x1b[0m\n", line)
	case '+':
		fmt.Printf("\x1b[32m%s\x1b[0m\n", line)
	default:
		fmt.Println(line)
	}
}
