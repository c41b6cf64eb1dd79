package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hitlang/hit/hit/ast"
	"github.com/urfave/cli/v2"
)

type findPattern struct {
	param    *regexp.Regexp
	value    *regexp.Regexp
	hasValue bool
}

func parsePattern(s string, caseInsensitive bool) (findPattern, error) {
	var fp findPattern
	param, value, hasValue := s, "", false
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		param, value, hasValue = s[:idx], s[idx+1:], true
	}
	pre, err := globToRegexp(param, caseInsensitive)
	if err != nil {
		return fp, err
	}
	fp.param = pre
	fp.hasValue = hasValue
	if hasValue {
		vre, err := globToRegexp(value, caseInsensitive)
		if err != nil {
			return fp, err
		}
		fp.value = vre
	}
	return fp, nil
}

func (p findPattern) matches(n ast.Node) bool {
	if n.Kind() != ast.KindField {
		return false
	}
	if !p.param.MatchString(n.FullPath()) {
		return false
	}
	if p.hasValue && !p.value.MatchString(ast.Unquote(n.RawValue())) {
		return false
	}
	return true
}

func newFindCommand() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "find parameters matching a pattern",
		ArgsUsage: "<pattern> <file...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "f", Usage: "print matching filenames only"},
			&cli.BoolFlag{Name: "i", Usage: "case-insensitive match"},
			&cli.BoolFlag{Name: "v", Usage: "invert match"},
			&cli.StringSliceFlag{Name: "p", Usage: "additional parent path constraints"},
		},
		Action: func(c *cli.Context) error {
			args := c.Args().Slice()
			if len(args) < 2 {
				return cli.Exit("find: expected a pattern and at least one file", 1)
			}
			pattern, files := args[0], args[1:]

			ci := c.Bool("i")
			invert := c.Bool("v")
			filenamesOnly := c.Bool("f")

			pat, err := parsePattern(pattern, ci)
			if err != nil {
				return cli.Exit(err, 1)
			}
			var parents []findPattern
			for _, p := range c.StringSlice("p") {
				pp, err := parsePattern(p, ci)
				if err != nil {
					return cli.Exit(err, 1)
				}
				parents = append(parents, pp)
			}

			total := 0
			for _, file := range files {
				tree, err := loadDoc(file)
				if err != nil {
					return cli.Exit(err, 1)
				}
				root := tree.Node(tree.Root())
				matches := collectFieldMatches(root, pat, parents, invert)
				for _, m := range matches {
					total++
					if filenamesOnly {
						fmt.Println(file)
						break
					}
					fmt.Printf("%s: %s = %s\n", file, m.FullPath(), ast.Unquote(m.RawValue()))
				}
			}
			if total == 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func collectFieldMatches(root ast.Node, pat findPattern, parents []findPattern, invert bool) []ast.Node {
	var out []ast.Node
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for _, c := range n.Children() {
			if c.Kind() == ast.KindField {
				match := pat.matches(c) && parentsSatisfy(c, parents)
				if match != invert {
					out = append(out, c)
				}
			}
			if c.Kind() == ast.KindSection {
				walk(c)
			}
		}
	}
	walk(root)
	return out
}

func parentsSatisfy(n ast.Node, parents []findPattern) bool {
	for _, p := range parents {
		satisfied := false
		for cur := n.Parent(); cur.H != ast.NoHandle; cur = cur.Parent() {
			if cur.Kind() == ast.KindSection && p.param.MatchString(cur.FullPath()) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}
