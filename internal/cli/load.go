package cli

import (
	"github.com/hitlang/hit/hit/ast"
	"github.com/hitlang/hit/hit/render"
	"github.com/hitlang/hit/hit/transform"
	"github.com/spf13/afero"
)

var fs afero.Fs = afero.NewOsFs()

// loadDoc reads and fully resolves a HIT document: include splicing,
// block merge, explode, and brace expansion, in that order, matching
// the component dependency order the core is built in.
func loadDoc(file string) (*ast.Tree, error) {
	tree, err := ast.ResolveTree(fs, file)
	if err != nil {
		return nil, err
	}
	root := tree.Node(tree.Root())
	ast.MergeBlocks(root)
	transform.Explode(root)
	if err := ast.ExpandDocument(root, nil); err != nil {
		return nil, err
	}
	return tree, nil
}

// renderDefault pretty-prints root with the stock formatting style,
// for subcommands that emit a document without taking a -style flag.
func renderDefault(root ast.Node) string {
	f := render.DefaultFormatter()
	return render.Render(root, f.IndentString, f.LineLength)
}
