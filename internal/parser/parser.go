// Package parser wraps tree-sitter parsing of JavaScript and TypeScript
// sources (including JSX/TSX) and provides the node-level services the
// extraction engine builds on: traversal, source positions, import-binding
// resolution, and static constant folding.
package parser

import (
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// File is a parsed source file. Close must be called to release the
// underlying tree.
type File struct {
	Path   string
	Source []byte
	Root   *sitter.Node

	tree *sitter.Tree
}

// Close releases the parse tree. The Root node is invalid afterwards.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Parser parses JS/TS/JSX/TSX sources. The TSX grammar is a superset of
// the others, so a single grammar covers all four extensions.
type Parser struct {
	language *sitter.Language
}

// New creates a parser using the TSX grammar.
func New() *Parser {
	return &Parser{language: sitter.NewLanguage(typescript.LanguageTSX())}
}

// Parse parses source into a File. path is used for diagnostics only.
func (p *Parser) Parse(path string, source []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s", path)
	}

	return &File{
		Path:   path,
		Source: source,
		Root:   tree.RootNode(),
		tree:   tree,
	}, nil
}

// ParseFile reads and parses the file at path.
func (p *Parser) ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(path, source)
}

// Position is a 1-based line and column in a source file.
type Position struct {
	Line   int
	Column int
}

// StartPosition returns the 1-based start position of a node.
func StartPosition(node *sitter.Node) Position {
	p := node.StartPosition()
	return Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

// EndPosition returns the 1-based end position of a node.
func EndPosition(node *sitter.Node) Position {
	p := node.EndPosition()
	return Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

// Text returns the source text of a node.
func Text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// Walk visits node and its descendants depth-first. Returning false from
// the visitor prunes the subtree.
func Walk(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		Walk(node.Child(i), visitor)
	}
}

// FindChildByKind returns the first child with the given node kind.
func FindChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// NamedChildren returns the named children of a node.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	var children []*sitter.Node
	for i := uint(0); i < node.NamedChildCount(); i++ {
		children = append(children, node.NamedChild(i))
	}
	return children
}
