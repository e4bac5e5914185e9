package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Binding records where a local identifier comes from: the module it was
// imported from and the exported name it was bound to.
type Binding struct {
	Module    string
	Imported  string
	Default   bool
	Namespace bool
}

// Bindings is the resolved-binding table for one file: local identifier
// name to originating import. Identifiers that are re-declared anywhere in
// the file no longer refer to their import and resolve to nothing.
type Bindings struct {
	imports  map[string]Binding
	shadowed map[string]bool
}

// CollectBindings builds the binding table for a parsed file by scanning
// import statements and any declarations that rebind an imported name.
func CollectBindings(root *sitter.Node, source []byte) *Bindings {
	b := &Bindings{
		imports:  make(map[string]Binding),
		shadowed: make(map[string]bool),
	}

	Walk(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			b.collectImport(n, source)
			return false
		case "variable_declarator", "function_declaration", "class_declaration":
			if name := n.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				local := Text(name, source)
				if _, ok := b.imports[local]; ok {
					b.shadowed[local] = true
				}
			}
		}
		return true
	})

	return b
}

func (b *Bindings) collectImport(stmt *sitter.Node, source []byte) {
	module := importSource(stmt, source)

	clause := FindChildByKind(stmt, "import_clause")
	if clause == nil {
		return // bare side-effect import
	}

	for i := uint(0); i < clause.ChildCount(); i++ {
		child := clause.Child(i)
		switch child.Kind() {
		case "identifier":
			// import Foo from '...'
			local := Text(child, source)
			b.imports[local] = Binding{Module: module, Imported: "default", Default: true}

		case "namespace_import":
			// import * as Foo from '...'
			if ident := FindChildByKind(child, "identifier"); ident != nil {
				local := Text(ident, source)
				b.imports[local] = Binding{Module: module, Namespace: true}
			}

		case "named_imports":
			b.collectNamedImports(child, module, source)
		}
	}
}

func (b *Bindings) collectNamedImports(named *sitter.Node, module string, source []byte) {
	for i := uint(0); i < named.ChildCount(); i++ {
		spec := named.Child(i)
		if spec.Kind() != "import_specifier" {
			continue
		}

		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		imported := Text(nameNode, source)

		local := imported
		if aliasNode := spec.ChildByFieldName("alias"); aliasNode != nil {
			local = Text(aliasNode, source)
		}

		b.imports[local] = Binding{Module: module, Imported: imported}
	}
}

// importSource extracts the module path of an import statement.
func importSource(stmt *sitter.Node, source []byte) string {
	str := stmt.ChildByFieldName("source")
	if str == nil {
		str = FindChildByKind(stmt, "string")
	}
	if str == nil {
		return ""
	}
	text := Text(str, source)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}

// Lookup returns the binding for a local identifier, if it still refers to
// an import.
func (b *Bindings) Lookup(name string) (Binding, bool) {
	if b.shadowed[name] {
		return Binding{}, false
	}
	bind, ok := b.imports[name]
	return bind, ok
}

// ResolvesTo reports whether the local identifier name refers to the given
// named export of the given module. This is an identity check over the
// binding table, not a comparison of the identifier's text.
func (b *Bindings) ResolvesTo(name, module, imported string) bool {
	bind, ok := b.Lookup(name)
	return ok && bind.Module == module && bind.Imported == imported
}
