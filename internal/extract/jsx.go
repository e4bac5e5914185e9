package extract

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/intl-extract/internal/parser"
)

// intlModule is the package whose exports identify message components.
// Recognition goes through the import-binding table: a tag matches when
// its name refers to one of these exports, regardless of local aliasing.
const intlModule = "react-intl"

// messageComponents are the components extracted by the tagged-element
// recognizer.
var messageComponents = map[string]bool{
	"FormattedMessage":     true,
	"FormattedHTMLMessage": true,
}

// unsupportedComponents declare messages in shapes this recognizer cannot
// extract yet. Seeing one produces a warning, not an error.
var unsupportedComponents = map[string]string{
	"FormattedPlural": "FormattedMessage",
}

// descriptorFields are the attribute names that make up a message
// descriptor. All other attributes are ignored.
var descriptorFields = map[string]bool{
	"id":             true,
	"description":    true,
	"defaultMessage": true,
}

// visitJSXElement runs the tagged-element recognizer on a JSX opening or
// self-closing element.
func (r *run) visitJSXElement(node *sitter.Node) error {
	if r.marked(node) {
		return nil
	}

	component, ok := r.resolveComponent(node.ChildByFieldName("name"))
	if !ok {
		return nil
	}

	if replacement, unsupported := unsupportedComponents[component]; unsupported {
		r.warnf(r.eval.Ref(node),
			"[React Intl] <%s> is not extractable yet, use <%s> instead", component, replacement)
		return nil
	}
	if !messageComponents[component] {
		return nil
	}

	fields, attrNodes := r.collectAttributes(node)

	// Declarations without an explicit defaultMessage (spread props,
	// computed descriptors) are left to a different mechanism.
	if _, hasDefault := fields["defaultMessage"]; !hasDefault {
		return nil
	}

	desc, err := r.eval.EvaluateDescriptor(fields)
	if err != nil {
		return err
	}
	if desc.ID == "" {
		return fmt.Errorf("%s: [React Intl] message descriptors require an id", r.eval.Ref(node))
	}

	if err := r.catalog.Put(desc, r.eval.Ref(node)); err != nil {
		return err
	}

	// The description attribute has no runtime role; record its removal
	// for the downstream source rewriter.
	if attr, hasDescription := attrNodes["description"]; hasDescription {
		r.result.Edits = append(r.result.Edits, SourceEdit{
			Start: attr.StartByte(),
			End:   attr.EndByte(),
		})
	}

	r.mark(node)
	return nil
}

// resolveComponent maps a JSX tag-name node to the react-intl export it
// refers to. Plain tags resolve through the named-import table; member
// tags (<Intl.FormattedMessage>) resolve through a namespace import.
func (r *run) resolveComponent(nameNode *sitter.Node) (string, bool) {
	if nameNode == nil {
		return "", false
	}

	switch nameNode.Kind() {
	case "identifier":
		bind, ok := r.bindings.Lookup(parser.Text(nameNode, r.file.Source))
		if !ok || bind.Module != intlModule || bind.Namespace || bind.Default {
			return "", false
		}
		return bind.Imported, true

	case "nested_identifier", "member_expression":
		object := nameNode.NamedChild(0)
		property := nameNode.NamedChild(nameNode.NamedChildCount() - 1)
		if object == nil || property == nil || object.Kind() != "identifier" {
			return "", false
		}
		bind, ok := r.bindings.Lookup(parser.Text(object, r.file.Source))
		if !ok || bind.Module != intlModule || !bind.Namespace {
			return "", false
		}
		return parser.Text(property, r.file.Source), true
	}

	return "", false
}

// collectAttributes gathers the descriptor-field attributes of an element.
// Spread and computed attributes are not jsx_attribute nodes and fall
// through untouched. Returns field references for the evaluator and the
// attribute nodes themselves for edit recording.
func (r *run) collectAttributes(node *sitter.Node) (map[string]FieldRef, map[string]*sitter.Node) {
	fields := make(map[string]FieldRef)
	attrNodes := make(map[string]*sitter.Node)

	for i := uint(0); i < node.ChildCount(); i++ {
		attr := node.Child(i)
		if attr.Kind() != "jsx_attribute" {
			continue
		}

		nameNode := attr.NamedChild(0)
		if nameNode == nil {
			continue
		}
		name := parser.Text(nameNode, r.file.Source)
		if !descriptorFields[name] {
			continue
		}

		value := attributeValue(attr)
		if value == nil {
			continue // bare boolean attribute, nothing to resolve
		}

		fields[name] = FieldRef{
			Node:             value,
			FromJSXAttribute: value.Kind() == "string",
		}
		attrNodes[name] = attr
	}

	return fields, attrNodes
}

// attributeValue returns the value node of a jsx_attribute, or nil for a
// bare attribute.
func attributeValue(attr *sitter.Node) *sitter.Node {
	for i := attr.NamedChildCount(); i > 1; i-- {
		child := attr.NamedChild(i - 1)
		switch child.Kind() {
		case "string", "jsx_expression", "template_string":
			return child
		}
	}
	return nil
}
