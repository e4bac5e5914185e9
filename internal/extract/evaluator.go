package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/intl-extract/internal/icu"
	"github.com/mvp-joe/intl-extract/internal/parser"
)

// TemplateParser validates a message template against the message-format
// grammar. A nil error means the template parsed.
type TemplateParser func(message string) error

// DefaultTemplateParser validates templates as ICU MessageFormat.
func DefaultTemplateParser(message string) error {
	_, err := icu.Parse(message)
	return err
}

// FieldRef is a raw, unresolved pointer to one descriptor field's value
// expression. Produced by a recognizer, consumed once by the evaluator.
type FieldRef struct {
	Node *sitter.Node
	// FromJSXAttribute marks values authored as plain JSX attribute string
	// literals, which changes the diagnostic for backslash-escaping
	// mistakes.
	FromJSXAttribute bool
}

// Evaluator resolves raw field references into concrete descriptor values.
// It is pure: it reads the tree and never modifies it.
type Evaluator struct {
	file          *parser.File
	parseTemplate TemplateParser
}

// NewEvaluator creates an evaluator for one parsed file. A nil
// templateParser falls back to DefaultTemplateParser.
func NewEvaluator(file *parser.File, templateParser TemplateParser) *Evaluator {
	if templateParser == nil {
		templateParser = DefaultTemplateParser
	}
	return &Evaluator{file: file, parseTemplate: templateParser}
}

// Ref builds a SourceRef for a node in the evaluator's file.
func (e *Evaluator) Ref(node *sitter.Node) SourceRef {
	return SourceRef{
		File:  e.file.Path,
		Start: parser.StartPosition(node),
		End:   parser.EndPosition(node),
	}
}

// ResolveKey resolves a field-name node: a plain identifier-like token
// resolves to its literal name, anything else must evaluate to a string
// constant.
func (e *Evaluator) ResolveKey(node *sitter.Node) (string, error) {
	switch node.Kind() {
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return parser.Text(node, e.file.Source), nil
	}

	value, ok := parser.Evaluate(node, e.file.Source)
	if !ok {
		return "", &NotStaticallyEvaluableError{Field: "key", Ref: e.Ref(node)}
	}
	if s, isStr := value.(string); isStr {
		return s, nil
	}
	return "", &NotStaticallyEvaluableError{Field: "key", Ref: e.Ref(node)}
}

// ResolveValue resolves a field value: unwraps one expression container,
// statically evaluates, and trims surrounding whitespace from string
// results.
func (e *Evaluator) ResolveValue(field string, ref FieldRef) (interface{}, error) {
	node := ref.Node
	if node.Kind() == "jsx_expression" || node.Kind() == "parenthesized_expression" {
		if inner := firstExpression(node); inner != nil {
			node = inner
		}
	}

	value, ok := parser.Evaluate(node, e.file.Source)
	if !ok {
		return nil, &NotStaticallyEvaluableError{Field: field, Ref: e.Ref(ref.Node)}
	}
	if s, isStr := value.(string); isStr {
		return strings.TrimSpace(s), nil
	}
	return value, nil
}

// ResolveTemplate resolves a defaultMessage value and validates it against
// the message-format grammar.
func (e *Evaluator) ResolveTemplate(field string, ref FieldRef) (string, error) {
	value, err := e.ResolveValue(field, ref)
	if err != nil {
		return "", err
	}

	message, isStr := value.(string)
	if !isStr {
		return "", &NotStaticallyEvaluableError{Field: field, Ref: e.Ref(ref.Node)}
	}

	if err := e.parseTemplate(message); err != nil {
		raw := parser.Text(ref.Node, e.file.Source)
		if ref.FromJSXAttribute && strings.Contains(raw, `\\`) {
			return "", &EscapingMismatchError{Ref: e.Ref(ref.Node)}
		}
		return "", &TemplateSyntaxError{Ref: e.Ref(ref.Node), Err: err}
	}

	return message, nil
}

// EvaluateDescriptor resolves the recognized descriptor fields (id,
// description, defaultMessage) into a Descriptor.
func (e *Evaluator) EvaluateDescriptor(fields map[string]FieldRef) (*Descriptor, error) {
	desc := &Descriptor{}

	if ref, ok := fields["id"]; ok {
		value, err := e.ResolveValue("id", ref)
		if err != nil {
			return nil, err
		}
		id, isStr := value.(string)
		if !isStr {
			return nil, &NotStaticallyEvaluableError{Field: "id", Ref: e.Ref(ref.Node)}
		}
		desc.ID = id
	}

	if ref, ok := fields["description"]; ok {
		value, err := e.ResolveValue("description", ref)
		if err != nil {
			return nil, err
		}
		desc.Description = value
	}

	if ref, ok := fields["defaultMessage"]; ok {
		message, err := e.ResolveTemplate("defaultMessage", ref)
		if err != nil {
			return nil, err
		}
		desc.DefaultMessage = message
	}

	return desc, nil
}

// firstExpression returns the first named non-comment child of a
// container node.
func firstExpression(node *sitter.Node) *sitter.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "comment" {
			return child
		}
	}
	return nil
}
