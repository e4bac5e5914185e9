package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/intl-extract/internal/parser"
)

// helperFunction is the runtime helper whose calls declare a message id.
// Matching is by callee name, bare (formatIntlMessage(...)) or through a
// member access (intl.formatIntlMessage(...)).
const helperFunction = "formatIntlMessage"

// visitCallExpression runs the function-call recognizer. This path
// extracts only the message id; description and defaultMessage are
// assumed to exist at runtime.
func (r *run) visitCallExpression(node *sitter.Node) error {
	if calleeName(node, r.file.Source) != helperFunction {
		return nil
	}

	arg := firstArgument(node)
	if arg == nil {
		return &ExpectedLiteralError{Callee: helperFunction, Ref: r.eval.Ref(node)}
	}
	if r.marked(arg) {
		return nil
	}

	if arg.Kind() != "string" {
		return &ExpectedLiteralError{Callee: helperFunction, Ref: r.eval.Ref(arg)}
	}
	value, ok := parser.Evaluate(arg, r.file.Source)
	if !ok {
		return &ExpectedLiteralError{Callee: helperFunction, Ref: r.eval.Ref(arg)}
	}
	id := value.(string)

	if err := r.catalog.Put(&Descriptor{ID: id}, r.eval.Ref(arg)); err != nil {
		return err
	}

	r.mark(arg)
	return nil
}

// calleeName returns the bare or member-access callee name of a call
// expression, or "" when the callee has another shape.
func calleeName(call *sitter.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}

	switch fn.Kind() {
	case "identifier":
		return parser.Text(fn, source)
	case "member_expression":
		return parser.Text(fn.ChildByFieldName("property"), source)
	}
	return ""
}

// firstArgument returns the first real argument of a call expression.
func firstArgument(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := uint(0); i < args.NamedChildCount(); i++ {
		child := args.NamedChild(i)
		if child.Kind() != "comment" {
			return child
		}
	}
	return nil
}
