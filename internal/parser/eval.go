package parser

import (
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Evaluate statically folds an expression node to a constant. The second
// return value reports confidence: false means the expression is not
// statically evaluable (identifiers, calls, template substitutions, and
// anything else that needs runtime state).
//
// Supported results: string, float64, bool, nil (null literal), and
// map[string]interface{} for object literals.
func Evaluate(node *sitter.Node, source []byte) (interface{}, bool) {
	if node == nil {
		return nil, false
	}

	switch node.Kind() {
	case "string":
		return decodeString(node, source), true

	case "template_string":
		return evaluateTemplateString(node, source)

	case "number":
		n, err := strconv.ParseFloat(Text(node, source), 64)
		if err != nil {
			return nil, false
		}
		return n, true

	case "true":
		return true, true
	case "false":
		return false, true
	case "null":
		return nil, true

	case "parenthesized_expression", "jsx_expression":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child.Kind() != "comment" {
				return Evaluate(child, source)
			}
		}
		return nil, false

	case "binary_expression":
		return evaluateBinary(node, source)

	case "unary_expression":
		return evaluateUnary(node, source)

	case "object":
		return evaluateObject(node, source)

	default:
		return nil, false
	}
}

// evaluateTemplateString folds a template literal with no substitutions.
func evaluateTemplateString(node *sitter.Node, source []byte) (interface{}, bool) {
	var sb strings.Builder
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string_fragment":
			sb.WriteString(Text(child, source))
		case "escape_sequence":
			sb.WriteString(decodeEscape(Text(child, source)))
		case "template_substitution":
			return nil, false
		}
	}
	return sb.String(), true
}

func evaluateBinary(node *sitter.Node, source []byte) (interface{}, bool) {
	op := Text(node.ChildByFieldName("operator"), source)
	if op != "+" {
		return nil, false
	}

	left, ok := Evaluate(node.ChildByFieldName("left"), source)
	if !ok {
		return nil, false
	}
	right, ok := Evaluate(node.ChildByFieldName("right"), source)
	if !ok {
		return nil, false
	}

	ls, lIsStr := left.(string)
	rs, rIsStr := right.(string)
	switch {
	case lIsStr && rIsStr:
		return ls + rs, true
	case lIsStr || rIsStr:
		// JS coerces the other operand to a string.
		return stringify(left) + stringify(right), true
	}

	ln, lIsNum := left.(float64)
	rn, rIsNum := right.(float64)
	if lIsNum && rIsNum {
		return ln + rn, true
	}
	return nil, false
}

func evaluateUnary(node *sitter.Node, source []byte) (interface{}, bool) {
	op := Text(node.ChildByFieldName("operator"), source)
	operand, ok := Evaluate(node.ChildByFieldName("argument"), source)
	if !ok {
		return nil, false
	}

	switch op {
	case "-":
		if n, isNum := operand.(float64); isNum {
			return -n, true
		}
	case "+":
		if n, isNum := operand.(float64); isNum {
			return n, true
		}
	case "!":
		if b, isBool := operand.(bool); isBool {
			return !b, true
		}
	}
	return nil, false
}

// evaluateObject folds an object literal whose keys are plain identifiers
// or string literals and whose values are themselves statically evaluable.
func evaluateObject(node *sitter.Node, source []byte) (interface{}, bool) {
	result := make(map[string]interface{})

	for i := uint(0); i < node.NamedChildCount(); i++ {
		pair := node.NamedChild(i)
		switch pair.Kind() {
		case "pair":
			keyNode := pair.ChildByFieldName("key")
			var key string
			switch keyNode.Kind() {
			case "property_identifier":
				key = Text(keyNode, source)
			case "string":
				key = decodeString(keyNode, source)
			default:
				return nil, false // computed key
			}

			value, ok := Evaluate(pair.ChildByFieldName("value"), source)
			if !ok {
				return nil, false
			}
			result[key] = value

		case "comment":
			continue

		default:
			// Shorthand properties, spreads, and methods need runtime state.
			return nil, false
		}
	}

	return result, true
}

// decodeString decodes a string literal node, resolving escape sequences.
func decodeString(node *sitter.Node, source []byte) string {
	var sb strings.Builder
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string_fragment":
			sb.WriteString(Text(child, source))
		case "escape_sequence":
			sb.WriteString(decodeEscape(Text(child, source)))
		}
	}
	return sb.String()
}

// decodeEscape decodes a single JS escape sequence (text including the
// leading backslash).
func decodeEscape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}

	switch seq[1] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		return "\x00"
	case 'x':
		if n, err := strconv.ParseUint(seq[2:], 16, 32); err == nil {
			return string(rune(n))
		}
	case 'u':
		hex := seq[2:]
		if strings.HasPrefix(hex, "{") && strings.HasSuffix(hex, "}") {
			hex = hex[1 : len(hex)-1]
		}
		if n, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return string(rune(n))
		}
	}
	// \\, \', \", \`, and any other escaped character decode to the
	// character itself.
	return seq[1:]
}

// stringify converts an evaluated constant to its JS string form.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	default:
		return ""
	}
}
