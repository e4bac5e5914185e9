// Package icu parses and validates ICU MessageFormat templates.
//
// It is a syntax-level parser: it produces a parse tree for a message
// template (literal text, arguments, number/date/time formats, and
// plural/select/selectordinal sub-messages) or a SyntaxError pointing at
// the offending offset. It performs no formatting.
package icu

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NodeType identifies the kind of a parsed message node.
type NodeType int

const (
	// TextNode is a run of literal message text.
	TextNode NodeType = iota
	// ArgumentNode is a simple placeholder such as {name} or {n, number}.
	ArgumentNode
	// SelectNode is a plural, selectordinal, or select argument with
	// keyword-keyed sub-messages.
	SelectNode
	// PoundNode is the '#' shorthand inside a plural sub-message.
	PoundNode
)

// Node is one element of a parsed message template.
type Node struct {
	Type NodeType
	// Text holds literal text for TextNode, or the argument name for
	// ArgumentNode and SelectNode.
	Text string
	// Format is the argument type: "number", "date", "time", "plural",
	// "select", or "selectordinal". Empty for a bare {name} argument.
	Format string
	// Style is the optional format style (e.g. "integer", "short").
	Style string
	// Offset is the plural offset (offset:n), zero when absent.
	Offset int
	// Options are the sub-messages of a SelectNode, in source order.
	Options []Option
	// Pos is the byte offset of the node in the template.
	Pos int
}

// Option is one selector-keyed sub-message of a plural or select argument.
type Option struct {
	Selector string
	Message  []Node
}

// SyntaxError describes a malformed message template.
type SyntaxError struct {
	Msg string
	Pos int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

// Parse parses an ICU MessageFormat template and returns its node list.
// A nil error means the template is syntactically valid.
func Parse(input string) ([]Node, error) {
	p := &parser{src: input}
	nodes, err := p.parseMessage(0, false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		// Only an unbalanced '}' can stop parseMessage early at top level.
		return nil, &SyntaxError{Msg: "unmatched '}'", Pos: p.pos}
	}
	return nodes, nil
}

const maxNesting = 32

type parser struct {
	src string
	pos int
}

func (p *parser) errf(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// parseMessage parses until end of input or an unconsumed '}'.
// inPlural enables the '#' shorthand.
func (p *parser) parseMessage(depth int, inPlural bool) ([]Node, error) {
	if depth > maxNesting {
		return nil, p.errf(p.pos, "message nesting exceeds %d levels", maxNesting)
	}

	var nodes []Node
	var text strings.Builder
	textStart := p.pos

	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, Node{Type: TextNode, Text: text.String(), Pos: textStart})
			text.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '}':
			flush()
			return nodes, nil

		case c == '{':
			flush()
			arg, err := p.parseArgument(depth)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, arg)
			textStart = p.pos

		case c == '#' && inPlural:
			flush()
			nodes = append(nodes, Node{Type: PoundNode, Pos: p.pos})
			p.pos++
			textStart = p.pos

		case c == '\'':
			if text.Len() == 0 {
				textStart = p.pos
			}
			p.parseQuoted(&text, inPlural)

		default:
			if text.Len() == 0 {
				textStart = p.pos
			}
			text.WriteByte(c)
			p.pos++
		}
	}

	flush()
	return nodes, nil
}

// parseQuoted consumes an apostrophe and whatever it quotes, appending the
// literal text to out. ICU uses "double optional" quoting: '' is a literal
// apostrophe; an apostrophe followed by syntax ({, }, or # inside plural)
// quotes everything up to the next single apostrophe; any other apostrophe
// is literal text.
func (p *parser) parseQuoted(out *strings.Builder, inPlural bool) {
	p.pos++ // leading '

	if p.pos < len(p.src) && p.src[p.pos] == '\'' {
		out.WriteByte('\'')
		p.pos++
		return
	}

	next := byte(0)
	if p.pos < len(p.src) {
		next = p.src[p.pos]
	}
	quotable := next == '{' || next == '}' || (inPlural && next == '#')
	if !quotable {
		out.WriteByte('\'')
		return
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\'' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				out.WriteByte('\'')
				p.pos += 2
				continue
			}
			p.pos++ // closing '
			return
		}
		out.WriteByte(c)
		p.pos++
	}
	// Unterminated quote runs to end of message, matching ICU behavior.
}

// parseArgument parses one {...} argument starting at '{'.
func (p *parser) parseArgument(depth int) (Node, error) {
	start := p.pos
	p.pos++ // '{'
	p.skipSpace()

	name, err := p.parseArgName()
	if err != nil {
		return Node{}, err
	}
	p.skipSpace()

	if p.consume('}') {
		return Node{Type: ArgumentNode, Text: name, Pos: start}, nil
	}
	if !p.consume(',') {
		return Node{}, p.errf(p.pos, "expected ',' or '}' in argument %q", name)
	}
	p.skipSpace()

	format, err := p.parseArgName()
	if err != nil {
		return Node{}, err
	}
	p.skipSpace()

	switch format {
	case "number", "date", "time":
		node := Node{Type: ArgumentNode, Text: name, Format: format, Pos: start}
		if p.consume(',') {
			p.skipSpace()
			node.Style = p.parseStyle()
			p.skipSpace()
		}
		if !p.consume('}') {
			return Node{}, p.errf(p.pos, "expected '}' to close argument %q", name)
		}
		return node, nil

	case "plural", "selectordinal", "select":
		if !p.consume(',') {
			return Node{}, p.errf(p.pos, "expected ',' before %s options", format)
		}
		return p.parseSelect(start, name, format, depth)

	default:
		return Node{}, p.errf(p.pos, "unknown argument type %q", format)
	}
}

// parseSelect parses the option list of a plural/select/selectordinal
// argument, up to and including the closing '}'.
func (p *parser) parseSelect(start int, name, format string, depth int) (Node, error) {
	node := Node{Type: SelectNode, Text: name, Format: format, Pos: start}
	plural := format != "select"

	p.skipSpace()
	if plural && strings.HasPrefix(p.src[p.pos:], "offset:") {
		p.pos += len("offset:")
		p.skipSpace()
		numStart := p.pos
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
		if p.pos == numStart {
			return Node{}, p.errf(p.pos, "expected number after offset:")
		}
		node.Offset, _ = strconv.Atoi(p.src[numStart:p.pos])
		p.skipSpace()
	}

	seen := map[string]bool{}
	for {
		if p.pos >= len(p.src) {
			return Node{}, p.errf(p.pos, "unclosed %s argument %q", format, name)
		}
		if p.consume('}') {
			break
		}

		selStart := p.pos
		sel, err := p.parseSelector(plural)
		if err != nil {
			return Node{}, err
		}
		if seen[sel] {
			return Node{}, p.errf(selStart, "duplicate selector %q in %s argument", sel, format)
		}
		seen[sel] = true

		p.skipSpace()
		if !p.consume('{') {
			return Node{}, p.errf(p.pos, "expected '{' after selector %q", sel)
		}
		msg, err := p.parseMessage(depth+1, plural)
		if err != nil {
			return Node{}, err
		}
		if !p.consume('}') {
			return Node{}, p.errf(p.pos, "unclosed sub-message for selector %q", sel)
		}
		node.Options = append(node.Options, Option{Selector: sel, Message: msg})
		p.skipSpace()
	}

	if len(node.Options) == 0 {
		return Node{}, p.errf(p.pos, "%s argument %q has no options", format, name)
	}
	if !seen["other"] {
		return Node{}, p.errf(p.pos, "%s argument %q is missing the required 'other' option", format, name)
	}
	return node, nil
}

// parseSelector reads one option selector. Plural arguments additionally
// allow exact-value selectors of the form =n.
func (p *parser) parseSelector(plural bool) (string, error) {
	if plural && p.pos < len(p.src) && p.src[p.pos] == '=' {
		start := p.pos
		p.pos++
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
		if p.pos == start+1 {
			return "", p.errf(start, "expected number after '=' selector")
		}
		return p.src[start:p.pos], nil
	}
	sel, err := p.parseArgName()
	if err != nil {
		return "", p.errf(p.pos, "expected selector")
	}
	return sel, nil
}

// parseArgName reads an argument name, type keyword, or selector keyword.
func (p *parser) parseArgName() (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if unicode.IsSpace(r) || r == ',' || r == '{' || r == '}' || r == '=' || r == '\'' || r == '#' {
			break
		}
		p.pos += size
	}
	if p.pos == start {
		return "", p.errf(start, "expected argument name")
	}
	return p.src[start:p.pos], nil
}

// parseStyle reads a format style, balancing any nested braces so styles
// like "::currency/EUR" or skeleton blocks survive intact.
func (p *parser) parseStyle() string {
	start := p.pos
	nesting := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '{' {
			nesting++
		} else if c == '}' {
			if nesting == 0 {
				break
			}
			nesting--
		}
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// ArgumentNames returns the distinct placeholder names referenced by a
// parsed message, in first-appearance order.
func ArgumentNames(nodes []Node) []string {
	var names []string
	seen := map[string]bool{}
	var walk func([]Node)
	walk = func(ns []Node) {
		for _, n := range ns {
			switch n.Type {
			case ArgumentNode, SelectNode:
				if !seen[n.Text] {
					seen[n.Text] = true
					names = append(names, n.Text)
				}
			}
			for _, opt := range n.Options {
				walk(opt.Message)
			}
		}
	}
	walk(nodes)
	return names
}
