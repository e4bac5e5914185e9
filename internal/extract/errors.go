package extract

import (
	"fmt"

	"github.com/mvp-joe/intl-extract/internal/parser"
)

// SourceRef locates a declaration (or one of its fields) in a source file
// for diagnostics.
type SourceRef struct {
	File  string
	Start parser.Position
	End   parser.Position
}

func (r SourceRef) String() string {
	return fmt.Sprintf("%s:%d:%d", r.File, r.Start.Line, r.Start.Column)
}

// NotStaticallyEvaluableError reports a descriptor field whose value
// expression could not be reduced to a constant at extraction time.
type NotStaticallyEvaluableError struct {
	Field string
	Ref   SourceRef
}

func (e *NotStaticallyEvaluableError) Error() string {
	return fmt.Sprintf("%s: [React Intl] message %s must be statically evaluable", e.Ref, e.Field)
}

// TemplateSyntaxError reports a defaultMessage that fails ICU
// MessageFormat validation.
type TemplateSyntaxError struct {
	Ref SourceRef
	Err error
}

func (e *TemplateSyntaxError) Error() string {
	return fmt.Sprintf("%s: [React Intl] invalid defaultMessage: %v", e.Ref, e.Err)
}

func (e *TemplateSyntaxError) Unwrap() error { return e.Err }

// EscapingMismatchError is a specialization of a template syntax failure
// for a known authoring mistake: backslash string escapes used in a JSX
// attribute, where JSX performs no backslash escaping.
type EscapingMismatchError struct {
	Ref SourceRef
}

func (e *EscapingMismatchError) Error() string {
	return fmt.Sprintf("%s: [React Intl] JSX attributes do not support backslash escapes; "+
		"use a {expression} container with a string literal instead", e.Ref)
}

// DuplicateIDError reports two declarations of the same message id with
// differing description or defaultMessage.
type DuplicateIDError struct {
	ID       string
	Ref      SourceRef
	Previous *SourceRef
}

func (e *DuplicateIDError) Error() string {
	msg := fmt.Sprintf("%s: [React Intl] duplicate message id %q with conflicting description or defaultMessage", e.Ref, e.ID)
	if e.Previous != nil {
		msg += fmt.Sprintf(" (first declared at %s)", e.Previous)
	}
	return msg
}

// MissingDescriptionError reports a declaration without a description
// while the enforce-descriptions policy is active.
type MissingDescriptionError struct {
	ID  string
	Ref SourceRef
}

func (e *MissingDescriptionError) Error() string {
	return fmt.Sprintf("%s: [React Intl] message %q is missing a description", e.Ref, e.ID)
}

// ExpectedLiteralError reports a formatIntlMessage call whose first
// argument is not a string literal.
type ExpectedLiteralError struct {
	Callee string
	Ref    SourceRef
}

func (e *ExpectedLiteralError) Error() string {
	return fmt.Sprintf("%s: [React Intl] first argument of %s() must be a string literal", e.Ref, e.Callee)
}
