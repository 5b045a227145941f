// Package errors provides the compiler's diagnostic type: a positioned error
// message with optional colorized source-line context, shared by every
// pipeline phase.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/vela-lang/vela/pkg/token"
)

// Kind tags which pipeline phase raised an error, per the taxonomy table in
// the specification's error handling design.
type Kind int

const (
	KindLex Kind = iota
	KindParse
	KindType
	KindLowering
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "LexError"
	case KindParse:
		return "ParseError"
	case KindType:
		return "TypeError"
	case KindLowering:
		return "LoweringError"
	default:
		return "Error"
	}
}

// CompilerError is a single diagnostic: a kind, a message, and a source
// position. Source and File are filled in by the driver once the file that
// produced the error is known, so phases can construct errors without
// threading the whole source buffer through every call.
type CompilerError struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Source  string
	File    string
}

// New constructs a CompilerError carrying only kind, position, and message;
// call SetContext afterward to attach source-line rendering.
func New(kind Kind, pos token.Position, format string, args ...any) *CompilerError {
	return &CompilerError{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// SetContext attaches the source text and file name used for caret
// rendering. It mutates in place and returns the receiver for chaining.
func (e *CompilerError) SetContext(source, file string) *CompilerError {
	e.Source = source
	e.File = file
	return e
}

// Error implements the error interface with uncolored, context-free output.
func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Pos)
}

// Format renders the error with a single line of source context and a caret
// pointing at the offending column. When useColor is true the kind header and
// caret are rendered in ANSI color via fatih/color; callers typically gate
// this on whether stdout is a terminal.
func (e *CompilerError) Format(useColor bool) string {
	return e.FormatWithContext(0, useColor)
}

// FormatWithContext is like Format but includes contextLines of surrounding
// source above and below the error line.
func (e *CompilerError) FormatWithContext(contextLines int, useColor bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if useColor {
		header = color.New(color.FgRed, color.Bold).Sprint(header)
	}

	if e.File != "" {
		fmt.Fprintf(&sb, "%s\n  --> %s:%d:%d\n", header, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s\n  --> %d:%d\n", header, e.Pos.Line, e.Pos.Column)
	}

	lines := e.sourceContext(contextLines)
	if len(lines) == 0 {
		return sb.String()
	}

	start := e.Pos.Line - contextLines
	if start < 1 {
		start = 1
	}
	for i, line := range lines {
		lineNum := start + i
		prefix := fmt.Sprintf("%4d | ", lineNum)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		if lineNum == e.Pos.Line {
			caret := strings.Repeat(" ", len(prefix)+e.Pos.Column-1) + "^"
			if useColor {
				caret = color.New(color.FgRed, color.Bold).Sprint(caret)
			}
			sb.WriteString(caret)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (e *CompilerError) sourceContext(contextLines int) []string {
	if e.Source == "" || e.Pos.Line < 1 {
		return nil
	}
	all := strings.Split(e.Source, "\n")
	if e.Pos.Line > len(all) {
		return nil
	}
	start := e.Pos.Line - contextLines
	if start < 1 {
		start = 1
	}
	end := e.Pos.Line + contextLines
	if end > len(all) {
		end = len(all)
	}
	return all[start-1 : end]
}

// List is an ordered collection of errors, the shape the type checker
// accumulates into across a single traversal (spec §4.3 error discipline).
type List []*CompilerError

func (l List) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}
