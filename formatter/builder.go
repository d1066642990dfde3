package formatter

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/eawag-rdm/lucparser/query"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

// FormatError renders err for a terminal. A *query.SyntaxError is shown
// with the query and a marker under the offending position; source names
// where the query came from (e.g. "query" or "file.txt:3").
func FormatError(source string, err error) string {
	var syntaxErr *query.SyntaxError
	if errors.As(err, &syntaxErr) {
		return FormatSyntaxError(source, syntaxErr)
	}
	return errorStyle.Sprint("error: ") + messageStyle.Sprintln(err.Error())
}

// FormatSyntaxError renders a syntax error like:
//
//	error: unbalanced delimiter
//	 --> query:6
//	  |
//	  | tags:(water OR fire
//	  |      ^ "(" is never closed
func FormatSyntaxError(source string, err *query.SyntaxError) string {
	var builder strings.Builder

	column := visualColumn(err.Input, err.Pos)
	builder.WriteString(errorStyle.Sprint("error: ") + ruleStyle.Sprint(err.Err) + "\n")
	builder.WriteString(lineStyle.Sprint(" --> ") + fileStyle.Sprintf("%s:%d", source, column+1) + "\n")
	builder.WriteString(lineStyle.Sprint("  |") + "\n")
	builder.WriteString(lineStyle.Sprint("  | ") + expandTabs(err.Input) + "\n")
	builder.WriteString(lineStyle.Sprint("  | "))
	builder.WriteString(strings.Repeat(" ", column))
	builder.WriteString(messageStyle.Sprintf("%s %s", marker(err.Token), describe(err)) + "\n\n")

	return builder.String()
}

// marker underlines token: a caret followed by one tilde per extra rune.
func marker(token string) string {
	width := utf8.RuneCountInString(token)
	if width < 1 {
		width = 1
	}
	return "^" + strings.Repeat("~", width-1)
}

func describe(err *query.SyntaxError) string {
	switch {
	case errors.Is(err.Err, query.ErrUnbalancedDelimiter):
		return fmt.Sprintf("%q is never closed", err.Token)
	case errors.Is(err.Err, query.ErrDanglingField):
		return fmt.Sprintf("field %q has no term", err.Token)
	default:
		return err.Err.Error()
	}
}

func expandTabs(line string) string {
	var expanded strings.Builder
	column := 0
	for _, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (column % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
			column += spaceCount
			continue
		}
		expanded.WriteRune(ch)
		column++
	}
	return expanded.String()
}

// visualColumn returns the zero-based display column of byte offset in
// line after tab expansion.
func visualColumn(line string, offset int) int {
	column := 0
	for i, ch := range line {
		if i >= offset {
			break
		}
		if ch == '\t' {
			column += tabWidth - (column % tabWidth)
		} else {
			column++
		}
	}
	return column
}
