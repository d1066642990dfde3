package formatter

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/eawag-rdm/lucparser/query"
)

var (
	fieldStyle = color.New(color.FgCyan, color.Bold)
	termStyle  = color.New(color.FgGreen)
	kindStyle  = color.New(color.FgYellow)
)

// noField is printed in place of an absent field.
const noField = "-"

// FormatRecords renders one line per record: index, field and term in
// aligned columns.
func FormatRecords(records []query.TermRecord) string {
	width := 1
	for _, r := range records {
		if w := utf8.RuneCountInString(r.Field); w > width {
			width = w
		}
	}
	indexWidth := len(strconv.Itoa(len(records) - 1))

	var builder strings.Builder
	for i, r := range records {
		field := r.Field
		if !r.HasField() {
			field = noField
		}
		builder.WriteString(lineStyle.Sprintf("%*d | ", indexWidth, i))
		builder.WriteString(fieldStyle.Sprint(padRight(field, width)))
		builder.WriteString(lineStyle.Sprint(" | "))
		builder.WriteString(termStyle.Sprint(r.Term))
		builder.WriteByte('\n')
	}
	return builder.String()
}

// FormatChunks renders the raw scanner output, one chunk per line.
func FormatChunks(chunks []query.Chunk) string {
	width := 0
	for _, c := range chunks {
		if w := len(c.Kind.String()); w > width {
			width = w
		}
	}

	var builder strings.Builder
	for _, c := range chunks {
		builder.WriteString(lineStyle.Sprintf("%4d | ", c.Pos))
		builder.WriteString(kindStyle.Sprint(padRight(c.Kind.String(), width)))
		builder.WriteString(lineStyle.Sprint(" | "))
		builder.WriteString(strconv.Quote(c.Text))
		builder.WriteByte('\n')
	}
	return builder.String()
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
