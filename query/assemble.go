package query

import "strings"

// Assemble renders records into a query string. A record with a field is
// written as "field : term", a general one as its bare term, and records
// are joined by single spaces.
//
// The output is not byte-identical to the string the records were deparsed
// from, but deparsing it yields the same records again.
func Assemble(records []TermRecord) string {
	var builder strings.Builder
	for i, r := range records {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(r.String())
	}
	return builder.String()
}
