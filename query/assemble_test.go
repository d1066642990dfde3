package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		records []TermRecord
		want    string
	}{
		{
			name:    "no records",
			records: nil,
			want:    "",
		},
		{
			name: "field and general terms",
			records: []TermRecord{
				{Field: "author", Term: "(Meier OR Mueller -Donald)"},
				{Field: "tags", Term: "(water OR fire)"},
				{Term: `"open access"`},
			},
			want: `author : (Meier OR Mueller -Donald) tags : (water OR fire) "open access"`,
		},
		{
			name:    "single general term",
			records: []TermRecord{{Term: "AND"}},
			want:    "AND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Assemble(tt.records))
		})
	}
}

func TestAssemble_EditedRecords(t *testing.T) {
	t.Parallel()

	records, err := Deparse(`author: Meier tags:(water OR fire) "open access"`)
	require.NoError(t, err)

	records[0].Term = "(" + records[0].Term + " OR Mueller -Donald)"
	assert.Equal(t,
		`author : (Meier OR Mueller -Donald) tags : (water OR fire) "open access"`,
		Assemble(records))
}

func TestAssemble_RoundTrip(t *testing.T) {
	t.Parallel()
	inputs := []string{
		referenceQuery,
		"",
		`author : Meier`,
		`-author:Meier AND NOT tags:fire`,
		`date:[2000 TO 2010} title:/colou?r/ {a TO b]`,
		`time:12\:30 a\ b:c`,
		`foo(bar) a) "x"y`,
		"title:\"a  b\"\t\tauthor:(x   (y))",
		`ort:Zürich +tags:"über"`,
		`: a : : b`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			records, err := Deparse(input)
			require.NoError(t, err)

			again, err := Deparse(Assemble(records))
			require.NoError(t, err)
			assert.Equal(t, records, again)
		})
	}
}
