package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eawag-rdm/lucparser/batch"
	"github.com/eawag-rdm/lucparser/config"
	"github.com/eawag-rdm/lucparser/query"
)

const sampleQuery = `author: Meier tags:(water OR fire) "open access" tags: keyword`

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestReadQuery(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		args    []string
		stdin   string
		want    string
		wantErr bool
	}{
		{name: "args are joined", args: []string{"author:Meier", "tags:fire"}, want: "author:Meier tags:fire"},
		{name: "stdin", stdin: "tags:fire\r\n", want: "tags:fire"},
		{name: "stdin keeps inner spacing", stdin: "  a   b\n", want: "  a   b"},
		{name: "empty stdin", stdin: "\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := readQuery(tt.args, strings.NewReader(tt.stdin))
			if tt.wantErr {
				assert.ErrorIs(t, err, errNoQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := readQuery(nil, nil)
	assert.ErrorIs(t, err, errNoQuery)
}

func TestRunDeparse(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, runDeparse(&buf, sampleQuery, false, false, ""))

		expected := `0 | author | Meier
1 | tags   | (water OR fire)
2 | -      | "open access"
3 | tags   | keyword
`
		assert.Equal(t, expected, buf.String())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, runDeparse(&buf, `tags:fire x`, false, true, ""))

		var records []query.TermRecord
		require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
		assert.Equal(t, []query.TermRecord{{Field: "tags", Term: "fire"}, {Term: "x"}}, records)
		assert.NotContains(t, buf.String(), `"field": ""`)
	})

	t.Run("json output file", func(t *testing.T) {
		t.Parallel()
		out := filepath.Join(t.TempDir(), "records.json")
		var buf bytes.Buffer
		require.NoError(t, runDeparse(&buf, sampleQuery, false, true, out))
		assert.Empty(t, buf.String())

		data, err := os.ReadFile(out)
		require.NoError(t, err)

		var records []query.TermRecord
		require.NoError(t, json.Unmarshal(data, &records))
		assert.Len(t, records, 4)
	})

	t.Run("chunks", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, runDeparse(&buf, `a:b`, true, false, ""))

		expected := `   0 | Field | "a"
   1 | Colon | ":"
   2 | Word  | "b"
`
		assert.Equal(t, expected, buf.String())
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := runDeparse(&buf, `tags:(water`, false, false, "")
		assert.ErrorIs(t, err, query.ErrUnbalancedDelimiter)
		assert.Empty(t, buf.String())
	})
}

func TestRunAssemble(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "records",
			input: `[{"field":"author","term":"Meier"},{"term":"\"open access\""}]`,
			want:  "author : Meier \"open access\"\n",
		},
		{
			name:  "empty list",
			input: `[]`,
			want:  "\n",
		},
		{
			name:    "empty term",
			input:   `[{"field":"author","term":""}]`,
			wantErr: true,
		},
		{
			name:    "bare colon term",
			input:   `[{"term":":"}]`,
			wantErr: true,
		},
		{
			name:    "unknown key",
			input:   `[{"name":"author","term":"x"}]`,
			wantErr: true,
		},
		{
			name:    "not json",
			input:   `author:Meier`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := runAssemble(&buf, strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDeparseAssembleRoundTrip(t *testing.T) {
	t.Parallel()

	var records bytes.Buffer
	require.NoError(t, runDeparse(&records, sampleQuery, false, true, ""))

	var assembled bytes.Buffer
	require.NoError(t, runAssemble(&assembled, &records))
	assert.Equal(t, "author : Meier tags : (water OR fire) \"open access\" tags : keyword\n", assembled.String())
}

func TestRunAdd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{
			name:  "field",
			field: "tags",
			want:  "author : Meier tags : ((water OR fire) AND caffee) \"open access\" tags : (keyword AND caffee)\n",
		},
		{
			name: "whole query",
			want: "(" + sampleQuery + ") AND caffee\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, runAdd(&buf, sampleQuery, "AND caffee", tt.field))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	var buf bytes.Buffer
	err := runAdd(&buf, `tags:`, "AND caffee", "tags")
	assert.ErrorIs(t, err, query.ErrDanglingField)
}

func TestRunRewrite(t *testing.T) {
	t.Parallel()

	rules := []query.Rule{
		{Name: "tags", Field: "tags", Addition: "AND caffee"},
		{Name: "public", Addition: "AND public:true"},
	}

	var buf bytes.Buffer
	require.NoError(t, runRewrite(&buf, `tags:fire x`, rules))
	assert.Equal(t, "(tags : (fire AND caffee) x) AND public:true\n", buf.String())

	buf.Reset()
	err := runRewrite(&buf, `"open`, rules)
	assert.ErrorIs(t, err, query.ErrUnbalancedDelimiter)
	assert.Contains(t, err.Error(), `rule "tags"`)
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	got, err := initConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lucparser", cfg.Name)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "tags", cfg.Rules[0].Field)
}

func TestRunBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.query")
	bad := filepath.Join(dir, "bad.query")
	require.NoError(t, os.WriteFile(good, []byte("# comment\ntags:fire\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("tags:(open\nx\n"), 0o644))

	p := &batch.RuleProcessor{Rules: []query.Rule{{Name: "tags", Field: "tags", Addition: "AND caffee"}}}

	var out, errOut bytes.Buffer
	failed, err := runBatch(context.Background(), zap.NewNop(), &out, &errOut, p, []string{dir})
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	assert.Equal(t, "tags:(open\nx\n# comment\ntags : (fire AND caffee)\n", out.String())
	assert.Contains(t, errOut.String(), "error: unbalanced delimiter")
	assert.Contains(t, errOut.String(), bad+":1:6")
	assert.Contains(t, errOut.String(), `"(" is never closed`)
}

func TestRunBatch_WritesBesideInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "q.txt")
	require.NoError(t, os.WriteFile(path, []byte("tags:fire\n"), 0o644))

	p := &batch.RuleProcessor{Rules: []query.Rule{{Name: "tags", Field: "tags", Addition: "AND caffee"}}}

	var errOut bytes.Buffer
	failed, err := runBatch(context.Background(), zap.NewNop(), nil, &errOut, p, []string{path})
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Empty(t, errOut.String())

	data, err := os.ReadFile(batch.OutputPath(path))
	require.NoError(t, err)
	assert.Equal(t, "tags : (fire AND caffee)\n", string(data))
}

func TestAddCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"add", "--field", "tags", "--add", "AND caffee", "tags:fire"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		addition, fieldName = "", ""
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "tags : (fire AND caffee)\n", out.String())
}
