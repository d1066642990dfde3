package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eawag-rdm/lucparser/query"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble [file]",
	Short: "Render JSON records back into a query",
	Long: `Reads a JSON list of {"field", "term"} records, as printed by
'deparse --json', from a file or stdin and prints the query string.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := cmd.InOrStdin()
		source := "stdin"
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				exitWithError(cmd.ErrOrStderr(), args[0], err)
			}
			defer f.Close()
			in, source = f, args[0]
		}

		if err := runAssemble(cmd.OutOrStdout(), in); err != nil {
			exitWithError(cmd.ErrOrStderr(), source, err)
		}
	},
}

func runAssemble(w io.Writer, r io.Reader) error {
	var records []query.TermRecord

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&records); err != nil {
		return fmt.Errorf("decoding records: %w", err)
	}

	for i, record := range records {
		if record.Term == "" || record.Term == ":" {
			return fmt.Errorf("record %d: term must not be empty or a bare colon", i)
		}
	}

	fmt.Fprintln(w, query.Assemble(records))
	return nil
}
