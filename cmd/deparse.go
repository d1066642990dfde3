package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eawag-rdm/lucparser/formatter"
	"github.com/eawag-rdm/lucparser/query"
)

var (
	deparseJSON   bool
	deparseOutput string
	showChunks    bool
)

var deparseCmd = &cobra.Command{
	Use:   "deparse [query]",
	Short: "Split a query into field/term records",
	Long: `Prints the field/term records of a query, one per line.
The query is read from stdin when no argument is given.
Example) lucparser deparse 'author: Meier tags:(water OR fire)'`,
	Run: func(cmd *cobra.Command, args []string) {
		q, err := readQuery(args, cmd.InOrStdin())
		if err != nil {
			exitWithError(cmd.ErrOrStderr(), "stdin", err)
		}

		if err := runDeparse(cmd.OutOrStdout(), q, showChunks, deparseJSON, deparseOutput); err != nil {
			logger.Debug("Deparse failed", zap.String("query", q), zap.Error(err))
			exitWithError(cmd.ErrOrStderr(), "query", err)
		}
	},
}

func init() {
	deparseCmd.Flags().BoolVar(&deparseJSON, "json", false, "Output records in JSON format")
	deparseCmd.Flags().StringVarP(&deparseOutput, "output", "o", "", "Output path (when using JSON)")
	deparseCmd.Flags().BoolVar(&showChunks, "chunks", false, "Show raw scanner chunks instead of records")
}

func runDeparse(w io.Writer, q string, chunks, isJSON bool, jsonOutput string) error {
	if chunks {
		cs, err := query.Scan(q)
		if err != nil {
			return err
		}
		fmt.Fprint(w, formatter.FormatChunks(cs))
		return nil
	}

	records, err := query.Deparse(q)
	if err != nil {
		return err
	}

	if !isJSON {
		fmt.Fprint(w, formatter.FormatRecords(records))
		return nil
	}

	d, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling records: %w", err)
	}
	if jsonOutput == "" {
		fmt.Fprintln(w, string(d))
		return nil
	}
	return os.WriteFile(jsonOutput, append(d, '\n'), 0o644)
}
