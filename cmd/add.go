package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eawag-rdm/lucparser/query"
)

var (
	addition  string
	fieldName string
)

var addCmd = &cobra.Command{
	Use:   "add [query]",
	Short: "Add a fragment to every term of a field, or to the whole query",
	Long: `Wraps every term of --field as "(term fragment)". Without --field the
whole query is wrapped as "(query) fragment".
Example) lucparser add --field tags --add 'AND caffee' 'tags:(water OR fire)'`,
	Run: func(cmd *cobra.Command, args []string) {
		q, err := readQuery(args, cmd.InOrStdin())
		if err != nil {
			exitWithError(cmd.ErrOrStderr(), "stdin", err)
		}

		if err := runAdd(cmd.OutOrStdout(), q, addition, fieldName); err != nil {
			exitWithError(cmd.ErrOrStderr(), "query", err)
		}
	},
}

func init() {
	addCmd.Flags().StringVar(&addition, "add", "", "Fragment to add, e.g. 'AND caffee'")
	addCmd.Flags().StringVarP(&fieldName, "field", "f", "", "Field whose terms are extended (default: whole query)")
	_ = addCmd.MarkFlagRequired("add")
}

func runAdd(w io.Writer, q, addition, field string) error {
	out, err := query.AddToQuery(q, addition, field)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}
