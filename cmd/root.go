package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eawag-rdm/lucparser/formatter"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:              "lucparser [query]",
	Short:            "lucparser - inspect and rewrite Lucene query strings",
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a missing .env is fine
		_ = godotenv.Load()
		logger = newLogger(verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		// Format: lucparser <query> => behaves like the deparse subcommand
		deparseCmd.Run(cmd, args)
	},
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the rule configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Timeout for batch processing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(deparseCmd)
	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(batchCmd)
}

func newLogger(verbose bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// exitWithError prints err for a terminal and exits with status 1.
func exitWithError(w io.Writer, source string, err error) {
	fmt.Fprint(w, formatter.FormatError(source, err))
	os.Exit(1)
}
