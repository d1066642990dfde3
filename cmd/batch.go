package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eawag-rdm/lucparser/batch"
	"github.com/eawag-rdm/lucparser/formatter"
)

var (
	toStdout bool
	watch    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Apply the configured rules to files of queries",
	Long: `Rewrites every line of the given query files, or of every .txt, .lucene
and .query file below the given directories. Results are written next to
each input with a .out suffix unless --stdout is set.
Example) lucparser batch --config rules.yaml queries/`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "error: Please provide file or directory paths")
			os.Exit(1)
		}

		cfg, err := loadConfig(logger)
		if err != nil {
			exitWithError(cmd.ErrOrStderr(), "config", err)
		}
		p := &batch.RuleProcessor{Rules: cfg.Rules}

		var out io.Writer
		if toStdout {
			out = cmd.OutOrStdout()
		}

		if watch {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			err := batch.Watch(ctx, logger, p, args, func(result *batch.FileResult) {
				reportResult(logger, out, cmd.ErrOrStderr(), result)
			})
			if err != nil {
				logger.Fatal("Failed to watch paths", zap.Error(err))
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		failed, err := runBatch(ctx, logger, out, cmd.ErrOrStderr(), p, args)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	batchCmd.Flags().BoolVar(&toStdout, "stdout", false, "Write results to stdout instead of .out files")
	batchCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Process files again whenever they change")
}

// runBatch processes paths and returns the number of queries that failed.
func runBatch(ctx context.Context, logger *zap.Logger, out, errOut io.Writer, p batch.Processor, paths []string) (int, error) {
	results, err := batch.ProcessFiles(ctx, logger, p, paths, batch.ProcessFile)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, result := range results {
		failed += reportResult(logger, out, errOut, result)
	}
	return failed, nil
}

// reportResult writes result to out (or next to its input when out is
// nil), prints its line errors to errOut and returns how many there were.
func reportResult(logger *zap.Logger, out, errOut io.Writer, result *batch.FileResult) int {
	if err := batch.WriteResult(result, out); err != nil {
		logger.Error("Error writing result", zap.String("file", result.Path), zap.Error(err))
	}
	for _, lineErr := range result.Errors {
		fmt.Fprint(errOut, formatter.FormatError(fmt.Sprintf("%s:%d", lineErr.Path, lineErr.Line), lineErr.Err))
	}
	logger.Debug("Processed file",
		zap.String("file", result.Path),
		zap.Int("lines", len(result.Lines)),
		zap.Int("errors", len(result.Errors)))
	return len(result.Errors)
}
