package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eawag-rdm/lucparser/config"
	"github.com/eawag-rdm/lucparser/query"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [query]",
	Short: "Apply the configured rules to a query",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(logger)
		if err != nil {
			exitWithError(cmd.ErrOrStderr(), "config", err)
		}

		q, err := readQuery(args, cmd.InOrStdin())
		if err != nil {
			exitWithError(cmd.ErrOrStderr(), "stdin", err)
		}

		if err := runRewrite(cmd.OutOrStdout(), q, cfg.Rules); err != nil {
			exitWithError(cmd.ErrOrStderr(), "query", err)
		}
	},
}

func loadConfig(logger *zap.Logger) (config.Config, error) {
	path := config.Resolve(cfgFile)
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	logger.Debug("Loaded configuration",
		zap.String("path", path),
		zap.String("name", cfg.Name),
		zap.Int("rules", len(cfg.Rules)))
	return cfg, nil
}

func runRewrite(w io.Writer, q string, rules []query.Rule) error {
	out, err := query.ApplyRules(q, rules)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}
