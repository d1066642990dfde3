package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eawag-rdm/lucparser/config"
	"github.com/eawag-rdm/lucparser/query"
)

// initCmd: lucparser init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new rule configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) (string, error) {
	if configurationPath == "" {
		configurationPath = config.DefaultFile
	}

	cfg := config.Default()
	cfg.Rules = append(cfg.Rules, query.Rule{
		Name:     "example",
		Field:    "tags",
		Addition: "AND NOT tags:draft",
	})
	return configurationPath, config.Write(configurationPath, cfg)
}
