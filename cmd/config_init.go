package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/uzstat/clickstream-cli/internal/config"
	"github.com/uzstat/clickstream-cli/internal/report"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configInitPath); err == nil && !configInitForce {
			return eris.Errorf("config: %s already exists (use --force to overwrite)", configInitPath)
		}

		data, err := yaml.Marshal(config.Example())
		if err != nil {
			return eris.Wrap(err, "config: marshal example")
		}
		if err := os.WriteFile(configInitPath, data, 0o644); err != nil {
			return eris.Wrapf(err, "config: write %s", configInitPath)
		}

		report.New(false).Success("wrote " + configInitPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "config.yaml", "output path")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
