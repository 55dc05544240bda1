package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilt/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML. Save it to
~/.tilt/config.yaml or ./configs/tilt.yaml and edit it to tune the game.

With --resolved, prints the configuration actually in effect after the
config search and command-line overrides.

Examples:
  tilt config > ~/.tilt/config.yaml
  tilt config --resolved --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the effective configuration")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagResolved {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
