package config

import (
	"github.com/spf13/cobra"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Get and set configuration options.

Values are resolved from these layers, later ones winning:
  defaults, ~/.config/mdsummary/config.yaml, .mdsummary.yaml,
  MDSUMMARY_* environment variables, command-line flags.`,
}

func init() {
	ConfigCmd.AddCommand(getCmd)
	ConfigCmd.AddCommand(setCmd)
	ConfigCmd.AddCommand(listCmd)
	ConfigCmd.AddCommand(pathCmd)
	ConfigCmd.AddCommand(initCmd)
}
