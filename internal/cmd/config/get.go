package config

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"github.com/yacchi/mdsummary/internal/cmdutil"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value.

Examples:
  mdsummary config get summary.max_length
  mdsummary config get output.format`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(c *cobra.Command, args []string) error {
	key := args[0]

	cfg, err := cmdutil.GetConfigStore(c)
	if err != nil {
		return err
	}

	value := cfg.Get(key)
	if value == nil {
		return errors.Errorf("unknown config key: %s", key)
	}

	fmt.Fprintln(c.OutOrStdout(), value)
	return nil
}
