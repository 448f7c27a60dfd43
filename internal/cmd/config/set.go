package config

import (
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"github.com/yacchi/mdsummary/internal/cmdutil"
	"github.com/yacchi/mdsummary/internal/config"
	"github.com/yacchi/mdsummary/internal/ui"
)

var (
	setGlobal  bool
	setProject bool
)

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

By default, saves to user config (~/.config/mdsummary/config.yaml).
Use --project to save to the project config (.mdsummary.yaml).

Examples:
  mdsummary config set summary.max_length 120
  mdsummary config set summary.algorithm lexrank
  mdsummary config set --project cache.enabled false`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().BoolVarP(&setGlobal, "global", "g", false, "Save to user config (default)")
	setCmd.Flags().BoolVarP(&setProject, "project", "p", false, "Save to project config (.mdsummary.yaml)")
	setCmd.MarkFlagsMutuallyExclusive("global", "project")
}

func runSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := cmdutil.ParseConfigValue(args[1])

	ctx := cmd.Context()
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}

	// 未知のキーを書き込まないよう、デフォルトに存在するキーだけ受け付ける
	if !cfg.Has(key) {
		return errors.Errorf("unknown config key: %s", key)
	}

	layerName := config.LayerUser
	if setProject {
		layerName = config.LayerProject
		ui.Info("Writing to project config: %s", cfg.GetProjectConfigPath())
	}
	if err := cfg.SetToLayer(layerName, key, value); err != nil {
		return err
	}
	if err := cfg.Resolved().Validate(); err != nil {
		return err
	}

	if err := cfg.Save(ctx); err != nil {
		return errors.Wrap(err, "failed to save config")
	}

	ui.Success("Set %s = %v", key, value)
	return nil
}
