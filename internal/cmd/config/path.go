package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacchi/mdsummary/internal/cmdutil"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file paths",
	RunE:  runPath,
}

func runPath(cmd *cobra.Command, _ []string) error {
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	resolved := cfg.Resolved()

	fmt.Fprintf(out, "Config:  %s\n", cfg.GetUserConfigPath())
	if projectPath := cfg.GetProjectConfigPath(); projectPath != "" {
		fmt.Fprintf(out, "Project: %s\n", projectPath)
	}
	if cacheDir, err := resolved.Cache.GetCacheDir(); err == nil {
		fmt.Fprintf(out, "Cache:   %s\n", cacheDir)
	}
	if historyPath, err := resolved.History.GetPath(); err == nil {
		fmt.Fprintf(out, "History: %s\n", historyPath)
	}
	return nil
}
