package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacchi/mdsummary/internal/cmdutil"
	"github.com/yacchi/mdsummary/internal/config"
)

var listAllFlag bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration values",
	Long: `List configuration values.

By default, shows only modified values (non-default).
Use --all to show all configuration values including defaults.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listAllFlag, "all", "a", false, "Show all configuration values including defaults")
}

type listEntry struct {
	line    string
	comment string
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if userPath := cfg.GetUserConfigPath(); userPath != "" {
		fmt.Fprintf(out, "# User config: %s\n", userPath)
	}
	if projectPath := cfg.GetProjectConfigPath(); projectPath != "" {
		fmt.Fprintf(out, "# Project config: %s\n", projectPath)
	}

	var entries []listEntry
	maxWidth := 0
	cfg.Walk(func(e config.WalkEntry) bool {
		// --all でない場合、defaults レイヤーの値はスキップ
		if !listAllFlag && e.Layer == config.LayerDefaults {
			return true
		}
		entry := formatEntry(e)
		maxWidth = max(maxWidth, len(entry.line))
		entries = append(entries, entry)
		return true
	})

	// 縦位置を揃えて出力
	for _, e := range entries {
		fmt.Fprintf(out, "%-*s  # %s\n", maxWidth, e.line, e.comment)
	}

	if len(entries) == 0 {
		if listAllFlag {
			fmt.Fprintln(out, "No configuration values found.")
		} else {
			fmt.Fprintln(out, "No modified configuration values.")
			fmt.Fprintln(out, "Use --all to show all configuration values including defaults.")
		}
	}
	return nil
}

func formatEntry(e config.WalkEntry) listEntry {
	value := fmt.Sprintf("%v", e.Value)
	comment := e.Layer
	if e.DefaultValue != nil {
		if def := fmt.Sprintf("%v", e.DefaultValue); def != value {
			comment = fmt.Sprintf("%s, default: %s", e.Layer, def)
		}
	}
	return listEntry{line: e.Path + "=" + value, comment: comment}
}
