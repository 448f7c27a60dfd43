package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yacchi/jubako"
	configcmd "github.com/yacchi/mdsummary/internal/cmd/config"
	"github.com/yacchi/mdsummary/internal/config"
	"github.com/yacchi/mdsummary/internal/debug"
	"github.com/yacchi/mdsummary/internal/ui"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mdsummary",
	Short: "mdsummary - extractive summaries of Markdown documents",
	Long: `mdsummary picks the most central sentences of a Markdown document
and joins them into a short plain-text summary.

Markup is stripped, sentences are ranked with TextRank (or LexRank),
and the result always fits in the configured character budget.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// デバッグモードの有効化
		if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
			debug.Enable()
		}

		ctx := cmd.Context()
		cfg, err := config.Load(ctx)
		if err != nil {
			return &configError{err: err}
		}
		if cfg.Resolved().Log.Debug {
			debug.Enable()
		}

		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			ui.SetColorEnabled(false)
		}

		// グローバルフラグを取得してArgsレイヤーに適用
		var setOptions []jubako.SetOption
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			setOptions = append(setOptions, jubako.String(config.PathOutputFormat, output))
		}
		if jq, _ := cmd.Flags().GetString("jq"); jq != "" {
			setOptions = append(setOptions, jubako.String(config.PathOutputJQ, jq))
		}

		if len(setOptions) > 0 {
			if err := cfg.SetFlagsLayer(setOptions); err != nil {
				return &configError{err: err}
			}
		}
		debug.Log("config loaded", "user", cfg.GetUserConfigPath(), "project", cfg.GetProjectConfigPath())
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// グローバルフラグ
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().String("jq", "", "Filter JSON output using a jq expression")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(configcmd.ConfigCmd)
}
