package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yacchi/mdsummary/internal/cmdutil"
	"github.com/yacchi/mdsummary/internal/config"
	"github.com/yacchi/mdsummary/internal/history"
	"github.com/yacchi/mdsummary/internal/ui"
)

var logsLimit int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show summary history",
	Long: `Show the most recent summary runs recorded in the history file.

Examples:
  mdsummary logs
  mdsummary logs --limit 5
  mdsummary logs -o json --jq '.[] | select(.method == "fallback")'`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().IntVar(&logsLimit, "limit", 0, "Maximum number of entries to show (default: history.limit)")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, _ []string) error {
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return &configError{err: err}
	}
	resolved := cfg.Resolved()

	path, err := resolved.History.GetPath()
	if err != nil {
		return err
	}

	limit := resolved.History.Limit
	if cmd.Flags().Changed("limit") {
		limit = logsLimit
	}
	entries, err := history.Read(path, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ui.Info("No summary history found: %s", path)
		return nil
	}

	out := cmd.OutOrStdout()
	format := resolved.Output.Format
	if resolved.Output.JQ != "" {
		format = config.FormatJSON
	}
	switch format {
	case config.FormatJSON:
		return cmdutil.OutputJSON(out, entries, cmdutil.JSONOutputOptions{JQFilter: resolved.Output.JQ, Pretty: true})
	case config.FormatYAML:
		return cmdutil.OutputYAML(out, entries)
	}
	printEntries(out, entries)
	return nil
}

func printEntries(w io.Writer, entries []history.Entry) {
	for _, entry := range entries {
		reason := entry.Reason
		if reason == "" {
			reason = "-"
		}
		cached := ""
		if entry.Cached {
			cached = " " + ui.Gray("(cached)")
		}
		fmt.Fprintf(w, "%s %s method=%s reason=%s sentences=%d in=%d out=%d %dms%s\n",
			entry.TS.Local().Format("2006-01-02 15:04:05"),
			entry.Source,
			ui.MethodColor(entry.Method),
			reason,
			entry.Sentences,
			entry.InputRunes,
			entry.OutputRunes,
			entry.DurationMS,
			cached,
		)
	}
}
