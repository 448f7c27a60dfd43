package config

import (
	"strconv"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"github.com/yacchi/mdsummary/internal/cmdutil"
	"github.com/yacchi/mdsummary/internal/config"
	"github.com/yacchi/mdsummary/internal/ui"
)

var initProject bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file interactively",
	Long: `Ask for the common summary settings and write them to the user config.
Use --project to write .mdsummary.yaml instead.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initProject, "project", "p", false, "Write to project config (.mdsummary.yaml)")
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return err
	}
	current := cfg.Resolved()

	sentences, err := askInt("Sentences per summary", current.Summary.SentenceCount)
	if err != nil {
		return err
	}
	maxLength, err := askInt("Maximum summary length (characters)", current.Summary.MaxLength)
	if err != nil {
		return err
	}
	algorithm, err := ui.SelectWithDesc("Ranking algorithm", []ui.SelectOption{
		{Value: "textrank", Description: "similarity graph over shared words"},
		{Value: "lexrank", Description: "LexRank with MMR redundancy control"},
	}, current.Summary.Algorithm)
	if err != nil {
		return err
	}
	format, err := ui.SelectWithDesc("Output format", []ui.SelectOption{
		{Value: config.FormatText},
		{Value: config.FormatJSON},
		{Value: config.FormatYAML},
	}, current.Output.Format)
	if err != nil {
		return err
	}
	useCache, err := ui.Confirm("Cache summaries?", current.Cache.Enabled)
	if err != nil {
		return err
	}

	layerName := config.LayerUser
	target := cfg.GetUserConfigPath()
	if initProject {
		layerName = config.LayerProject
		target = cfg.GetProjectConfigPath()
	}

	values := []struct {
		key   string
		value any
	}{
		{key: "summary.sentence_count", value: sentences},
		{key: "summary.max_length", value: maxLength},
		{key: "summary.algorithm", value: algorithm},
		{key: "output.format", value: format},
		{key: "cache.enabled", value: useCache},
	}
	for _, v := range values {
		if err := cfg.SetToLayer(layerName, v.key, v.value); err != nil {
			return err
		}
	}
	if err := cfg.Resolved().Validate(); err != nil {
		return err
	}

	ok, err := ui.Confirm("Write "+target+"?", true)
	if err != nil {
		return err
	}
	if !ok {
		ui.Warning("Aborted")
		return nil
	}
	if err := cfg.Save(ctx); err != nil {
		return errors.Wrap(err, "failed to save config")
	}
	ui.Success("Wrote %s", target)
	return nil
}

func askInt(message string, defaultValue int) (int, error) {
	for {
		raw, err := ui.Input(message, strconv.Itoa(defaultValue))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(raw)
		if err == nil && n > 0 {
			return n, nil
		}
		ui.Warning("Please enter a positive number")
	}
}
