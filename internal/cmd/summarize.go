package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"github.com/yacchi/jubako"
	"github.com/yacchi/mdsummary/internal/cache"
	"github.com/yacchi/mdsummary/internal/cmdutil"
	"github.com/yacchi/mdsummary/internal/config"
	"github.com/yacchi/mdsummary/internal/debug"
	"github.com/yacchi/mdsummary/internal/history"
	"github.com/yacchi/mdsummary/internal/summary"
	"github.com/yacchi/mdsummary/internal/ui"
	"golang.org/x/sync/errgroup"
)

var (
	summarizeSentences int
	summarizeMaxLength int
	summarizeAlgorithm string
	summarizeJobs      int
	summarizeNoCache   bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [files...]",
	Short: "Summarize Markdown documents",
	Long: `Summarize Markdown documents.

Reads each file (or stdin when no file or "-" is given), strips the markup
and prints the highest ranked sentences in their original order.

Examples:
  mdsummary summarize README.md
  mdsummary summarize -n 2 -l 120 docs/*.md
  cat notes.md | mdsummary summarize -o json
  mdsummary summarize docs/*.md -o json --jq '.[] | .summary'`,
	Aliases: []string{"sum"},
	RunE:    runSummarize,
}

func init() {
	summarizeCmd.Flags().IntVarP(&summarizeSentences, "sentences", "n", 0, "Maximum number of sentences")
	summarizeCmd.Flags().IntVarP(&summarizeMaxLength, "max-length", "l", 0, "Maximum summary length in characters")
	summarizeCmd.Flags().StringVar(&summarizeAlgorithm, "algorithm", "", "Ranking algorithm (textrank, lexrank)")
	summarizeCmd.Flags().IntVarP(&summarizeJobs, "jobs", "j", 0, "Number of documents summarized in parallel")
	summarizeCmd.Flags().BoolVar(&summarizeNoCache, "no-cache", false, "Do not read or write the summary cache")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := cmdutil.GetConfigStore(cmd)
	if err != nil {
		return &configError{err: err}
	}
	if err := applySummarizeFlags(cmd, cfg); err != nil {
		return &configError{err: err}
	}
	resolved := cfg.Resolved()

	algorithm, err := summary.ParseAlgorithm(resolved.Summary.Algorithm)
	if err != nil {
		return &configError{err: err}
	}
	engine, err := summary.NewEngine(summary.EngineConfig{
		Algorithm:     algorithm,
		SentenceCount: resolved.Summary.SentenceCount,
		MaxLength:     resolved.Summary.MaxLength,
		Logger:        debug.Logger(),
	})
	if err != nil {
		return err
	}

	if len(args) == 0 && ui.IsStdinTerminal() {
		return errors.New("no input: pass Markdown files or pipe a document to stdin")
	}
	inputs, err := cmdutil.ReadInputs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var fc cache.Cache
	if resolved.Cache.Enabled && !summarizeNoCache {
		fc, err = openCache(&resolved.Cache)
		if err != nil {
			ui.Warning("Summary cache disabled: %v", err)
			fc = nil
		}
	}

	entries, err := summarizeAll(ctx, engine, fc, resolved.Cache.TTLDuration(), inputs, resolved.Summary.Jobs)
	if err != nil {
		return err
	}

	if resolved.History.Enabled {
		recordHistory(&resolved.History, entries)
	}

	return writeEntries(cmd.OutOrStdout(), entries, &resolved.Output)
}

// applySummarizeFlags は明示されたフラグだけを Args レイヤーに積む
func applySummarizeFlags(cmd *cobra.Command, cfg *config.Store) error {
	flags := cmd.Flags()
	ints := []struct {
		flag  string
		key   string
		value int
	}{
		{flag: "sentences", key: "summary.sentence_count", value: summarizeSentences},
		{flag: "max-length", key: "summary.max_length", value: summarizeMaxLength},
		{flag: "jobs", key: "summary.jobs", value: summarizeJobs},
	}
	for _, f := range ints {
		if !flags.Changed(f.flag) {
			continue
		}
		if err := cfg.SetToLayer(config.LayerArgs, f.key, f.value); err != nil {
			return err
		}
	}
	if flags.Changed("algorithm") {
		if err := cfg.SetFlagsLayer([]jubako.SetOption{
			jubako.String(config.PathSummaryAlgorithm, summarizeAlgorithm),
		}); err != nil {
			return err
		}
	}
	return cfg.Resolved().Validate()
}

func openCache(c *config.ResolvedCache) (*cache.FileCache, error) {
	dir, err := c.GetCacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// summarizeAll は jobs 並列で要約し、入力と同じ順序で結果を返す
func summarizeAll(ctx context.Context, engine *summary.Engine, fc cache.Cache, ttl time.Duration, inputs []cmdutil.Input, jobs int) ([]history.Entry, error) {
	entries := make([]history.Entry, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i] = summarizeOne(ctx, engine, fc, ttl, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "summarize")
	}
	return entries, nil
}

func summarizeOne(ctx context.Context, engine *summary.Engine, fc cache.Cache, ttl time.Duration, in cmdutil.Input) history.Entry {
	ecfg := engine.Config()
	start := time.Now()

	entry := history.NewEntry(in.Source, in.Content)
	entry.Algorithm = string(ecfg.Algorithm)

	key := cache.Key(in.Content,
		string(ecfg.Algorithm),
		strconv.Itoa(ecfg.SentenceCount),
		strconv.Itoa(ecfg.MaxLength),
	)
	if fc != nil {
		if cached, ok := loadCached(fc, key); ok {
			copyResult(&entry, cached)
			entry.Cached = true
			entry.DurationMS = time.Since(start).Milliseconds()
			debug.Log("summary cache hit", "source", in.Source)
			return entry
		}
	}

	res := engine.Summarize(ctx, in.Content)
	entry.Method = string(res.Method)
	entry.Reason = summary.ReasonLabel(res.Reason)
	entry.Sentences = res.Sentences
	entry.Selected = res.Selected
	entry.Iterations = res.Iterations
	entry.Converged = res.Converged
	entry.Summary = res.Summary
	entry.OutputRunes = utf8.RuneCountInString(res.Summary)
	entry.DurationMS = time.Since(start).Milliseconds()

	if res.Method == summary.MethodFallback {
		debug.Log("summary fallback", "source", in.Source, "reason", res.Reason)
	}

	if fc != nil {
		data, err := entry.MarshalJSON()
		if err == nil {
			err = fc.Set(key, data, ttl)
		}
		if err != nil {
			debug.Log("failed to write summary cache", "source", in.Source, "error", err)
		}
	}
	return entry
}

func loadCached(fc cache.Cache, key string) (history.Entry, bool) {
	data, ok, err := fc.Get(key)
	if err != nil {
		debug.Log("failed to read summary cache", "error", err)
		return history.Entry{}, false
	}
	if !ok {
		return history.Entry{}, false
	}
	var cached history.Entry
	if err := cached.UnmarshalJSON(data); err != nil {
		debug.Log("broken summary cache entry", "error", err)
		return history.Entry{}, false
	}
	return cached, true
}

// copyResult は要約結果のフィールドだけを写す
func copyResult(dst *history.Entry, src history.Entry) {
	dst.Method = src.Method
	dst.Reason = src.Reason
	dst.Sentences = src.Sentences
	dst.Selected = src.Selected
	dst.Iterations = src.Iterations
	dst.Converged = src.Converged
	dst.Summary = src.Summary
	dst.OutputRunes = src.OutputRunes
}

func recordHistory(h *config.ResolvedHistory, entries []history.Entry) {
	path, err := h.GetPath()
	if err != nil {
		debug.Log("failed to resolve history path", "error", err)
		return
	}
	for _, entry := range entries {
		if err := history.Append(path, entry); err != nil {
			ui.Warning("Failed to record history: %v", err)
			return
		}
	}
}

func writeEntries(w io.Writer, entries []history.Entry, out *config.ResolvedOutput) error {
	if out.JQ != "" && out.Format != config.FormatJSON {
		// --jq は JSON 出力を前提にする
		out.Format = config.FormatJSON
	}

	var data any = entries
	if len(entries) == 1 {
		data = entries[0]
	}

	switch out.Format {
	case config.FormatJSON:
		return cmdutil.OutputJSON(w, data, cmdutil.JSONOutputOptions{JQFilter: out.JQ, Pretty: true})
	case config.FormatYAML:
		return cmdutil.OutputYAML(w, data)
	default:
		writeText(w, entries)
		return nil
	}
}

// writeText は要約本文を出力する。複数ファイルのときは見出しを付ける
func writeText(w io.Writer, entries []history.Entry) {
	if len(entries) == 1 {
		fmt.Fprintln(w, entries[0].Summary)
		return
	}
	for i, entry := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", ui.Bold("==> "+entry.Source+" <=="), ui.MethodColor(entry.Method))
		fmt.Fprintln(w, entry.Summary)
	}
}
