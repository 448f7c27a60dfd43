package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/yacchi/mdsummary/internal/cache"
	"github.com/yacchi/mdsummary/internal/cmdutil"
	"github.com/yacchi/mdsummary/internal/config"
	"github.com/yacchi/mdsummary/internal/history"
	"github.com/yacchi/mdsummary/internal/summary"
	"github.com/yacchi/mdsummary/internal/ui"
)

const doc = `# Release notes

The new release improves startup time for large projects considerably.

Startup time was measured on projects with thousands of files and many packages.

The cache format changed, so the first run after upgrading rebuilds the cache.
`

func newTestEngine(t *testing.T) *summary.Engine {
	t.Helper()
	engine, err := summary.NewEngine(summary.EngineConfig{SentenceCount: 2, MaxLength: 200})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func TestSummarizeAllKeepsOrder(t *testing.T) {
	inputs := []cmdutil.Input{
		{Source: "a.md", Content: doc},
		{Source: "b.md", Content: ""},
		{Source: "c.md", Content: "The quick brown fox jumps now."},
	}
	entries, err := summarizeAll(context.Background(), newTestEngine(t), nil, time.Minute, inputs, 3)
	if err != nil {
		t.Fatalf("summarizeAll() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	for i, in := range inputs {
		if entries[i].Source != in.Source {
			t.Errorf("entries[%d].Source = %q, want %q", i, entries[i].Source, in.Source)
		}
	}
	if entries[1].Method != string(summary.MethodEmpty) || entries[1].Summary != "" {
		t.Errorf("empty input entry = %+v", entries[1])
	}
	if entries[2].Summary != "The quick brown fox jumps now." {
		t.Errorf("single sentence entry = %+v", entries[2])
	}
	if entries[0].Summary == "" || entries[0].OutputRunes > 200 {
		t.Errorf("document entry = %+v", entries[0])
	}
}

func TestSummarizeOneUsesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	engine := newTestEngine(t)
	in := cmdutil.Input{Source: "notes.md", Content: doc}

	first := summarizeOne(context.Background(), engine, fc, time.Hour, in)
	if first.Cached {
		t.Fatal("first run should not be cached")
	}
	second := summarizeOne(context.Background(), engine, fc, time.Hour, in)
	if !second.Cached {
		t.Fatal("second run should hit the cache")
	}
	if second.Summary != first.Summary || second.Method != first.Method {
		t.Errorf("cached = %+v, want %+v", second, first)
	}
}

func TestWriteEntries(t *testing.T) {
	prev := ui.IsColorEnabled()
	ui.SetColorEnabled(false)
	t.Cleanup(func() { ui.SetColorEnabled(prev) })

	entries := []history.Entry{
		{Source: "a.md", Method: "textrank", Summary: "First summary."},
		{Source: "b.md", Method: "fallback", Summary: "Second summary."},
	}

	var buf bytes.Buffer
	if err := writeEntries(&buf, entries[:1], &config.ResolvedOutput{Format: config.FormatText}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "First summary.\n" {
		t.Errorf("single text = %q", buf.String())
	}

	buf.Reset()
	if err := writeEntries(&buf, entries, &config.ResolvedOutput{Format: config.FormatText}); err != nil {
		t.Fatal(err)
	}
	want := "==> a.md <== textrank\nFirst summary.\n\n==> b.md <== fallback\nSecond summary.\n"
	if buf.String() != want {
		t.Errorf("multi text = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := writeEntries(&buf, entries, &config.ResolvedOutput{Format: config.FormatJSON}); err != nil {
		t.Fatal(err)
	}
	var decoded []history.Entry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json output is invalid: %v (%s)", err, buf.String())
	}
	if len(decoded) != 2 || decoded[1].Method != "fallback" {
		t.Errorf("decoded = %+v", decoded)
	}

	buf.Reset()
	if err := writeEntries(&buf, entries, &config.ResolvedOutput{Format: config.FormatText, JQ: ".[0].summary"}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "First summary." {
		t.Errorf("jq output = %q", buf.String())
	}

	buf.Reset()
	if err := writeEntries(&buf, entries[:1], &config.ResolvedOutput{Format: config.FormatYAML}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "summary: First summary.") {
		t.Errorf("yaml output = %q", buf.String())
	}
}

func TestHandleError(t *testing.T) {
	var buf bytes.Buffer
	ui.SetMessageOutput(&buf)
	t.Cleanup(func() { ui.SetMessageOutput(os.Stderr) })

	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "generic", err: errors.New("boom"), want: ExitError},
		{name: "not found", err: errors.Wrap(cmdutil.ErrInputNotFound, "missing.md"), want: ExitNotFound},
		{name: "config", err: &configError{err: errors.New("bad yaml")}, want: ExitConfig},
		{name: "wrapped config", err: errors.Wrap(&configError{err: errors.New("bad")}, "load"), want: ExitConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandleError(tt.err); got != tt.want {
				t.Errorf("HandleError() = %d, want %d", got, tt.want)
			}
		})
	}
}
