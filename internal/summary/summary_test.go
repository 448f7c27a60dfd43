package summary

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/go-faster/errors"
)

const article = `# Why Go works well for services

Go is a statically typed language designed at Google for building reliable network services.

Its standard library ships with an HTTP server, a TLS stack and a testing framework, which keeps external dependencies small.

## Concurrency

Goroutines are cheap, so network services written in Go can handle thousands of concurrent connections on one machine.

- Channels let goroutines communicate without sharing memory.
- The select statement waits on several channel operations at once.

` + "```go\ngo serve(conn)\n```" + `

Read the [tour](https://go.dev/tour) for an interactive introduction to the language.

Many teams adopt Go for network services because deployment is a single static binary.
`

// recordingFallback は呼び出し回数を数える
type recordingFallback struct {
	calls   int
	content string
	out     string
}

func (r *recordingFallback) Summarize(content string, maxLength int) string {
	r.calls++
	r.content = content
	return r.out
}

func TestGenerateSummaryEmpty(t *testing.T) {
	fb := &recordingFallback{out: "should not be used"}
	for _, in := range []string{"", "   ", "\n\t\n"} {
		res := Summarize(in, 3, 200, WithFallback(fb))
		if res.Summary != "" || res.Method != MethodEmpty {
			t.Errorf("Summarize(%q) = %+v, want empty", in, res)
		}
	}
	if fb.calls != 0 {
		t.Errorf("fallback called %d times for empty input", fb.calls)
	}
	if got := GenerateSummary("", 3, 200); got != "" {
		t.Errorf("GenerateSummary(\"\") = %q", got)
	}
}

func TestGenerateSummarySingleSentence(t *testing.T) {
	in := "The quick brown fox jumps now."
	if utf8.RuneCountInString(in) != 30 {
		t.Fatalf("fixture length = %d", utf8.RuneCountInString(in))
	}
	res := Summarize(in, 3, 200)
	if res.Summary != in {
		t.Errorf("Summary = %q, want %q", res.Summary, in)
	}
	if res.Method != MethodSingle {
		t.Errorf("Method = %q, want %q", res.Method, MethodSingle)
	}
}

func TestGenerateSummaryCodeOnly(t *testing.T) {
	in := "```\n" + strings.Repeat("x", 500) + "\n```"
	fb := &recordingFallback{out: "fallback"}
	res := Summarize(in, 3, 200, WithFallback(fb))
	if fb.calls != 1 {
		t.Fatalf("fallback calls = %d, want 1", fb.calls)
	}
	if res.Method != MethodFallback || !errors.Is(res.Reason, ErrNoSentences) {
		t.Errorf("Summarize() = %+v, want fallback with ErrNoSentences", res)
	}
	if res.Summary != "fallback" {
		t.Errorf("Summary = %q", res.Summary)
	}
}

func TestGenerateSummaryNearDuplicates(t *testing.T) {
	base := "ab cd ef gh ij kl mn op qr st uv wx yz ba dc fe hg ji lk nm"
	variants := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet"}
	var lines []string
	for _, v := range variants {
		lines = append(lines, base+" "+v+".")
	}
	in := strings.Join(lines, " ")

	sentences := Segment(Normalize(in))
	if len(sentences) != 10 {
		t.Fatalf("got %d sentences, want 10", len(sentences))
	}
	if sim := Similarity(sentences[0].Tokens, sentences[1].Tokens); sim <= 0.9 {
		t.Fatalf("fixture similarity = %v, want > 0.9", sim)
	}

	res := Summarize(in, 3, 300)
	if res.Method != MethodTextRank {
		t.Fatalf("Method = %q (reason %v)", res.Method, res.Reason)
	}
	if res.Iterations < 1 || res.Iterations > maxIterations {
		t.Errorf("Iterations = %d", res.Iterations)
	}
	if len(res.Selected) != 3 {
		t.Fatalf("Selected = %v, want 3 sentences", res.Selected)
	}
	for i := 1; i < len(res.Selected); i++ {
		if res.Selected[i-1] >= res.Selected[i] {
			t.Errorf("Selected = %v, not in original order", res.Selected)
		}
	}
}

func TestGenerateSummaryRepeatedCharacters(t *testing.T) {
	in := "The project started in the spring with a small team. " +
		"aaaaaaaaaa is the noise marker inside this line. " +
		"The team grew quickly over the summer months."
	fb := &recordingFallback{out: "fallback summary"}
	res := Summarize(in, 3, 200, WithFallback(fb))
	if fb.calls != 1 {
		t.Fatalf("fallback calls = %d, want 1", fb.calls)
	}
	if !errors.Is(res.Reason, ErrRepeatedChars) {
		t.Errorf("Reason = %v, want ErrRepeatedChars", res.Reason)
	}
	if res.Summary != "fallback summary" {
		t.Errorf("Summary = %q", res.Summary)
	}
	if res.Sentences != 3 {
		t.Errorf("Sentences = %d, want 3", res.Sentences)
	}
}

func TestGenerateSummaryProperties(t *testing.T) {
	for _, maxLength := range []int{1, 5, 20, 50, 100, 200, 500} {
		for _, count := range []int{1, 3, 5} {
			t.Run(fmt.Sprintf("count=%d/max=%d", count, maxLength), func(t *testing.T) {
				got := GenerateSummary(article, count, maxLength)
				if n := utf8.RuneCountInString(got); n > maxLength {
					t.Errorf("length = %d, want <= %d (%q)", n, maxLength, got)
				}
				if got == "" {
					t.Error("summary is empty")
				}
				if again := GenerateSummary(article, count, maxLength); again != got {
					t.Errorf("not deterministic: %q vs %q", got, again)
				}
			})
		}
	}
}

func TestGenerateSummaryKeepsOrderAndText(t *testing.T) {
	res := Summarize(article, 3, 500)
	if res.Method != MethodTextRank {
		t.Fatalf("Method = %q (reason %v)", res.Method, res.Reason)
	}
	sentences := Segment(Normalize(article))
	last := -1
	for _, idx := range res.Selected {
		text := withTerminal(sentences[idx].Text)
		pos := strings.Index(res.Summary, text)
		if pos < 0 {
			t.Fatalf("summary %q does not contain sentence %q", res.Summary, text)
		}
		if pos <= last {
			t.Errorf("sentence %d is out of order in %q", idx, res.Summary)
		}
		last = pos
	}
	if strings.Contains(res.Summary, "go serve(conn)") {
		t.Errorf("summary picked up code: %q", res.Summary)
	}
}

func TestGenerateSummaryDefaults(t *testing.T) {
	if GenerateSummary(article, 0, 0) != GenerateSummary(article, DefaultSentenceCount, DefaultMaxLength) {
		t.Error("non-positive parameters should use the defaults")
	}
}

func TestGenerateSummaryJapanese(t *testing.T) {
	text := `
吾輩は猫である。
名前はまだ無い。
どこで生れたかとんと見当がつかぬ。
何でも薄暗いじめじめした所でニャーニャー泣いていた事だけは記憶している。
吾輩はここで始めて人間というものを見た。
しかもあとで聞くとそれは書生という人間中で一番獰悪な種族であったそうだ。
この書生というのは時々我々を捕えて煮て食うという話である。
`
	got := GenerateSummary(text, 2, 200)
	if got == "" {
		t.Fatal("expected non-empty summary")
	}
	if utf8.RuneCountInString(got) > 200 {
		t.Errorf("summary too long: %q", got)
	}
}

func TestGenerateSummaryPanickingFallback(t *testing.T) {
	in := "```\n" + strings.Repeat("y", 500) + "\n```"
	fb := FallbackFunc(func(string, int) string { panic("boom") })
	if got := GenerateSummary(in, 3, 200, WithFallback(fb)); got != "" {
		t.Errorf("GenerateSummary() = %q, want empty", got)
	}
}

func TestGenerateSummaryRankPanic(t *testing.T) {
	orig := rankFunc
	rankFunc = func(*Graph) RankResult { panic("rank exploded") }
	t.Cleanup(func() { rankFunc = orig })

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	fb := &recordingFallback{out: "fallback summary"}

	res := Summarize(article, 3, 200, WithFallback(fb), WithLogger(logger))
	if res.Method != MethodFallback {
		t.Errorf("Method = %q, want %q", res.Method, MethodFallback)
	}
	if !errors.Is(res.Reason, ErrPanic) {
		t.Errorf("Reason = %v, want ErrPanic", res.Reason)
	}
	if res.Summary != "fallback summary" {
		t.Errorf("Summary = %q", res.Summary)
	}
	if fb.calls != 1 || fb.content != article {
		t.Errorf("fallback calls = %d, got raw content = %v", fb.calls, fb.content == article)
	}
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "rank exploded") {
		t.Errorf("log output = %q, want a WARN record with the panic", buf.String())
	}
}

func TestGenerateSummaryWrappedLines(t *testing.T) {
	in := "The scheduler assigns each incoming job to a worker pool that\n" +
		"has spare capacity at the moment of arrival. Workers report back when they finish."
	sentences := []string{
		"The scheduler assigns each incoming job to a worker pool that has spare capacity at the moment of arrival.",
		"Workers report back when they finish.",
	}

	got := GenerateSummary(in, 1, 200)
	if got != sentences[0] && got != sentences[1] {
		t.Errorf("GenerateSummary() = %q, want one of %q", got, sentences)
	}
	if strings.Contains(got, "pool that.") {
		t.Errorf("summary contains a fragment: %q", got)
	}
}

func TestGenerateSummaryConcurrent(t *testing.T) {
	want := GenerateSummary(article, 3, 200)
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := GenerateSummary(article, 3, 200); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent result %q differs from %q", got, want)
	}
}

func TestSimpleFallback(t *testing.T) {
	fb := SimpleFallback{}
	if got := fb.Summarize("", 100); got != "" {
		t.Errorf("empty input = %q", got)
	}
	if got := fb.Summarize("**Short** text.", 100); got != "Short text." {
		t.Errorf("short input = %q", got)
	}

	got := fb.Summarize("First sentence is here. Second sentence is much longer than the budget allows.", 40)
	if got != "First sentence is here." {
		t.Errorf("sentence boundary = %q", got)
	}

	got = fb.Summarize(strings.Repeat("word ", 40), 30)
	if utf8.RuneCountInString(got) > 30 || !strings.HasSuffix(got, "...") {
		t.Errorf("word boundary = %q", got)
	}
}

func TestEngine(t *testing.T) {
	if _, err := NewEngine(EngineConfig{Algorithm: "bogus"}); err == nil {
		t.Error("NewEngine(bogus) should fail")
	}

	engine, err := NewEngine(EngineConfig{})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	cfg := engine.Config()
	if cfg.Algorithm != AlgorithmTextRank || cfg.SentenceCount != DefaultSentenceCount || cfg.MaxLength != DefaultMaxLength {
		t.Errorf("Config() = %+v", cfg)
	}

	ctx := context.Background()
	if got, want := engine.Summarize(ctx, article).Summary, GenerateSummary(article, 3, 200); got != want {
		t.Errorf("Engine.Summarize() = %q, want %q", got, want)
	}
	if res := engine.Summarize(ctx, ""); res.Method != MethodEmpty {
		t.Errorf("empty Method = %q", res.Method)
	}
}

func TestEngineLexRank(t *testing.T) {
	engine, err := NewEngine(EngineConfig{Algorithm: AlgorithmLexRank, SentenceCount: 2, MaxLength: 120})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	ctx := context.Background()

	res := engine.Summarize(ctx, article)
	if res.Summary == "" {
		t.Fatal("expected non-empty summary")
	}
	if utf8.RuneCountInString(res.Summary) > 120 {
		t.Errorf("summary too long: %q", res.Summary)
	}

	fb := &recordingFallback{out: "fb"}
	res = SummarizeLexRank("```\n"+strings.Repeat("z", 500)+"\n```", 2, 120, WithFallback(fb))
	if fb.calls != 1 || !errors.Is(res.Reason, ErrNoSentences) {
		t.Errorf("code only = %+v (calls %d)", res, fb.calls)
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{in: "", want: AlgorithmTextRank},
		{in: "textrank", want: AlgorithmTextRank},
		{in: "lexrank", want: AlgorithmLexRank},
		{in: "pagerank", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReasonLabel(t *testing.T) {
	if got := ReasonLabel(errors.Wrap(ErrPanic, "boom")); got != "panic" {
		t.Errorf("ReasonLabel(panic) = %q", got)
	}
	if got := ReasonLabel(ErrNoSentences); got != "no_sentences" {
		t.Errorf("ReasonLabel(no sentences) = %q", got)
	}
	if got := ReasonLabel(nil); got != "" {
		t.Errorf("ReasonLabel(nil) = %q", got)
	}
}
