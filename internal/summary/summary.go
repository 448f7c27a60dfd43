// Package summary implements extractive summarization of Markdown text.
//
// The pipeline normalizes the markup, segments the text into sentences,
// builds a lexical similarity graph between them and ranks the sentences
// with TextRank. The highest ranked sentences are emitted in their original
// order within a character budget. Whenever the pipeline cannot produce a
// usable result a Fallback is used instead.
package summary

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-faster/errors"
)

const (
	DefaultSentenceCount = 3
	DefaultMaxLength     = 200
)

// Method は要約がどの経路で作られたかを表す
type Method string

const (
	MethodEmpty    Method = "empty"
	MethodSingle   Method = "single"
	MethodTextRank Method = "textrank"
	MethodLexRank  Method = "lexrank"
	MethodFallback Method = "fallback"
)

// Result is a summary together with details about how it was produced.
type Result struct {
	Summary string
	Method  Method
	// Reason is set when Method is MethodFallback.
	Reason error
	// Sentences is the number of sentences that survived segmentation.
	Sentences int
	// Selected holds the indices of the sentences used, in output order.
	Selected   []int
	Iterations int
	Converged  bool
}

// rankFunc はテストで差し替える
var rankFunc = Rank

type options struct {
	fallback Fallback
	logger   *slog.Logger
}

// Option configures Summarize.
type Option func(*options)

// WithFallback replaces the default SimpleFallback.
func WithFallback(fb Fallback) Option {
	return func(o *options) {
		o.fallback = fb
	}
}

// WithLogger sets the logger used for processing faults.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{fallback: SimpleFallback{}}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// GenerateSummary returns a summary of content with at most sentenceCount
// sentences and maxLength characters. It never panics; "" means no summary
// could be produced.
func GenerateSummary(content string, sentenceCount, maxLength int, opts ...Option) string {
	return Summarize(content, sentenceCount, maxLength, opts...).Summary
}

// Summarize is GenerateSummary with details of the run.
// Non-positive sentenceCount and maxLength fall back to the defaults.
func Summarize(content string, sentenceCount, maxLength int, opts ...Option) (res Result) {
	if strings.TrimSpace(content) == "" {
		return Result{Method: MethodEmpty}
	}
	sentenceCount, maxLength = clampParams(sentenceCount, maxLength)
	o := newOptions(opts)

	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn("summary pipeline panicked, using fallback", "panic", fmt.Sprint(r))
			res = fallbackResult(o, content, maxLength, errors.Wrap(ErrPanic, fmt.Sprint(r)))
		}
	}()

	sentences := Segment(Normalize(content))
	res = Result{Sentences: len(sentences)}

	switch len(sentences) {
	case 0:
		return fallbackResult(o, content, maxLength, ErrNoSentences)
	case 1:
		res.Method = MethodSingle
		res.Summary = truncateRunes(sentences[0].Text, maxLength)
		res.Selected = []int{0}
		res.Converged = true
	default:
		ranked := rankFunc(BuildGraph(sentences))
		res.Method = MethodTextRank
		res.Iterations = ranked.Iterations
		res.Converged = ranked.Converged
		res.Summary, res.Selected = buildSummary(sentences, ranked.Scores, sentenceCount, maxLength)
	}

	if err := checkQuality(res.Summary, maxLength); err != nil {
		o.logger.Debug("summary rejected by quality check", "reason", err, "method", res.Method)
		fb := fallbackResult(o, content, maxLength, err)
		fb.Sentences = res.Sentences
		return fb
	}
	return res
}

func clampParams(sentenceCount, maxLength int) (int, int) {
	if sentenceCount < 1 {
		sentenceCount = DefaultSentenceCount
	}
	if maxLength < 1 {
		maxLength = DefaultMaxLength
	}
	return sentenceCount, maxLength
}

func fallbackResult(o *options, content string, maxLength int, reason error) Result {
	return Result{
		Summary: safeFallback(o.fallback, content, maxLength),
		Method:  MethodFallback,
		Reason:  reason,
	}
}
