package summary

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/yacchi/mdsummary/internal/summary"

// Algorithm selects the sentence ranker.
type Algorithm string

const (
	AlgorithmTextRank Algorithm = "textrank"
	AlgorithmLexRank  Algorithm = "lexrank"
)

// ParseAlgorithm は設定値から Algorithm を得る。空文字は TextRank。
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", AlgorithmTextRank:
		return AlgorithmTextRank, nil
	case AlgorithmLexRank:
		return AlgorithmLexRank, nil
	}
	return "", errors.Errorf("unknown algorithm %q (want textrank or lexrank)", s)
}

// EngineConfig is the per-engine summary configuration.
type EngineConfig struct {
	Algorithm     Algorithm
	SentenceCount int
	MaxLength     int
	Fallback      Fallback
	Logger        *slog.Logger
}

// Engine runs summaries with tracing and metrics around the pure pipeline.
// It holds no per-document state and is safe for concurrent use.
type Engine struct {
	cfg      EngineConfig
	tracer   trace.Tracer
	runs     metric.Int64Counter
	fallback metric.Int64Counter
}

// NewEngine creates an Engine using the global OpenTelemetry providers.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if _, err := ParseAlgorithm(string(cfg.Algorithm)); err != nil {
		return nil, err
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmTextRank
	}
	cfg.SentenceCount, cfg.MaxLength = clampParams(cfg.SentenceCount, cfg.MaxLength)

	meter := otel.Meter(instrumentationName)
	runs, err := meter.Int64Counter("mdsummary.summary.runs",
		metric.WithDescription("Number of generated summaries by method"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create runs counter")
	}
	fallback, err := meter.Int64Counter("mdsummary.summary.fallbacks",
		metric.WithDescription("Number of summaries produced by the fallback summarizer"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create fallback counter")
	}

	return &Engine{
		cfg:      cfg,
		tracer:   otel.Tracer(instrumentationName),
		runs:     runs,
		fallback: fallback,
	}, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Summarize summarizes a single document.
func (e *Engine) Summarize(ctx context.Context, content string) Result {
	ctx, span := e.tracer.Start(ctx, "summary.Summarize", trace.WithAttributes(
		attribute.String("summary.algorithm", string(e.cfg.Algorithm)),
		attribute.Int("summary.sentence_count", e.cfg.SentenceCount),
		attribute.Int("summary.max_length", e.cfg.MaxLength),
		attribute.Int("summary.input_length", utf8.RuneCountInString(content)),
	))
	defer span.End()

	opts := []Option{WithLogger(e.cfg.Logger)}
	if e.cfg.Fallback != nil {
		opts = append(opts, WithFallback(e.cfg.Fallback))
	}

	var res Result
	switch e.cfg.Algorithm {
	case AlgorithmLexRank:
		res = SummarizeLexRank(content, e.cfg.SentenceCount, e.cfg.MaxLength, opts...)
	default:
		res = Summarize(content, e.cfg.SentenceCount, e.cfg.MaxLength, opts...)
	}

	attrs := []attribute.KeyValue{attribute.String("summary.method", string(res.Method))}
	span.SetAttributes(append(attrs,
		attribute.Int("summary.sentences", res.Sentences),
		attribute.Int("summary.iterations", res.Iterations),
		attribute.Bool("summary.converged", res.Converged),
		attribute.Int("summary.output_length", utf8.RuneCountInString(res.Summary)),
	)...)
	e.runs.Add(ctx, 1, metric.WithAttributes(attrs...))

	if res.Method == MethodFallback {
		e.fallback.Add(ctx, 1, metric.WithAttributes(attribute.String("summary.reason", ReasonLabel(res.Reason))))
		if errors.Is(res.Reason, ErrPanic) {
			span.SetStatus(codes.Error, res.Reason.Error())
		}
	}
	return res
}

// ReasonLabel maps a fallback reason to a short, low-cardinality label.
func ReasonLabel(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoSentences):
		return "no_sentences"
	case errors.Is(err, ErrTooShort):
		return "too_short"
	case errors.Is(err, ErrLowContent):
		return "low_content"
	case errors.Is(err, ErrRepeatedChars):
		return "repeated_chars"
	case errors.Is(err, ErrPanic):
		return "panic"
	default:
		return "error"
	}
}
