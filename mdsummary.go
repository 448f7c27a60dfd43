// Package mdsummary provides public APIs for the mdsummary summarizer.
//
// This package exposes minimal entry points for embedding the summarizer,
// while keeping implementation details in internal packages.
package mdsummary

import (
	"context"

	"github.com/yacchi/mdsummary/internal/config"
	"github.com/yacchi/mdsummary/internal/summary"
)

// Result is the detailed outcome of a single summarization.
type Result = summary.Result

// Option customizes a summarization call.
type Option = summary.Option

// Fallback produces a summary when ranking cannot.
type Fallback = summary.Fallback

// Config is the configuration store for mdsummary.
// It provides access to all configuration values with layer-based resolution.
type Config = config.Store

// Default parameters used when a non-positive value is given.
const (
	DefaultSentenceCount = summary.DefaultSentenceCount
	DefaultMaxLength     = summary.DefaultMaxLength
)

// WithFallback replaces the fallback summarizer.
func WithFallback(fb Fallback) Option {
	return summary.WithFallback(fb)
}

// GenerateSummary returns an extractive summary of Markdown content.
// The result holds at most sentenceCount sentences in their original order
// and never exceeds maxLength characters. It never panics; empty input
// yields an empty string.
func GenerateSummary(content string, sentenceCount, maxLength int, opts ...Option) string {
	return summary.GenerateSummary(content, sentenceCount, maxLength, opts...)
}

// Summarize is like GenerateSummary but also reports how the summary was built.
func Summarize(content string, sentenceCount, maxLength int, opts ...Option) Result {
	return summary.Summarize(content, sentenceCount, maxLength, opts...)
}

// LoadConfig loads the configuration from all available sources.
// Sources are resolved in the following priority order:
//   - Command line arguments (highest)
//   - Environment variables (MDSUMMARY_*)
//   - .mdsummary.yaml (project local)
//   - ~/.config/mdsummary/config.yaml (user config)
//   - Defaults (lowest)
func LoadConfig(ctx context.Context) (*Config, error) {
	return config.Load(ctx)
}
