package config

import (
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
)

// ResolvedConfig は全レイヤーをマージし、デフォルト適用後の設定
// jubakoのmaterializationはJSONを使用するため、jsonタグが必須
// env: ディレクティブは MDSUMMARY_ プレフィックスからの相対名
type ResolvedConfig struct {
	Summary ResolvedSummary `json:"summary"`
	Output  ResolvedOutput  `json:"output"`
	Cache   ResolvedCache   `json:"cache"`
	History ResolvedHistory `json:"history"`
	Log     ResolvedLog     `json:"log"`
}

// ResolvedSummary は要約パラメータ
type ResolvedSummary struct {
	SentenceCount int    `json:"sentence_count" jubako:"/summary/sentence_count,env:SENTENCE_COUNT"`
	MaxLength     int    `json:"max_length" jubako:"/summary/max_length,env:MAX_LENGTH"`
	Algorithm     string `json:"algorithm" jubako:"/summary/algorithm,env:ALGORITHM"`
	Jobs          int    `json:"jobs" jubako:"/summary/jobs,env:JOBS"`
}

// ResolvedOutput は出力設定
type ResolvedOutput struct {
	Format string `json:"format" jubako:"/output/format,env:OUTPUT"`
	JQ     string `json:"jq" jubako:"/output/jq,env:JQ"`
}

// ResolvedCache はマージ済みのキャッシュ設定
type ResolvedCache struct {
	Enabled bool   `json:"enabled" jubako:"/cache/enabled,env:CACHE_ENABLED"`
	Dir     string `json:"dir" jubako:"/cache/dir,env:CACHE_DIR"`
	TTL     int    `json:"ttl" jubako:"/cache/ttl,env:CACHE_TTL"`
}

// GetCacheDir returns the cache directory.
// If Dir is not specified, it returns the default cache directory.
func (c *ResolvedCache) GetCacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	return defaultCacheDir()
}

// TTLDuration はTTLを time.Duration で返す
func (c *ResolvedCache) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// ResolvedHistory は実行履歴の設定
type ResolvedHistory struct {
	Enabled bool   `json:"enabled" jubako:"/history/enabled,env:HISTORY_ENABLED"`
	Path    string `json:"path" jubako:"/history/path,env:HISTORY_PATH"`
	Limit   int    `json:"limit" jubako:"/history/limit,env:HISTORY_LIMIT"`
}

// GetPath は履歴ファイルのパスを返す。未指定ならキャッシュディレクトリ配下。
func (h *ResolvedHistory) GetPath() (string, error) {
	if h.Path != "" {
		return h.Path, nil
	}
	dir, err := defaultCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.jsonl"), nil
}

// ResolvedLog はログ設定
type ResolvedLog struct {
	Debug bool `json:"debug" jubako:"/log/debug,env:DEBUG"`
}

// Validate は列挙値と数値の範囲を検証する
func (r *ResolvedConfig) Validate() error {
	switch r.Summary.Algorithm {
	case "", "textrank", "lexrank":
	default:
		return errors.Errorf("summary.algorithm: unknown value %q (want textrank or lexrank)", r.Summary.Algorithm)
	}
	switch r.Output.Format {
	case "", FormatText, FormatJSON, FormatYAML:
	default:
		return errors.Errorf("output.format: unknown value %q (want text, json or yaml)", r.Output.Format)
	}
	if r.Summary.SentenceCount < 0 {
		return errors.Errorf("summary.sentence_count: must not be negative, got %d", r.Summary.SentenceCount)
	}
	if r.Summary.MaxLength < 0 {
		return errors.Errorf("summary.max_length: must not be negative, got %d", r.Summary.MaxLength)
	}
	if r.Cache.TTL < 0 {
		return errors.Errorf("cache.ttl: must not be negative, got %d", r.Cache.TTL)
	}
	return nil
}
