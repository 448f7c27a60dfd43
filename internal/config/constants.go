package config

import (
	_ "embed"
)

// レイヤー名定数
const (
	LayerDefaults = "defaults"
	LayerUser     = "user"
	LayerProject  = "project"
	LayerEnv      = "env"
	LayerArgs     = "args"
)

// 設定パス（JSON Pointer）
const (
	PathSummarySentenceCount = "/summary/sentence_count"
	PathSummaryMaxLength     = "/summary/max_length"
	PathSummaryAlgorithm     = "/summary/algorithm"
	PathSummaryJobs          = "/summary/jobs"
	PathOutputFormat         = "/output/format"
	PathOutputJQ             = "/output/jq"
	PathCacheEnabled         = "/cache/enabled"
	PathCacheDir             = "/cache/dir"
	PathCacheTTL             = "/cache/ttl"
	PathHistoryEnabled       = "/history/enabled"
	PathHistoryPath          = "/history/path"
	PathHistoryLimit         = "/history/limit"
	PathLogDebug             = "/log/debug"
)

// 出力形式
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

//go:embed defaults.yaml
var defaultConfigYAML []byte
