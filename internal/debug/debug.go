// Package debug はプロセス全体で共有する slog ロガーを提供する
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	enabled bool
	mu      sync.RWMutex
	out     io.Writer = os.Stderr
	logger  *slog.Logger
)

func init() {
	logger = newLogger(out, false)
}

// 無効時も WARN 以上は出す
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Enable はデバッグモードを有効化する
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
	logger = newLogger(out, true)
}

// Disable はデバッグモードを無効化する
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
	logger = newLogger(out, false)
}

// IsEnabled はデバッグモードが有効かどうかを返す
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetOutput はログの出力先を差し替える
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	logger = newLogger(out, enabled)
}

// Logger は現在のロガーを返す。要約エンジンにそのまま渡す。
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Log はデバッグモード時にログを出力する
func Log(msg string, args ...any) {
	if !IsEnabled() {
		return
	}
	Logger().Debug(msg, args...)
}
