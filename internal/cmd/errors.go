package cmd

import (
	"fmt"
	"os"

	"github.com/go-faster/errors"
	"github.com/yacchi/mdsummary/internal/cmdutil"
	"github.com/yacchi/mdsummary/internal/ui"
)

// ExitCode はエラーの終了コード
type ExitCode int

const (
	ExitOK       ExitCode = 0
	ExitError    ExitCode = 1
	ExitNotFound ExitCode = 3
	ExitConfig   ExitCode = 4
)

// configError は設定の読み込み・検証に失敗したことを表す
type configError struct {
	err error
}

func (e *configError) Error() string {
	return "config: " + e.err.Error()
}

func (e *configError) Unwrap() error {
	return e.err
}

// HandleError はエラーを処理して適切なメッセージを表示する
func HandleError(err error) ExitCode {
	if err == nil {
		return ExitOK
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		ui.Error("%v", err)
		ui.Info("Run 'mdsummary config list --all' to check the effective configuration.")
		return ExitConfig
	}

	if errors.Is(err, cmdutil.ErrInputNotFound) {
		ui.Error("%v", err)
		return ExitNotFound
	}

	// 一般的なエラー
	ui.Error("%v", err)
	return ExitError
}

// PrintError はエラーを標準エラー出力に表示する
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
