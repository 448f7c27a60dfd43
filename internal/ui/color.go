// Package ui はターミナル向けの装飾と対話プロンプト
package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var colorEnabled = true

// メッセージ出力先。stdout は要約結果に使うので stderr に出す
var messageOut io.Writer = os.Stderr

func init() {
	// 色が使えるかチェック
	colorEnabled = term.IsTerminal(int(os.Stderr.Fd()))
}

// SetColorEnabled は色の有効/無効を設定する
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// IsColorEnabled は色が有効かどうかを返す
func IsColorEnabled() bool {
	return colorEnabled
}

// IsStdinTerminal は標準入力が端末かどうかを返す
// 端末ならパイプ入力がないとみなす
func IsStdinTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// SetMessageOutput はメッセージの出力先を差し替える
func SetMessageOutput(w io.Writer) {
	messageOut = w
}

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	gray   = "\033[90m"
)

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + reset
}

// Bold は太字にする
func Bold(s string) string { return paint(bold, s) }

// Red は赤色にする
func Red(s string) string { return paint(red, s) }

// Green は緑色にする
func Green(s string) string { return paint(green, s) }

// Yellow は黄色にする
func Yellow(s string) string { return paint(yellow, s) }

// Blue は青色にする
func Blue(s string) string { return paint(blue, s) }

// Gray はグレーにする
func Gray(s string) string { return paint(gray, s) }

// MethodColor は要約方式に応じた色を返す
func MethodColor(method string) string {
	switch method {
	case "textrank", "lexrank":
		return Green(method)
	case "single":
		return Blue(method)
	case "fallback":
		return Yellow(method)
	default:
		return Gray(method)
	}
}

// Success は成功メッセージを出力する
func Success(format string, args ...any) {
	fmt.Fprintf(messageOut, Green("✓ ")+format+"\n", args...)
}

// Error はエラーメッセージを出力する
func Error(format string, args ...any) {
	fmt.Fprintf(messageOut, Red("✗ ")+format+"\n", args...)
}

// Warning は警告メッセージを出力する
func Warning(format string, args ...any) {
	fmt.Fprintf(messageOut, Yellow("! ")+format+"\n", args...)
}

// Info は情報メッセージを出力する
func Info(format string, args ...any) {
	fmt.Fprintf(messageOut, Blue("ℹ ")+format+"\n", args...)
}
