// Package history は要約の実行履歴を JSONL ファイルに記録する
package history

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

const excerptLength = 80

var emailMask = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// Append は path の末尾に1行追記する
func Append(path string, entry Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create history dir")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open history file")
	}
	defer func() { _ = file.Close() }()

	var e jx.Encoder
	entry.Encode(&e)
	line := append(e.Bytes(), '\n')
	if _, err := file.Write(line); err != nil {
		return errors.Wrap(err, "write history entry")
	}
	return nil
}

// Read は新しい順ではなく記録順で、末尾 limit 件を返す。limit <= 0 は全件。
// ファイルがなければ空で返す。壊れた行は読み飛ばす。
func Read(path string, limit int) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "open history file")
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	entries := make([]Entry, 0)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := entry.Decode(jx.DecodeBytes(line)); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read history file")
	}

	if limit <= 0 || len(entries) <= limit {
		return entries, nil
	}
	return entries[len(entries)-limit:], nil
}

// NewEntry は入力本文から共通フィールドを埋めた Entry を作る
func NewEntry(source, input string) Entry {
	return Entry{
		TS:           time.Now(),
		Source:       source,
		InputHash:    sha256Hex(input),
		InputRunes:   utf8.RuneCountInString(input),
		InputExcerpt: excerpt(emailMask.ReplaceAllString(input, "***@***"), excerptLength),
	}
}

func sha256Hex(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

func excerpt(input string, length int) string {
	trimmed := strings.Join(strings.Fields(input), " ")
	runes := []rune(trimmed)
	if len(runes) <= length {
		return trimmed
	}
	return string(runes[:length])
}
