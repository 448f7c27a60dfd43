package summary

import (
	"unicode/utf8"

	"github.com/go-faster/errors"
)

const (
	minSummaryRunes        = 10
	minSummaryContentRatio = 0.5
	// 同じ文字がこの回数を超えて連続したら壊れた出力とみなす
	maxRepeatedRunes = 4
)

var (
	// ErrNoSentences is reported when segmentation leaves no usable sentence.
	ErrNoSentences = errors.New("summary: no sentences")
	// ErrTooShort is reported when the summary is below the length floor.
	ErrTooShort = errors.New("summary: too short")
	// ErrLowContent is reported when the summary is mostly punctuation or whitespace.
	ErrLowContent = errors.New("summary: low content ratio")
	// ErrRepeatedChars is reported when a character repeats suspiciously often.
	ErrRepeatedChars = errors.New("summary: repeated characters")
	// ErrPanic is reported when a pipeline stage panicked.
	ErrPanic = errors.New("summary: processing fault")
)

// checkQuality は要約が使い物になるかを判定する
func checkQuality(summary string, maxLength int) error {
	length := utf8.RuneCountInString(summary)
	if length < min(minSummaryRunes, maxLength) || length == 0 {
		return ErrTooShort
	}
	if contentRatio(summary, false) < minSummaryContentRatio {
		return ErrLowContent
	}
	if hasRepeatedRun(summary, maxRepeatedRunes) {
		return ErrRepeatedChars
	}
	return nil
}

func hasRepeatedRun(s string, limit int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run > limit {
			return true
		}
	}
	return false
}
