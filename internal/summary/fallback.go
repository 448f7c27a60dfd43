package summary

import (
	"strings"
	"unicode/utf8"
)

// Fallback produces a summary when the ranking pipeline cannot.
// Implementations must not panic and must return "" for empty content.
type Fallback interface {
	Summarize(content string, maxLength int) string
}

// FallbackFunc adapts a function to Fallback.
type FallbackFunc func(content string, maxLength int) string

// Summarize calls f.
func (f FallbackFunc) Summarize(content string, maxLength int) string {
	return f(content, maxLength)
}

// SimpleFallback strips markup and truncates the text at the last sentence
// boundary that fits in the budget.
type SimpleFallback struct{}

// Summarize implements Fallback.
func (SimpleFallback) Summarize(content string, maxLength int) string {
	if strings.TrimSpace(content) == "" || maxLength <= 0 {
		return ""
	}

	text := strings.Join(strings.Fields(Normalize(content)), " ")
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	// 予算内で最後の文末記号まで。短くなりすぎる場合は単語境界で切る
	prefix := runes[:maxLength]
	for i := len(prefix) - 1; i >= len(prefix)/3; i-- {
		if isTerminal(prefix[i]) {
			return strings.TrimSpace(string(prefix[:i+1]))
		}
	}
	return truncateRunes(text, maxLength)
}

// safeFallback は Fallback の panic を握りつぶし、予算を超えた結果を切り詰める
func safeFallback(fb Fallback, content string, maxLength int) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
		}
	}()
	if fb == nil {
		fb = SimpleFallback{}
	}
	out = fb.Summarize(content, maxLength)
	if utf8.RuneCountInString(out) > maxLength {
		out = truncateRunes(out, maxLength)
	}
	return out
}
