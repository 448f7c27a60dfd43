package summary

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// これより短い候補文は捨てる
	minSentenceRunes = 15
	// 記号・空白・数字を除いた文字の割合がこれ未満なら装飾行とみなす
	minSentenceContentRatio = 0.3
)

// 空行が段落の区切り。段落内の単独の改行は空白と同じ
var reParagraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// Sentence is a segmented sentence together with its token set.
type Sentence struct {
	Text   string
	Tokens map[string]struct{}
	// Index is the 0-based position among surviving sentences.
	// It is the only field used to restore the original order.
	Index int
	Score float64
}

// Segment splits normalized text into sentences and drops degenerate candidates.
func Segment(text string) []Sentence {
	candidates := splitCandidates(text)

	sentences := make([]Sentence, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if utf8.RuneCountInString(c) < minSentenceRunes {
			continue
		}
		if contentRatio(c, true) < minSentenceContentRatio {
			continue
		}
		sentences = append(sentences, Sentence{
			Text:   c,
			Tokens: ExtractWords(c),
			Index:  len(sentences),
		})
	}
	return sentences
}

// splitCandidates は段落ごとに文末記号の直後で分割する。文末記号は前の文に付く。
func splitCandidates(text string) []string {
	var out []string
	for _, para := range reParagraphBreak.Split(text, -1) {
		out = append(out, splitParagraph(strings.ReplaceAll(para, "\n", " "))...)
	}
	return out
}

func splitParagraph(text string) []string {
	runes := []rune(text)
	var out []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		if runes[i] == '.' && !dotEndsSentence(runes, i) {
			continue
		}
		j := i + 1
		for j < len(runes) && (isTerminal(runes[j]) || isClosing(runes[j])) {
			j++
		}
		out = append(out, string(runes[start:j]))
		start = j
		i = j - 1
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

// dotEndsSentence は runes[i] のドットが文末かを返す。
// 3.14, v1.2.3, example.com, U.S.A のように英数字に挟まれたドットでは切らないが、
// "end.Next" のように小文字の直後で大文字が続く場合は区切る。
func dotEndsSentence(runes []rune, i int) bool {
	if i+1 >= len(runes) || !isWordRune(runes[i+1]) {
		return true
	}
	if i == 0 {
		return false
	}
	prev, next := runes[i-1], runes[i+1]
	return unicode.IsLower(prev) && unicode.IsUpper(next)
}

func isTerminal(r rune) bool {
	switch r {
	case '。', '！', '？', '；', '.', '!', '?', ';':
		return true
	}
	return false
}

func isClosing(r rune) bool {
	switch r {
	case '"', '\'', ')', '）', '」', '』', '”', '’', '】':
		return true
	}
	return false
}

func isWordRune(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// contentRatio は記号・空白（withDigits が true なら数字も）を除いた文字の割合を返す
func contentRatio(s string, withDigits bool) float64 {
	total := 0
	content := 0
	for _, r := range s {
		total++
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		if withDigits && unicode.IsDigit(r) {
			continue
		}
		content++
	}
	if total == 0 {
		return 0
	}
	return float64(content) / float64(total)
}
