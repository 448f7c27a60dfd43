package summary

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	ellipsis      = "..."
	ellipsisRunes = 3

	// 予算に対してこれ未満しか埋まっていなければ、次の文を切り詰めて足す
	partialFillRatio = 0.6

	// 文末記号がなくこの文字数未満の文は見出しとみなしてスコアを下げる
	headingMaxRunes = 20
	headingPenalty  = 0.5
)

// BuildSummary picks the top sentenceCount sentences by score, restores their
// original order and joins them within maxLength characters.
func BuildSummary(sentences []Sentence, scores []float64, sentenceCount, maxLength int) string {
	summary, _ := buildSummary(sentences, scores, sentenceCount, maxLength)
	return summary
}

// buildSummary は要約文と実際に使った文の Index を返す
func buildSummary(sentences []Sentence, scores []float64, sentenceCount, maxLength int) (string, []int) {
	if len(sentences) == 0 || maxLength <= 0 {
		return "", nil
	}
	selected := selectTop(sentences, scores, sentenceCount)

	var used []int
	var b strings.Builder
	length := 0
	for _, s := range selected {
		text := withTerminal(s.Text)
		sep := 0
		if length > 0 {
			sep = 1
		}
		textLen := utf8.RuneCountInString(text)
		if length+sep+textLen > maxLength {
			if float64(length) < partialFillRatio*float64(maxLength) {
				if cut := truncateAtBoundary(text, maxLength-length-sep-ellipsisRunes); cut != "" {
					if sep > 0 {
						b.WriteByte(' ')
					}
					b.WriteString(cut)
					b.WriteString(ellipsis)
					used = append(used, s.Index)
				}
			}
			break
		}
		if sep > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
		length += sep + textLen
		used = append(used, s.Index)
	}
	return strings.TrimSpace(b.String()), used
}

// selectTop はスコア降順に上位を選び、元の出現順に並べ直して返す
func selectTop(sentences []Sentence, scores []float64, sentenceCount int) []Sentence {
	ranked := make([]Sentence, len(sentences))
	copy(ranked, sentences)
	for i := range ranked {
		if i < len(scores) {
			ranked[i].Score = scores[i]
		}
		if isHeadingLike(ranked[i].Text) {
			ranked[i].Score *= headingPenalty
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})

	k := min(max(sentenceCount, 1), len(ranked))
	top := ranked[:k]
	sort.Slice(top, func(i, j int) bool {
		return top[i].Index < top[j].Index
	})
	return top
}

func isHeadingLike(text string) bool {
	r, _ := utf8.DecodeLastRuneInString(text)
	if isTerminal(r) || isClosing(r) {
		return false
	}
	return utf8.RuneCountInString(text) < headingMaxRunes
}

// withTerminal は文末記号がなければ句点を補う
func withTerminal(text string) string {
	text = strings.TrimSpace(text)
	r, _ := utf8.DecodeLastRuneInString(text)
	if r == utf8.RuneError || isTerminal(r) || isClosing(r) {
		return text
	}
	if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
		return text + "。"
	}
	return text + "."
}

// truncateAtBoundary は limit 文字以内に収まるよう、なるべく単語の境界で切る
func truncateAtBoundary(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	prefix := runes[:limit]
	cut := len(prefix)
	for i := len(prefix) - 1; i > len(prefix)/2; i-- {
		if unicode.IsSpace(prefix[i]) {
			cut = i
			break
		}
	}
	return strings.TrimRightFunc(string(prefix[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '，' || r == '、' || r == ':' || r == '：'
	})
}

// truncateRunes は maxLength を超える場合に省略記号付きで切り詰める
func truncateRunes(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	if maxLength <= ellipsisRunes {
		return string([]rune(text)[:maxLength])
	}
	return truncateAtBoundary(text, maxLength-ellipsisRunes) + ellipsis
}
