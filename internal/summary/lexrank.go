package summary

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/ramenjuniti/lexrankmmr"
)

// lexrankmmr 側の文字数制限は使わず、予算は BuildSummary で守る
const lexRankMaxCharacters = 100000

// SummarizeLexRank ranks sentences with LexRank-MMR instead of TextRank.
// Normalization, segmentation, the length budget and the fallback policy are
// the same as Summarize.
func SummarizeLexRank(content string, sentenceCount, maxLength int, opts ...Option) (res Result) {
	if strings.TrimSpace(content) == "" {
		return Result{Method: MethodEmpty}
	}
	sentenceCount, maxLength = clampParams(sentenceCount, maxLength)
	o := newOptions(opts)

	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn("lexrank pipeline panicked, using fallback", "panic", fmt.Sprint(r))
			res = fallbackResult(o, content, maxLength, errors.Wrap(ErrPanic, fmt.Sprint(r)))
		}
	}()

	sentences := Segment(Normalize(content))
	if len(sentences) == 0 {
		return fallbackResult(o, content, maxLength, ErrNoSentences)
	}
	if len(sentences) == 1 {
		return Summarize(content, sentenceCount, maxLength, opts...)
	}

	scores, err := lexRankScores(sentences, sentenceCount)
	if err != nil {
		o.logger.Warn("lexrank failed, using fallback", "error", err)
		fb := fallbackResult(o, content, maxLength, err)
		fb.Sentences = len(sentences)
		return fb
	}

	res = Result{Method: MethodLexRank, Sentences: len(sentences), Converged: true}
	res.Summary, res.Selected = buildSummary(sentences, scores, sentenceCount, maxLength)
	if err := checkQuality(res.Summary, maxLength); err != nil {
		o.logger.Debug("summary rejected by quality check", "reason", err, "method", res.Method)
		fb := fallbackResult(o, content, maxLength, err)
		fb.Sentences = res.Sentences
		return fb
	}
	return res
}

// lexRankScores は LexRankMMR の選出順を擬似スコアに変換する。選ばれなかった文は 0。
func lexRankScores(sentences []Sentence, sentenceCount int) ([]float64, error) {
	// LexRankMMRは「。」で文を区切るため、文末記号を揃えて結合する
	byText := make(map[string]int, len(sentences))
	lines := make([]string, 0, len(sentences))
	for _, s := range sentences {
		line := strings.TrimRightFunc(s.Text, isTerminal)
		if _, dup := byText[line]; !dup {
			byText[line] = s.Index
		}
		lines = append(lines, line)
	}
	text := strings.Join(lines, "。") + "。"

	data, err := lexrankmmr.New(
		lexrankmmr.MaxLines(sentenceCount),
		lexrankmmr.MaxCharacters(lexRankMaxCharacters),
	)
	if err != nil {
		return nil, errors.Wrap(err, "initialize lexrankmmr")
	}
	if err := data.Summarize(text); err != nil {
		return nil, errors.Wrap(err, "lexrankmmr summarize")
	}

	scores := make([]float64, len(sentences))
	picked := len(data.LineLimitedSummary)
	for rank, item := range data.LineLimitedSummary {
		idx, ok := byText[strings.TrimRightFunc(strings.TrimSpace(item.Sentence), isTerminal)]
		if !ok {
			continue
		}
		scores[idx] = float64(picked - rank)
	}
	return scores, nil
}
