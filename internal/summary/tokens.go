package summary

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var reToken = regexp.MustCompile(`[\p{Han}a-z0-9]+`)
var reNumeric = regexp.MustCompile(`^[0-9]+$`)

// stopwords は中国語の機能語と英語の冠詞・前置詞・接続詞など
var stopwords = buildStopwords(
	// 中文
	"的", "了", "和", "是", "在", "我", "有", "就", "不", "人", "都", "一", "一个",
	"上", "也", "很", "到", "说", "要", "去", "你", "会", "着", "没有", "看", "好",
	"自己", "这", "那", "这个", "那个", "这些", "那些", "我们", "你们", "他们", "她们",
	"它们", "他", "她", "它", "与", "及", "或", "而", "但", "并", "等", "被", "把",
	"让", "从", "对", "为", "以", "于", "之", "其", "中", "因为", "所以", "如果",
	"但是", "然而", "可以", "没", "吗", "呢", "吧", "啊", "还", "又", "再", "已经",
	"就是", "还是", "以及", "或者", "并且", "而且", "什么", "怎么", "如何", "这样",
	"那样", "通过", "进行", "一些", "这种", "那种", "其中", "之后", "之前",
	// English
	"a", "an", "the", "and", "or", "but", "if", "nor", "so", "yet", "of", "to", "in",
	"on", "at", "by", "for", "with", "from", "as", "into", "onto", "over", "under",
	"about", "above", "below", "between", "through", "during", "before", "after",
	"than", "then", "is", "are", "was", "were", "be", "been", "being", "am", "it",
	"its", "this", "that", "these", "those", "not", "no", "do", "does", "did", "has",
	"have", "had", "will", "would", "can", "could", "should", "shall", "may", "might",
	"must", "i", "you", "he", "she", "we", "they", "me", "him", "her", "us", "them",
	"my", "your", "his", "our", "their", "what", "which", "who", "whom", "when",
	"where", "why", "how", "all", "any", "each", "also", "just", "very", "there",
	"here", "up", "out", "off", "more", "most", "such", "only", "own", "same", "too",
	"both", "while", "because", "until", "against", "per", "via",
)

func buildStopwords(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// ExtractWords returns the lowercase lexical token set of a sentence.
// Tokens shorter than two characters, numerals and stopwords are dropped.
func ExtractWords(sentence string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, tok := range reToken.FindAllString(strings.ToLower(sentence), -1) {
		if utf8.RuneCountInString(tok) < 2 {
			continue
		}
		if reNumeric.MatchString(tok) {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		words[tok] = struct{}{}
	}
	return words
}
