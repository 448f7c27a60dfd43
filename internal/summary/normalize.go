package summary

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// コードブロックの中身がこの文字数を超える場合はブロックごと捨てる
const maxKeptCodeRunes = 100

var (
	// 改行コード
	reCRLF = regexp.MustCompile(`\r\n?`)

	// フェンス付きコードブロック（``` と ~~~ の両方）
	reFenceBacktick = regexp.MustCompile("(?s)```[^\\n]*\\n?(.*?)```")
	reFenceTilde    = regexp.MustCompile(`(?s)~~~[^\n]*\n?(.*?)~~~`)

	// インラインコード
	reInlineCode = regexp.MustCompile("`([^`\\n]+)`")

	// 水平線 (---, ***, ___)
	reHorizontalRule = regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`)

	// 画像: ![alt](url) / ![alt][ref]
	reImage    = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	reImageRef = regexp.MustCompile(`!\[([^\]]*)\]\[[^\]]*\]`)

	// リンク: [label](url) / [label][ref] / 参照定義行
	reLinkRefDef = regexp.MustCompile(`(?m)^[ \t]*\[[^\]]+\]:[ \t]*\S+.*$`)
	reLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	reLinkRef    = regexp.MustCompile(`\[([^\]]+)\]\[[^\]]*\]`)

	// 強調: **bold**, __bold__, *italic*, _italic_, ~~strike~~
	reBoldStar       = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
	reBoldUnderscore = regexp.MustCompile(`__([^_\n]+?)__`)
	reItalicStar     = regexp.MustCompile(`\*([^*\s][^*\n]*?)\*`)
	reItalicUnder    = regexp.MustCompile(`(^|[^\p{L}\p{N}_])_([^_\s][^_\n]*?)_([^\p{L}\p{N}_]|$)`)
	reStrike         = regexp.MustCompile(`~~([^~\n]+?)~~`)

	// HTMLタグ
	reHTMLTag = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

	// 行頭の構造記号
	reHeading      = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+(.*?)[ \t]*#*[ \t]*$`)
	reBlockquote   = regexp.MustCompile(`(?m)^[ \t]*(>[ \t]?)+`)
	reUnorderedLst = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+(\[[ xX]\][ \t]+)?`)
	reOrderedLst   = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+`)

	// テーブル行と区切り行（外側の | は省略可）
	reTableRow       = regexp.MustCompile(`^[ \t]*\|.*\|[ \t]*$`)
	reTableSeparator = regexp.MustCompile(`^[ \t]*\|?[ \t]*:?-{3,}:?[ \t]*(\|[ \t]*:?-{3,}:?[ \t]*)*\|?[ \t]*$`)

	// 空白の整理
	reTrailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
	reManyNewlines  = regexp.MustCompile(`\n{3,}`)
	reManySpaces    = regexp.MustCompile(`[ \t\f\v]{2,}`)
)

// Normalize strips Markdown syntax from raw and returns the readable text.
// Text without any markup is returned trimmed but otherwise unchanged.
func Normalize(raw string) string {
	text := reCRLF.ReplaceAllString(raw, "\n")

	// 1. コードブロック
	text = replaceFence(reFenceBacktick, text)
	text = replaceFence(reFenceTilde, text)

	// 2. インラインコードは中身のみ残す
	text = reInlineCode.ReplaceAllString(text, "$1")

	// 強調記号と区別がつかなくなる前に水平線を落とす
	text = reHorizontalRule.ReplaceAllString(text, "")

	// 3. 画像は alt のみ（空なら削除）
	text = reImage.ReplaceAllString(text, "$1")
	text = reImageRef.ReplaceAllString(text, "$1")

	// 4. リンクはラベルのみ
	text = reLinkRefDef.ReplaceAllString(text, "")
	text = reLink.ReplaceAllString(text, "$1")
	text = reLinkRef.ReplaceAllString(text, "$1")

	// 5. 強調
	text = reBoldStar.ReplaceAllString(text, "$1")
	text = reBoldUnderscore.ReplaceAllString(text, "$1")
	text = reItalicStar.ReplaceAllString(text, "$1")
	text = reItalicUnder.ReplaceAllString(text, "$1$2$3")
	text = reStrike.ReplaceAllString(text, "$1")
	text = reHTMLTag.ReplaceAllString(text, "")

	// 6-8. 見出し・引用・リスト
	// 見出しとリスト項目は前後の行と繋がらないよう独立した段落にする
	text = reHeading.ReplaceAllString(text, "\n$1\n")
	text = reBlockquote.ReplaceAllString(text, "")
	text = reUnorderedLst.ReplaceAllString(text, "\n")
	text = reOrderedLst.ReplaceAllString(text, "\n")

	// 9. テーブルは行ごと削除
	text = dropTables(text)

	text = reTrailingSpace.ReplaceAllString(text, "")
	text = reManyNewlines.ReplaceAllString(text, "\n\n")
	text = reManySpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// dropTables は表の行を取り除く。外側の | がない行は区切り行で表と確定したものだけ落とす。
func dropTables(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inTable := false
	for _, line := range lines {
		if isTableSeparator(line) {
			// 直前のヘッダー行も表の一部
			if n := len(out); n > 0 && strings.Contains(out[n-1], "|") {
				out = out[:n-1]
			}
			inTable = true
			continue
		}
		if inTable && strings.Contains(line, "|") {
			continue
		}
		inTable = false
		if reTableRow.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isTableSeparator(line string) bool {
	return strings.Contains(line, "|") && reTableSeparator.MatchString(line)
}

func replaceFence(re *regexp.Regexp, text string) string {
	return re.ReplaceAllStringFunc(text, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		body := strings.Trim(parts[1], "\n")
		if utf8.RuneCountInString(body) > maxKeptCodeRunes {
			return ""
		}
		return body
	})
}
