package services

import (
	"regexp"
	"strings"
)

// markupRule はYouTrack wikiマークアップからMarkdownへの変換規則です
type markupRule struct {
	pattern *regexp.Regexp
	repl    string
}

// markupRules は変換規則を適用順に並べたテーブルです。
// 順序に意味があります: コードブロックはすべての規則より先、
// 行頭記号（番号付きリスト・箇条書き）は見出しと強調より先に適用します。
var markupRules = []markupRule{
	// コードブロック: {code:lang}...{code} → ```lang ... ```
	{regexp.MustCompile(`(?s)\{code(?::([a-zA-Z0-9+#-]*))?\}\n?(.*?)\n?\{code\}`), "```$1\n$2\n```"},
	// インラインコード: {{text}} → `text`
	{regexp.MustCompile(`\{\{([^{}\n]+)\}\}`), "`$1`"},
	// 番号付きリスト: 行頭の「# 」 → 「1. 」
	{regexp.MustCompile(`(?m)^#\s+`), "1. "},
	// 箇条書き: 行頭の「* 」 → 「- 」
	{regexp.MustCompile(`(?m)^\*\s+`), "- "},
	// 見出し: ====text==== → #### text （深い見出しから順に変換する）
	{regexp.MustCompile(`(?m)^====([^=\n]+)====[ \t]*$`), "#### $1"},
	{regexp.MustCompile(`(?m)^===([^=\n]+)===[ \t]*$`), "### $1"},
	{regexp.MustCompile(`(?m)^==([^=\n]+)==[ \t]*$`), "## $1"},
	{regexp.MustCompile(`(?m)^=([^=\n]+)=[ \t]*$`), "# $1"},
	// 太字: *text* → **text**
	{regexp.MustCompile(`\*([^*\n]+)\*`), "**$1**"},
	// 斜体: _text_ → *text*
	{regexp.MustCompile(`_([^_\n]+)_`), "*$1*"},
	// リンク: [text|url] → [text](url)
	{regexp.MustCompile(`\[([^|\[\]\n]+)\|([^\]\n]+)\]`), "[$1]($2)"},
}

// ConvertMarkup はYouTrack wikiマークアップをMarkdownへ変換します。
// 変換は既知の構文のみを対象とし、未対応のマークアップはそのまま残します。
// 入力が空の場合は空文字列を返し、エラーにはなりません。
func ConvertMarkup(text string) string {
	if text == "" {
		return ""
	}

	converted := text
	for _, rule := range markupRules {
		converted = rule.pattern.ReplaceAllString(converted, rule.repl)
	}
	return strings.TrimSpace(converted)
}
