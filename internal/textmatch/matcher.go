// internal/textmatch/matcher.go

// Package textmatch は語彙セットとテキストの照合を行います。
// 副作用を持たない純粋関数だけで構成され、呼び出し側が渡した語彙スナップショットに
// 対してのみ動作します（ストアの現在内容には依存しません）。
package textmatch

import (
	"unicode"
	"unicode/utf8"

	"go_5_vocab_reading/internal/model"
)

// FindMatches は各語彙エントリの english をテキスト中から単語単位・大文字小文字無視で
// 全て探し、出現位置つきで返します。位置は渡された文字列そのもののバイトオフセットなので、
// text[start:end] でそのままハイライト対象を切り出せます。
// 出現が0件のエントリは結果に含まれず、結果の順序は語彙コレクションの順序です。
func FindMatches(entries []*model.VocabEntry, text string) []*model.VocabMatch {
	if text == "" {
		return []*model.VocabMatch{}
	}

	matches := []*model.VocabMatch{}
	for _, e := range entries {
		// 空パターンは「どこにでもマッチ」ではなく「どこにもマッチしない」
		if e.English == "" {
			continue
		}
		positions := findWord(text, e.English)
		if len(positions) > 0 {
			matches = append(matches, &model.VocabMatch{
				Vocab:     e.Clone(),
				Positions: positions,
			})
		}
	}
	return matches
}

// findWord は単語境界つきの大文字小文字無視リテラル検索です。
// 小文字化したコピーではなく元の文字列をルーン単位で走査します。ケース変換で
// バイト長が変わる文字 (ẞ→ß など) があってもオフセットがずれないためです。
// 正規表現の \b 相当は、マッチ前後の1文字が英数字でないことの確認で置き換えています
// ("cat" が "category" の一部にマッチしない)。
func findWord(text, pattern string) []model.MatchSpan {
	var spans []model.MatchSpan
	for start := 0; start < len(text); {
		end, ok := foldMatch(text, pattern, start)
		if ok && boundaryBefore(text, start) && boundaryAfter(text, end) {
			spans = append(spans, model.MatchSpan{Start: start, End: end})
			start = end
			continue
		}
		_, n := utf8.DecodeRuneInString(text[start:])
		start += n
	}
	return spans
}

// foldMatch は text の start 位置から pattern が大文字小文字無視で一致するかを判定し、
// 一致した場合はその終端バイトオフセットを返します。終端は text 基準なので
// pattern とバイト長が異なることがあります。
func foldMatch(text, pattern string, start int) (int, bool) {
	i := start
	for j := 0; j < len(pattern); {
		if i >= len(text) {
			return 0, false
		}
		tr, tn := utf8.DecodeRuneInString(text[i:])
		pr, pn := utf8.DecodeRuneInString(pattern[j:])
		if tr != pr && unicode.ToLower(tr) != unicode.ToLower(pr) {
			return 0, false
		}
		i += tn
		j += pn
	}
	return i, true
}

func boundaryBefore(s string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:start])
	return !isWordRune(r)
}

func boundaryAfter(s string, end int) bool {
	if end == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
