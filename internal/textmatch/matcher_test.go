// internal/textmatch/matcher_test.go
package textmatch

import (
	"strings"
	"testing"

	"go_5_vocab_reading/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(words ...string) []*model.VocabEntry {
	out := make([]*model.VocabEntry, 0, len(words))
	for i, w := range words {
		out = append(out, &model.VocabEntry{ID: i + 1, English: w, German: "x"})
	}
	return out
}

func Test_FindMatches(t *testing.T) {
	tests := []struct {
		name      string
		words     []string
		text      string
		wantWords []string
		wantSpans map[string][]model.MatchSpan
	}{
		{
			name:      "正常系: 単語境界を守る (catはcategoryにマッチしない)",
			words:     []string{"cat"},
			text:      "The cat sat. category.",
			wantWords: []string{"cat"},
			wantSpans: map[string][]model.MatchSpan{
				"cat": {{Start: 4, End: 7}},
			},
		},
		{
			name:      "正常系: 複数語・複数出現、結果は語彙の順序",
			words:     []string{"hello", "world"},
			text:      "Hello world! This is a hello world test.",
			wantWords: []string{"hello", "world"},
			wantSpans: map[string][]model.MatchSpan{
				"hello": {{Start: 0, End: 5}, {Start: 23, End: 28}},
				"world": {{Start: 6, End: 11}, {Start: 29, End: 34}},
			},
		},
		{
			name:      "正常系: 大文字小文字を無視し、位置は元の文字列基準",
			words:     []string{"apple"},
			text:      "An APPLE a day.",
			wantWords: []string{"apple"},
			wantSpans: map[string][]model.MatchSpan{
				"apple": {{Start: 3, End: 8}},
			},
		},
		{
			name:      "正常系: 出現しない語は結果に含まれない",
			words:     []string{"cat", "dog"},
			text:      "The dog barks.",
			wantWords: []string{"dog"},
		},
		{
			name:      "正常系: 数字も単語文字扱い (cat1の中のcatは不一致)",
			words:     []string{"cat"},
			text:      "cat1 cat",
			wantWords: []string{"cat"},
			wantSpans: map[string][]model.MatchSpan{
				"cat": {{Start: 5, End: 8}},
			},
		},
		{
			name:      "エッジ: 空テキスト",
			words:     []string{"cat"},
			text:      "",
			wantWords: []string{},
		},
		{
			name:      "エッジ: 空のenglishはどこにもマッチしない",
			words:     []string{""},
			text:      "some text",
			wantWords: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindMatches(entries(tt.words...), tt.text)

			gotWords := make([]string, 0, len(got))
			for _, m := range got {
				gotWords = append(gotWords, m.Vocab.English)
			}
			assert.Equal(t, tt.wantWords, gotWords)

			for word, spans := range tt.wantSpans {
				var found *model.VocabMatch
				for _, m := range got {
					if m.Vocab.English == word {
						found = m
					}
				}
				require.NotNil(t, found, "no match group for %q", word)
				assert.Equal(t, spans, found.Positions)

				// スパンで元テキストを切り出すとマッチ語そのもの（ケース違いを除き）になる
				for _, sp := range spans {
					assert.True(t, strings.EqualFold(tt.text[sp.Start:sp.End], word),
						"span %v yields %q, want %q", sp, tt.text[sp.Start:sp.End], word)
				}
			}
		})
	}
}

func Test_FindMatches_AdjacentOccurrences(t *testing.T) {
	// 連続した出現もそれぞれ独立に検出される
	got := FindMatches(entries("ha"), "ha ha ha")
	require.Len(t, got, 1)
	assert.Equal(t, []model.MatchSpan{
		{Start: 0, End: 2}, {Start: 3, End: 5}, {Start: 6, End: 8},
	}, got[0].Positions)
}

func Test_FindMatches_OffsetsUnaffectedByFoldWidth(t *testing.T) {
	// 小文字化でバイト長が変わる文字 (ẞは3バイト、ßは2バイト) が前にあっても
	// 位置は元の文字列基準のままで、切り出し結果がずれない
	got := FindMatches(entries("cat"), "ẞ cat.")
	require.Len(t, got, 1)
	require.Equal(t, []model.MatchSpan{{Start: 4, End: 7}}, got[0].Positions)
	assert.Equal(t, "cat", "ẞ cat."[4:7])
}

func Test_FindMatches_FoldWidthInsideMatch(t *testing.T) {
	// マッチ自体の中にバイト長の変わるケース対があっても、終端は元テキスト基準
	text := "die STRAẞE dort"
	got := FindMatches(entries("straße"), text)
	require.Len(t, got, 1)
	require.Len(t, got[0].Positions, 1)
	sp := got[0].Positions[0]
	assert.Equal(t, "STRAẞE", text[sp.Start:sp.End])
}

func Test_FindMatches_MultiWordPhrase(t *testing.T) {
	// 空白を含むフレーズも境界チェック付きでそのまま照合できる
	got := FindMatches(entries("give up"), "Never give up. giveup is one word.")
	require.Len(t, got, 1)
	assert.Equal(t, []model.MatchSpan{{Start: 6, End: 13}}, got[0].Positions)
}
