// internal/store/stats_test.go
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Store_VocabStats(t *testing.T) {
	t.Run("正常系: 空のストアは全て0", func(t *testing.T) {
		st := newTestStore(t)
		stats := st.VocabStats()
		assert.Equal(t, 0, stats.TotalEntries)
		// 分母0でも成功率は0 (NaNにしない)
		assert.Equal(t, 0.0, stats.SuccessRate)
	})

	t.Run("正常系: 集計値が正しい", func(t *testing.T) {
		st := newTestStore(t)
		seedEntries(t, st, [][2]string{
			{"one", "eins"}, {"two", "zwei"}, {"three", "drei"},
		})
		_, err := st.RecordResult(1, true)
		require.NoError(t, err)
		_, err = st.RecordResult(1, true)
		require.NoError(t, err)
		_, err = st.RecordResult(2, false)
		require.NoError(t, err)

		stats := st.VocabStats()
		assert.Equal(t, 3, stats.TotalEntries)
		assert.Equal(t, 2, stats.QueriedEntries)
		assert.Equal(t, 1, stats.NeverQueried)
		assert.Equal(t, 2, stats.TotalCorrect)
		assert.Equal(t, 1, stats.TotalWrong)
		assert.InDelta(t, 66.666, stats.SuccessRate, 0.01)
	})
}

func Test_Store_ReadingStats(t *testing.T) {
	t.Run("正常系: テキストが無ければ平均は0", func(t *testing.T) {
		st := newTestStore(t)
		stats := st.ReadingStats()
		assert.Equal(t, 0, stats.TotalTexts)
		assert.Equal(t, 0.0, stats.AverageWords)
		assert.Equal(t, 0.0, stats.AverageVocabMatches)
	})

	t.Run("正常系: 合計と平均", func(t *testing.T) {
		st := newTestStore(t)
		seedEntries(t, st, [][2]string{{"cat", "Katze"}})

		_, err := st.AddText("A", "The cat sat here today.") // 5語・1マッチ
		require.NoError(t, err)
		_, err = st.AddText("B", "Nothing matches at all here in this one.") // 8語・0マッチ
		require.NoError(t, err)

		stats := st.ReadingStats()
		assert.Equal(t, 2, stats.TotalTexts)
		assert.Equal(t, 13, stats.TotalWords)
		assert.Equal(t, 1, stats.TotalVocabMatches)
		assert.InDelta(t, 6.5, stats.AverageWords, 0.001)
		assert.InDelta(t, 0.5, stats.AverageVocabMatches, 0.001)
	})
}
