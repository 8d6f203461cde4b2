// internal/store/query_test.go
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEntries(t *testing.T, st *Store, pairs [][2]string) {
	t.Helper()
	for _, p := range pairs {
		_, err := st.Add(p[0], p[1])
		require.NoError(t, err)
	}
}

func Test_Store_Recent(t *testing.T) {
	st := newTestStore(t)
	seedEntries(t, st, [][2]string{
		{"one", "eins"}, {"two", "zwei"}, {"three", "drei"},
	})

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "正常系: 末尾からn件を追加順で返す", n: 2, want: []string{"two", "three"}},
		{name: "正常系: nが全件数以上なら全件", n: 10, want: []string{"one", "two", "three"}},
		{name: "正常系: n=0は空", n: 0, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := st.Recent(tt.n)
			words := make([]string, 0, len(got))
			for _, e := range got {
				words = append(words, e.English)
			}
			assert.Equal(t, tt.want, words)
		})
	}
}

func Test_Store_RandomSample(t *testing.T) {
	st := newTestStore(t)
	seedEntries(t, st, [][2]string{
		{"one", "eins"}, {"two", "zwei"}, {"three", "drei"}, {"four", "vier"}, {"five", "fünf"},
	})

	got := st.RandomSample(3)
	require.Len(t, got, 3)

	// 重複なし
	seen := map[int]bool{}
	for _, e := range got {
		assert.False(t, seen[e.ID], "duplicate entry in sample")
		seen[e.ID] = true
	}

	// 全件数以下の要求なら全件
	assert.Len(t, st.RandomSample(10), 5)
	assert.Empty(t, st.RandomSample(0))
}

func Test_Store_Incorrect(t *testing.T) {
	st := newTestStore(t)
	seedEntries(t, st, [][2]string{
		{"one", "eins"}, {"two", "zwei"}, {"three", "drei"},
	})
	_, err := st.RecordResult(1, false)
	require.NoError(t, err)
	_, err = st.RecordResult(2, true)
	require.NoError(t, err)
	// ID 3 は未テストのまま

	got := st.Incorrect()
	// 未テスト・前回正解は含まれない
	require.Len(t, got, 1)
	assert.Equal(t, "one", got[0].English)
}

func Test_Store_NeverTested(t *testing.T) {
	st := newTestStore(t)
	seedEntries(t, st, [][2]string{
		{"one", "eins"}, {"two", "zwei"}, {"three", "drei"},
	})
	_, err := st.RecordResult(2, false)
	require.NoError(t, err)

	got := st.NeverTested()
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].English)
	assert.Equal(t, "three", got[1].English)
}

func Test_Store_SortedBy(t *testing.T) {
	st := newTestStore(t)
	seedEntries(t, st, [][2]string{
		{"Banana", "Banane"}, {"apple", "Apfel"}, {"Cherry", "Kirsche"},
	})

	t.Run("正常系: englishで大文字小文字を無視してソート", func(t *testing.T) {
		got := st.SortedBy("english")
		require.Len(t, got, 3)
		assert.Equal(t, "apple", got[0].English)
		assert.Equal(t, "Banana", got[1].English)
		assert.Equal(t, "Cherry", got[2].English)
	})

	t.Run("正常系: last_queriedは未設定を空文字として扱う", func(t *testing.T) {
		_, err := st.RecordResult(1, true)
		require.NoError(t, err)

		got := st.SortedBy("last_queried")
		require.Len(t, got, 3)
		// 未テストの2件が先頭に来て、テスト済みが末尾
		assert.Equal(t, "Banana", got[2].English)
	})

	t.Run("正常系: 不明なフィールドは順序を保つ", func(t *testing.T) {
		got := st.SortedBy("unknown")
		require.Len(t, got, 3)
		assert.Equal(t, "Banana", got[0].English)
	})
}

func Test_Store_ByDate(t *testing.T) {
	st := newTestStore(t)
	st.now = fixedClock("2026-08-29 09:00:00")
	seedEntries(t, st, [][2]string{{"one", "eins"}})
	st.now = fixedClock("2026-08-30 09:00:00")
	seedEntries(t, st, [][2]string{{"two", "zwei"}})

	got := st.ByDate("2026-08-30")
	require.Len(t, got, 1)
	assert.Equal(t, "two", got[0].English)

	assert.Empty(t, st.ByDate("2020-01-01"))
}

func Test_Store_Search(t *testing.T) {
	st := newTestStore(t)
	seedEntries(t, st, [][2]string{
		{"apple", "Apfel"}, {"pineapple", "Ananas"}, {"cherry", "Kirsche"},
	})

	tests := []struct {
		name string
		term string
		want int
	}{
		{name: "正常系: englishの部分一致", term: "apple", want: 2},
		{name: "正常系: germanの部分一致・大文字小文字無視", term: "kirsche", want: 1},
		{name: "正常系: ヒットなし", term: "xyz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, st.Search(tt.term), tt.want)
		})
	}
}

func Test_Store_Duplicates(t *testing.T) {
	st := newTestStore(t)
	seedEntries(t, st, [][2]string{
		{"cat", "Katze"}, {"dog", "Hund"}, {"Cat", "die Katze"}, {" cat ", "Katze"},
	})

	got := st.Duplicates()
	// 小文字化と前後空白除去で同一視される
	require.Len(t, got, 1)
	assert.Equal(t, "cat", got[0].English)
	assert.Equal(t, []int{1, 3, 4}, got[0].IDs)
}
