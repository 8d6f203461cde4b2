// internal/store/query.go
package store

import (
	"sort"
	"strings"

	"go_5_vocab_reading/internal/model"
)

// 読み取り専用のセレクタ群。すべてコピーを返し、ストアの状態は変更しません。

// Recent は追加順で末尾から n 件を返します。n 件未満なら全件です。
func (s *Store) Recent(n int) []*model.VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		return []*model.VocabEntry{}
	}
	if len(s.vocabulary) <= n {
		return cloneEntries(s.vocabulary)
	}
	return cloneEntries(s.vocabulary[len(s.vocabulary)-n:])
}

// RandomSample は重複なしの一様ランダムな部分集合を返します。サイズは min(n, 全件数) です。
func (s *Store) RandomSample(n int) []*model.VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		return []*model.VocabEntry{}
	}
	if len(s.vocabulary) <= n {
		return cloneEntries(s.vocabulary)
	}
	perm := s.rng.Perm(len(s.vocabulary))
	out := make([]*model.VocabEntry, 0, n)
	for _, i := range perm[:n] {
		out = append(out, s.vocabulary[i].Clone())
	}
	return out
}

// Incorrect は last_result が明示的に false のエントリだけを返します。
// 未テストのエントリや前回正解したエントリは含まれません。
func (s *Store) Incorrect() []*model.VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*model.VocabEntry{}
	for _, e := range s.vocabulary {
		if e.LastResult != nil && !*e.LastResult {
			out = append(out, e.Clone())
		}
	}
	return out
}

// NeverTested は last_queried が未設定のエントリを返します。
func (s *Store) NeverTested() []*model.VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*model.VocabEntry{}
	for _, e := range s.vocabulary {
		if e.LastQueried == nil {
			out = append(out, e.Clone())
		}
	}
	return out
}

// SortedBy は指定フィールドの小文字化した文字列値で安定ソートした全件を返します。
// フィールドが無い・値が無い場合は空文字として扱います。
func (s *Store) SortedBy(field string) []*model.VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := cloneEntries(s.vocabulary)
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i], field) < sortKey(out[j], field)
	})
	return out
}

func sortKey(e *model.VocabEntry, field string) string {
	var v string
	switch field {
	case "english":
		v = e.English
	case "german":
		v = e.German
	case "created_at":
		v = e.CreatedAt
	case "last_queried":
		if e.LastQueried != nil {
			v = *e.LastQueried
		}
	}
	return strings.ToLower(v)
}

// ByDate は created_at の日付部分（先頭10文字 YYYY-MM-DD）が一致するエントリを返します。
func (s *Store) ByDate(date string) []*model.VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*model.VocabEntry{}
	for _, e := range s.vocabulary {
		if len(e.CreatedAt) >= 10 && e.CreatedAt[:10] == date {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Search は english または german に検索語を部分一致（大文字小文字無視）で含むエントリを返します。
func (s *Store) Search(term string) []*model.VocabEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	term = strings.ToLower(term)
	out := []*model.VocabEntry{}
	for _, e := range s.vocabulary {
		if strings.Contains(strings.ToLower(e.English), term) ||
			strings.Contains(strings.ToLower(e.German), term) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Duplicates は同じ英単語（小文字化・前後空白除去）を持つエントリのグループを返します。
// 書き込み時の制約ではなく、読み取り専用の検出機能です。
func (s *Store) Duplicates() []*model.DuplicateGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	byWord := make(map[string][]int)
	order := []string{}
	for _, e := range s.vocabulary {
		key := strings.ToLower(strings.TrimSpace(e.English))
		if _, ok := byWord[key]; !ok {
			order = append(order, key)
		}
		byWord[key] = append(byWord[key], e.ID)
	}
	out := []*model.DuplicateGroup{}
	for _, key := range order {
		if ids := byWord[key]; len(ids) > 1 {
			out = append(out, &model.DuplicateGroup{English: key, IDs: ids})
		}
	}
	return out
}
