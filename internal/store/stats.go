// internal/store/stats.go
package store

import "go_5_vocab_reading/internal/model"

// VocabStats は語彙コレクションの集計を現在の内容から計算して返します。
func (s *Store) VocabStats() model.VocabStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := model.VocabStats{TotalEntries: len(s.vocabulary)}
	for _, e := range s.vocabulary {
		if e.LastQueried != nil {
			stats.QueriedEntries++
		}
		stats.TotalCorrect += e.CorrectCount
		stats.TotalWrong += e.WrongCount
	}
	stats.NeverQueried = stats.TotalEntries - stats.QueriedEntries
	if total := stats.TotalCorrect + stats.TotalWrong; total > 0 {
		stats.SuccessRate = float64(stats.TotalCorrect) / float64(total) * 100
	}
	return stats
}

// ReadingStats はリーディングテキストの集計を返します。テキストが無ければ平均は0です。
func (s *Store) ReadingStats() model.ReadingStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := model.ReadingStats{TotalTexts: len(s.texts)}
	for _, t := range s.texts {
		stats.TotalWords += t.WordCount
		stats.TotalVocabMatches += t.VocabularyMatches
	}
	if stats.TotalTexts > 0 {
		stats.AverageWords = float64(stats.TotalWords) / float64(stats.TotalTexts)
		stats.AverageVocabMatches = float64(stats.TotalVocabMatches) / float64(stats.TotalTexts)
	}
	return stats
}
