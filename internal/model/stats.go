// internal/model/stats.go
package model

// VocabStats は語彙コレクション全体の集計です。毎回現在の内容から計算されます。
type VocabStats struct {
	TotalEntries   int     `json:"total_entries"`
	QueriedEntries int     `json:"queried_entries"`
	NeverQueried   int     `json:"never_queried"`
	TotalCorrect   int     `json:"total_correct"`
	TotalWrong     int     `json:"total_wrong"`
	SuccessRate    float64 `json:"success_rate"` // 分母0のときは0
}

// ReadingStats はリーディングテキストの集計です。
type ReadingStats struct {
	TotalTexts          int     `json:"total_texts"`
	TotalWords          int     `json:"total_words"`
	AverageWords        float64 `json:"average_words"`
	TotalVocabMatches   int     `json:"total_vocab_matches"`
	AverageVocabMatches float64 `json:"average_vocab_matches"`
}
