// internal/model/vocab.go
package model

// VocabEntry は英単語とドイツ語訳、およびクイズのトラッキング情報を表します。
// JSONの形はそのまま永続化フォーマット（§6参照: vocabulary配列の要素）になります。
type VocabEntry struct {
	ID           int     `json:"id"`
	English      string  `json:"english"`
	German       string  `json:"german"`
	CreatedAt    string  `json:"created_at"`             // "2006-01-02 15:04:05" 形式、作成時に設定され不変
	LastQueried  *string `json:"last_queried"`           // クイズ結果を記録した時のみ設定される (未テストなら null)
	LastResult   *bool   `json:"last_result"`            // 三値: 未設定 / 正解 / 不正解
	CorrectCount int     `json:"correct_count"`
	WrongCount   int     `json:"wrong_count"`
}

// Clone はエントリの独立したコピーを返します。
// ストアの内部状態を外部から変更できないようにするため、全てのアクセサはコピーを返します。
func (e *VocabEntry) Clone() *VocabEntry {
	c := *e
	if e.LastQueried != nil {
		v := *e.LastQueried
		c.LastQueried = &v
	}
	if e.LastResult != nil {
		v := *e.LastResult
		c.LastResult = &v
	}
	return &c
}

// 単語作成リクエストDTO
type PostEntryRequest struct {
	English string `json:"english" validate:"required"`
	German  string `json:"german" validate:"required"`
}

// 単語更新（部分）リクエストDTO
type PatchEntryRequest struct {
	English *string `json:"english,omitempty" validate:"omitempty,min=1"`
	German  *string `json:"german,omitempty" validate:"omitempty,min=1"`
}

// クイズ結果記録リクエストDTO
// IsCorrect はポインタ型にして false と未指定を区別する
type PostResultRequest struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}

// DuplicateGroup は同じ英単語を持つエントリのグループです（重複検出用）
type DuplicateGroup struct {
	English string `json:"english"`
	IDs     []int  `json:"ids"`
}
