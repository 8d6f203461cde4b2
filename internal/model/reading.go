// internal/model/reading.go
package model

// ReadingText はアップロードされたリーディング用テキストを表します。
// word_count と vocabulary_matches は作成時に一度だけ計算されるスナップショットで、
// 後から語彙が変わっても再計算されません。
type ReadingText struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	Content           string `json:"content"`
	UploadedAt        string `json:"uploaded_at"`
	WordCount         int    `json:"word_count"`
	VocabularyMatches int    `json:"vocabulary_matches"`
}

func (t *ReadingText) Clone() *ReadingText {
	c := *t
	return &c
}

// テキスト登録リクエストDTO
// ファイルアップロード側のコラボレータが (title, content) を渡してくる
type PostTextRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// MatchSpan はテキスト内の1出現位置（バイトオフセット）です。
// text[Start:End] がそのままマッチした部分文字列になります。
type MatchSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// VocabMatch は1つの語彙エントリとテキスト内の全出現位置です。
type VocabMatch struct {
	Vocab     *VocabEntry `json:"vocab"`
	Positions []MatchSpan `json:"positions"`
}

// テキスト照合リクエストDTO（保存せずに照合だけ行うエンドポイント用）
type MatchTextRequest struct {
	Text string `json:"text" validate:"required"`
}
