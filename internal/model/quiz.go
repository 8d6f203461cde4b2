// internal/model/quiz.go
package model

import "github.com/google/uuid"

// QuizMode はクイズの出題モードです
type QuizMode string

const (
	ModeLast10      QuizMode = "last10"       // 直近10件
	ModeLast30      QuizMode = "last30"       // 直近30件
	ModeRandom30    QuizMode = "random30"     // 未習得語からランダム30件
	ModeIncorrect   QuizMode = "incorrect"    // 前回不正解のみ
	ModeToday       QuizMode = "today"        // 今日追加した単語
	ModeNeverTested QuizMode = "never_tested" // 一度も出題されていない単語
)

// クイズ開始リクエストDTO
type StartQuizRequest struct {
	Mode string `json:"mode" validate:"required,oneof=last10 last30 random30 incorrect today never_tested"`
}

// QuizQuestion は出題中の1問です。ドイツ語を見せて英単語を答えさせます。
type QuizQuestion struct {
	Number int    `json:"number"` // 1始まり
	Total  int    `json:"total"`
	German string `json:"german"`
}

// StartQuizResponse はクイズ開始の結果です。
// Mastered が true の場合はセッションは作られません（random30で全語習得済み）。
type StartQuizResponse struct {
	SessionID uuid.UUID     `json:"session_id,omitempty"`
	Mode      QuizMode      `json:"mode"`
	Total     int           `json:"total"`
	Mastered  bool          `json:"mastered,omitempty"`
	Message   string        `json:"message,omitempty"`
	Question  *QuizQuestion `json:"question,omitempty"`
}

// 解答リクエストDTO（空解答は不正解として扱うので required は付けない）
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// AnswerResponse は1問分の採点結果です。最終問題なら Summary が入ります。
type AnswerResponse struct {
	Correct       bool          `json:"correct"`
	CorrectAnswer string        `json:"correct_answer"`
	YourAnswer    string        `json:"your_answer"`
	Finished      bool          `json:"finished"`
	Question      *QuizQuestion `json:"question,omitempty"`
	Summary       *QuizSummary  `json:"summary,omitempty"`
}

// QuizSummary はセッション終了時に生成されるイベント値です。
// 通知コラボレータ（メール送信）はこの値だけを受け取ります。
type QuizSummary struct {
	QuizName    string     `json:"quiz_name"`
	Tested      int        `json:"tested"`
	Correct     int        `json:"correct"`
	Wrong       int        `json:"wrong"`
	SuccessRate float64    `json:"success_rate"`
	Overall     VocabStats `json:"overall_stats"`
}
