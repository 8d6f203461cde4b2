package service

import (
	"context"
	"fmt"
	"strings"

	"go_5_vocab_reading/internal/middleware"
	"go_5_vocab_reading/internal/model"
)

// QuizNotifier はクイズ終了時の結果メールを担当します。
// 宛先が未設定なら何もしません。
type QuizNotifier struct {
	mailer    Mailer
	recipient string
}

func NewQuizNotifier(mailer Mailer, recipient string) *QuizNotifier {
	return &QuizNotifier{mailer: mailer, recipient: recipient}
}

// NotifyQuizFinished はクイズのサマリーをメールで送信します。
// 送信失敗はログに残すだけで、クイズ処理自体は失敗させません。
func (n *QuizNotifier) NotifyQuizFinished(ctx context.Context, summary *model.QuizSummary) {
	if n.recipient == "" {
		return
	}
	logger := middleware.GetLogger(ctx)

	subject := fmt.Sprintf("Vocabulary Quiz Results: %s", summary.QuizName)
	body := buildQuizMailBody(summary)

	if err := n.mailer.Send(ctx, n.recipient, subject, body); err != nil {
		logger.Error("Failed to send quiz result mail", "error", err, "to", n.recipient)
	}
}

func buildQuizMailBody(summary *model.QuizSummary) string {
	var b strings.Builder

	b.WriteString("Vocabulary Quiz Results\n")
	b.WriteString("=======================\n\n")
	fmt.Fprintf(&b, "Quiz: %s\n", summary.QuizName)
	fmt.Fprintf(&b, "Words tested: %d\n", summary.Tested)
	fmt.Fprintf(&b, "Correct: %d\n", summary.Correct)
	fmt.Fprintf(&b, "Wrong: %d\n", summary.Wrong)
	fmt.Fprintf(&b, "Success rate: %.1f%%\n\n", summary.SuccessRate)

	b.WriteString("Overall Statistics\n")
	b.WriteString("------------------\n")
	fmt.Fprintf(&b, "Total entries: %d\n", summary.Overall.TotalEntries)
	fmt.Fprintf(&b, "Queried entries: %d\n", summary.Overall.QueriedEntries)
	fmt.Fprintf(&b, "Never queried: %d\n", summary.Overall.NeverQueried)
	fmt.Fprintf(&b, "Total correct answers: %d\n", summary.Overall.TotalCorrect)
	fmt.Fprintf(&b, "Total wrong answers: %d\n", summary.Overall.TotalWrong)
	fmt.Fprintf(&b, "Overall success rate: %.1f%%\n", summary.Overall.SuccessRate)

	return b.String()
}
