// internal/service/notifier_test.go
package service

import (
	"context"
	"testing"

	"go_5_vocab_reading/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func Test_QuizNotifier_NotifyQuizFinished(t *testing.T) {
	ctx := context.Background()
	summary := &model.QuizSummary{
		QuizName:    "incorrect",
		Tested:      3,
		Correct:     2,
		Wrong:       1,
		SuccessRate: 66.7,
		Overall:     model.VocabStats{TotalEntries: 10, TotalCorrect: 20, TotalWrong: 5},
	}

	t.Run("正常系: 宛先が空なら何も送らない", func(t *testing.T) {
		mailer := new(mockMailer)
		n := NewQuizNotifier(mailer, "")

		n.NotifyQuizFinished(ctx, summary)

		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("正常系: 件名と本文にサマリーが入る", func(t *testing.T) {
		mailer := new(mockMailer)
		mailer.On("Send", mock.Anything, "me@example.com", mock.Anything, mock.Anything).
			Return(nil).Once()
		n := NewQuizNotifier(mailer, "me@example.com")

		n.NotifyQuizFinished(ctx, summary)

		mailer.AssertExpectations(t)
		call := mailer.Calls[0]
		subject := call.Arguments.String(2)
		body := call.Arguments.String(3)
		assert.Contains(t, subject, "incorrect")
		assert.Contains(t, body, "Words tested: 3")
		assert.Contains(t, body, "Success rate: 66.7%")
		assert.Contains(t, body, "Total entries: 10")
	})

	t.Run("正常系: 送信失敗でもpanicやエラーにならない", func(t *testing.T) {
		mailer := new(mockMailer)
		mailer.On("Send", mock.Anything, "me@example.com", mock.Anything, mock.Anything).
			Return(assert.AnError).Once()
		n := NewQuizNotifier(mailer, "me@example.com")

		n.NotifyQuizFinished(ctx, summary)

		mailer.AssertExpectations(t)
	})
}
