// internal/service/quiz_service.go
package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go_5_vocab_reading/internal/config"
	"go_5_vocab_reading/internal/middleware"
	"go_5_vocab_reading/internal/model"
	"go_5_vocab_reading/internal/store"

	"github.com/google/uuid"
)

type QuizService interface {
	Start(ctx context.Context, mode model.QuizMode) (*model.StartQuizResponse, error)
	Answer(ctx context.Context, sessionID uuid.UUID, answer string) (*model.AnswerResponse, error)
}

// quizSession は進行中の1クイズです。エントリは開始時のスナップショットで、
// 途中で単語が編集・削除されても出題内容は変わりません。
type quizSession struct {
	mode    model.QuizMode
	entries []*model.VocabEntry
	index   int
	correct int
	wrong   int
}

type quizService struct {
	store    *store.Store
	notifier *QuizNotifier
	cfg      *config.Config
	rng      *rand.Rand
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*quizSession
}

func NewQuizService(st *store.Store, notifier *QuizNotifier, cfg *config.Config) QuizService {
	return &quizService{
		store:    st,
		notifier: notifier,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
		sessions: make(map[uuid.UUID]*quizSession),
	}
}

func (s *quizService) Start(ctx context.Context, mode model.QuizMode) (*model.StartQuizResponse, error) {
	entries, mastered, err := s.selectEntries(mode)
	if err != nil {
		return nil, err
	}
	if mastered {
		// random30で全語が習得済み。セッションは作らない。
		return &model.StartQuizResponse{
			Mode:     mode,
			Mastered: true,
			Message:  "すべての単語を習得済みです。新しい単語を追加してください。",
		}, nil
	}
	if len(entries) == 0 {
		return nil, model.NewAppError("NO_QUIZ_ENTRIES",
			fmt.Sprintf("このモードで出題できる単語がありません: %s", mode), "mode", model.ErrNotFound)
	}

	// 出題順は毎回シャッフルする
	s.mu.Lock()
	s.rng.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
	session := &quizSession{mode: mode, entries: entries}
	id := uuid.New()
	s.sessions[id] = session
	s.mu.Unlock()

	middleware.GetLogger(ctx).Info("Quiz session started",
		"session_id", id, "mode", mode, "total", len(entries))

	return &model.StartQuizResponse{
		SessionID: id,
		Mode:      mode,
		Total:     len(entries),
		Question: &model.QuizQuestion{
			Number: 1,
			Total:  len(entries),
			German: entries[0].German,
		},
	}, nil
}

// selectEntries はモードに応じた出題候補を返します。
// 2番目の返り値は「random30で全語習得済み」を表します。
func (s *quizService) selectEntries(mode model.QuizMode) ([]*model.VocabEntry, bool, error) {
	switch mode {
	case model.ModeLast10:
		return s.store.Recent(s.cfg.Quiz.RecentSmall), false, nil
	case model.ModeLast30:
		return s.store.Recent(s.cfg.Quiz.RecentLarge), false, nil
	case model.ModeRandom30:
		all := s.store.GetAll()
		// 習得済み（規定回数以上正解）の単語は出題対象から外す
		candidates := make([]*model.VocabEntry, 0, len(all))
		for _, e := range all {
			if e.CorrectCount < s.cfg.Quiz.MasteryThreshold {
				candidates = append(candidates, e)
			}
		}
		// 空のストアも「未習得語が無い」ので習得済み扱いになる
		if len(candidates) == 0 {
			return nil, true, nil
		}
		if len(candidates) > s.cfg.Quiz.RandomLimit {
			s.mu.Lock()
			perm := s.rng.Perm(len(candidates))
			s.mu.Unlock()
			sampled := make([]*model.VocabEntry, 0, s.cfg.Quiz.RandomLimit)
			for _, i := range perm[:s.cfg.Quiz.RandomLimit] {
				sampled = append(sampled, candidates[i])
			}
			candidates = sampled
		}
		return candidates, false, nil
	case model.ModeIncorrect:
		return s.store.Incorrect(), false, nil
	case model.ModeToday:
		return s.store.ByDate(s.now().Format("2006-01-02")), false, nil
	case model.ModeNeverTested:
		return s.store.NeverTested(), false, nil
	default:
		return nil, false, model.NewAppError("INVALID_QUIZ_MODE",
			fmt.Sprintf("不明なクイズモードです: %s", mode), "mode", model.ErrInvalidInput)
	}
}

func (s *quizService) Answer(ctx context.Context, sessionID uuid.UUID, answer string) (*model.AnswerResponse, error) {
	logger := middleware.GetLogger(ctx)

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, model.NewAppError("SESSION_NOT_FOUND",
			"クイズセッションが見つかりません。", "session_id", model.ErrNotFound)
	}

	entry := session.entries[session.index]
	// 解答・正解とも前後の空白を無視し、大文字小文字を区別せずに採点する。空解答は不正解。
	given := strings.TrimSpace(answer)
	correct := given != "" && strings.EqualFold(given, strings.TrimSpace(entry.English))
	if correct {
		session.correct++
	} else {
		session.wrong++
	}
	session.index++
	finished := session.index >= len(session.entries)
	if finished {
		delete(s.sessions, sessionID)
	}
	var next *model.QuizQuestion
	if !finished {
		next = &model.QuizQuestion{
			Number: session.index + 1,
			Total:  len(session.entries),
			German: session.entries[session.index].German,
		}
	}
	s.mu.Unlock()

	// 採点結果の記録。保存に失敗してもクイズは続行する。
	if _, err := s.store.RecordResult(entry.ID, correct); err != nil {
		logger.Error("Failed to record quiz result", "error", err, "entry_id", entry.ID)
	}

	resp := &model.AnswerResponse{
		Correct:       correct,
		CorrectAnswer: entry.English,
		YourAnswer:    answer,
		Finished:      finished,
		Question:      next,
	}

	if finished {
		summary := s.buildSummary(session)
		resp.Summary = summary
		logger.Info("Quiz session finished",
			"session_id", sessionID, "mode", session.mode,
			"tested", summary.Tested, "correct", summary.Correct, "wrong", summary.Wrong)
		s.notifier.NotifyQuizFinished(ctx, summary)
	}
	return resp, nil
}

func (s *quizService) buildSummary(session *quizSession) *model.QuizSummary {
	summary := &model.QuizSummary{
		QuizName: string(session.mode),
		Tested:   len(session.entries),
		Correct:  session.correct,
		Wrong:    session.wrong,
		Overall:  s.store.VocabStats(),
	}
	if summary.Tested > 0 {
		summary.SuccessRate = float64(summary.Correct) / float64(summary.Tested) * 100
	}
	return summary
}
