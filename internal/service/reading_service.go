// internal/service/reading_service.go
package service

import (
	"context"
	"strings"

	"go_5_vocab_reading/internal/middleware"
	"go_5_vocab_reading/internal/model"
	"go_5_vocab_reading/internal/store"
	"go_5_vocab_reading/internal/textmatch"
)

type ReadingService interface {
	CreateText(ctx context.Context, req *model.PostTextRequest) (*model.ReadingText, error)
	ListTexts(ctx context.Context) ([]*model.ReadingText, error)
	GetText(ctx context.Context, id int) (*model.ReadingText, error)
	DeleteText(ctx context.Context, id int) error
	// MatchText は保存済みテキストを「現在の」語彙と照合します。
	// 保存時のスナップショット (vocabulary_matches) とは一致しないことがあります。
	MatchText(ctx context.Context, id int) ([]*model.VocabMatch, error)
	// MatchRaw は保存せずに任意のテキストを現在の語彙と照合します。
	MatchRaw(ctx context.Context, text string) ([]*model.VocabMatch, error)
}

type readingService struct {
	store *store.Store
}

func NewReadingService(st *store.Store) ReadingService {
	return &readingService{store: st}
}

func (s *readingService) CreateText(ctx context.Context, req *model.PostTextRequest) (*model.ReadingText, error) {
	// 空白だけの本文は登録させない（語数0のテキストになるだけなので）
	if strings.TrimSpace(req.Content) == "" {
		return nil, model.NewAppError("EMPTY_CONTENT", "本文が空です。", "content", model.ErrInvalidInput)
	}
	text, err := s.store.AddText(req.Title, req.Content)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to persist new text", "error", err)
		return nil, model.NewAppError("STORAGE_ERROR", "データの保存に失敗しました。", "", err)
	}
	return text, nil
}

func (s *readingService) ListTexts(ctx context.Context) ([]*model.ReadingText, error) {
	return s.store.GetAllTexts(), nil
}

func (s *readingService) GetText(ctx context.Context, id int) (*model.ReadingText, error) {
	return s.store.GetTextByID(id)
}

func (s *readingService) DeleteText(ctx context.Context, id int) error {
	return s.store.DeleteText(id)
}

func (s *readingService) MatchText(ctx context.Context, id int) ([]*model.VocabMatch, error) {
	text, err := s.store.GetTextByID(id)
	if err != nil {
		return nil, err
	}
	return textmatch.FindMatches(s.store.GetAll(), text.Content), nil
}

func (s *readingService) MatchRaw(ctx context.Context, text string) ([]*model.VocabMatch, error) {
	return textmatch.FindMatches(s.store.GetAll(), text), nil
}
