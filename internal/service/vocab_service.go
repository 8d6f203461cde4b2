// internal/service/vocab_service.go
package service

import (
	"context"
	"fmt"

	"go_5_vocab_reading/internal/middleware"
	"go_5_vocab_reading/internal/model"
	"go_5_vocab_reading/internal/store"
)

// ListQuery は単語一覧の絞り込み条件です。
// 複数指定された場合の優先順位は Recent > Random > Filter > Date > Search > SortBy です。
type ListQuery struct {
	Recent int
	Random int
	Filter string // "incorrect" または "never_tested"
	Date   string // YYYY-MM-DD
	Search string
	SortBy string // "english" / "german" / "created_at" / "last_queried"
}

type VocabService interface {
	CreateEntry(ctx context.Context, req *model.PostEntryRequest) (*model.VocabEntry, error)
	ListEntries(ctx context.Context, q ListQuery) ([]*model.VocabEntry, error)
	GetEntry(ctx context.Context, id int) (*model.VocabEntry, error)
	UpdateEntry(ctx context.Context, id int, req *model.PatchEntryRequest) (*model.VocabEntry, error)
	DeleteEntry(ctx context.Context, id int) error
	RecordResult(ctx context.Context, id int, correct bool) (*model.VocabEntry, error)
	FindDuplicates(ctx context.Context) ([]*model.DuplicateGroup, error)
}

type vocabService struct {
	store *store.Store
}

func NewVocabService(st *store.Store) VocabService {
	return &vocabService{store: st}
}

func (s *vocabService) CreateEntry(ctx context.Context, req *model.PostEntryRequest) (*model.VocabEntry, error) {
	entry, err := s.store.Add(req.English, req.German)
	if err != nil {
		// 保存失敗でもメモリ上の追加は成立している。エラーは呼び出し側に伝える。
		middleware.GetLogger(ctx).Error("Failed to persist new entry", "error", err)
		return nil, model.NewAppError("STORAGE_ERROR", "データの保存に失敗しました。", "", err)
	}
	return entry, nil
}

func (s *vocabService) ListEntries(ctx context.Context, q ListQuery) ([]*model.VocabEntry, error) {
	switch {
	case q.Recent > 0:
		return s.store.Recent(q.Recent), nil
	case q.Random > 0:
		return s.store.RandomSample(q.Random), nil
	case q.Filter != "":
		switch q.Filter {
		case "incorrect":
			return s.store.Incorrect(), nil
		case "never_tested":
			return s.store.NeverTested(), nil
		default:
			return nil, model.NewAppError("INVALID_FILTER",
				fmt.Sprintf("不明なフィルタです: %s", q.Filter), "filter", model.ErrInvalidInput)
		}
	case q.Date != "":
		return s.store.ByDate(q.Date), nil
	case q.Search != "":
		return s.store.Search(q.Search), nil
	case q.SortBy != "":
		switch q.SortBy {
		case "english", "german", "created_at", "last_queried":
			return s.store.SortedBy(q.SortBy), nil
		default:
			return nil, model.NewAppError("INVALID_SORT_FIELD",
				fmt.Sprintf("不明なソートフィールドです: %s", q.SortBy), "sort", model.ErrInvalidInput)
		}
	default:
		return s.store.GetAll(), nil
	}
}

func (s *vocabService) GetEntry(ctx context.Context, id int) (*model.VocabEntry, error) {
	return s.store.GetByID(id)
}

func (s *vocabService) UpdateEntry(ctx context.Context, id int, req *model.PatchEntryRequest) (*model.VocabEntry, error) {
	entry, err := s.store.Update(id, req.English, req.German)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *vocabService) DeleteEntry(ctx context.Context, id int) error {
	return s.store.Delete(id)
}

func (s *vocabService) RecordResult(ctx context.Context, id int, correct bool) (*model.VocabEntry, error) {
	return s.store.RecordResult(id, correct)
}

func (s *vocabService) FindDuplicates(ctx context.Context) ([]*model.DuplicateGroup, error) {
	return s.store.Duplicates(), nil
}
