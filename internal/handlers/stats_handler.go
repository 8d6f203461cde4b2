// internal/handlers/stats_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_vocab_reading/internal/store"
	"go_5_vocab_reading/internal/webutil"
)

// StatsHandler は統計エンドポイントのハンドラです。
// 統計は都度計算されるだけなのでサービス層を挟まず、ストアを直接参照します。
type StatsHandler struct {
	store  *store.Store
	logger *slog.Logger
}

func NewStatsHandler(st *store.Store, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{
		store:  st,
		logger: logger,
	}
}

// GetVocabStats は語彙コレクションの集計を返すハンドラ
func (h *StatsHandler) GetVocabStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetVocabStats"))
	webutil.RespondWithJSON(w, http.StatusOK, h.store.VocabStats(), logger)
}

// GetReadingStats はリーディングテキストの集計を返すハンドラ
func (h *StatsHandler) GetReadingStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetReadingStats"))
	webutil.RespondWithJSON(w, http.StatusOK, h.store.ReadingStats(), logger)
}
