// internal/handlers/vocab_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go_5_vocab_reading/internal/model"
	"go_5_vocab_reading/internal/service"
	"go_5_vocab_reading/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type VocabHandler struct {
	service service.VocabService
	logger  *slog.Logger
}

func NewVocabHandler(s service.VocabService, logger *slog.Logger) *VocabHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VocabHandler{
		service: s,
		logger:  logger,
	}
}

// wordIDParam はURLの word_id を数値IDとして取り出します。
func wordIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "word_id"))
}

// PostWord は新しい単語を登録するためのハンドラ
func (h *VocabHandler) PostWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostWord"))

	var req model.PostEntryRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleValidationError(w, logger, err)
		return
	}

	entry, err := h.service.CreateEntry(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating entry in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Entry created successfully", slog.Int("id", entry.ID))
	webutil.RespondWithJSON(w, http.StatusCreated, entry, logger)
}

// GetWords は単語一覧を取得するためのハンドラです。
// クエリパラメータで絞り込みができます:
//
//	?recent=N ?random=N ?filter=incorrect|never_tested ?date=YYYY-MM-DD ?q=term ?sort=field
func (h *VocabHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWords"))

	q := service.ListQuery{
		Filter: r.URL.Query().Get("filter"),
		Date:   r.URL.Query().Get("date"),
		Search: r.URL.Query().Get("q"),
		SortBy: r.URL.Query().Get("sort"),
	}
	for param, dst := range map[string]*int{"recent": &q.Recent, "random": &q.Random} {
		if v := r.URL.Query().Get(param); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				logger.Warn("Invalid numeric query parameter", slog.String("param", param), slog.String("value", v))
				appErr := model.NewAppError("INVALID_QUERY_PARAM", param+"は正の整数で指定してください。", param, model.ErrInvalidInput)
				webutil.HandleError(w, logger, appErr)
				return
			}
			*dst = n
		}
	}

	entries, err := h.service.ListEntries(r.Context(), q)
	if err != nil {
		logger.Warn("Error listing entries in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if entries == nil {
		entries = []*model.VocabEntry{}
	}
	logger.Info("Entries listed successfully", slog.Int("count", len(entries)))
	webutil.RespondWithJSON(w, http.StatusOK, entries, logger)
}

// GetWord は特定の単語を取得するためのハンドラ
func (h *VocabHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWord"))

	id, err := wordIDParam(r)
	if err != nil {
		logger.Warn("Invalid word ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "word_idの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Int("word_id", id))

	entry, err := h.service.GetEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Entry not found", slog.Any("error", err))
		} else {
			logger.Error("Error getting entry from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, entry, logger)
}

// PatchWord は単語の一部フィールドを更新するためのハンドラ
func (h *VocabHandler) PatchWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchWord"))

	id, err := wordIDParam(r)
	if err != nil {
		logger.Warn("Invalid word ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "word_idの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Int("word_id", id))

	var req model.PatchEntryRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if req.English == nil && req.German == nil {
		logger.Warn("PatchWord called with no fields provided for update")
		appErr := model.NewAppError("VALIDATION_ERROR", "更新するフィールドが指定されていません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleValidationError(w, logger, err)
		return
	}

	entry, err := h.service.UpdateEntry(r.Context(), id, &req)
	if err != nil {
		logger.Error("Error updating entry in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Entry updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, entry, logger)
}

// DeleteWord は単語を削除するためのハンドラ
func (h *VocabHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))

	id, err := wordIDParam(r)
	if err != nil {
		logger.Warn("Invalid word ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "word_idの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Int("word_id", id))

	if err := h.service.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Entry not found", slog.Any("error", err))
		} else {
			logger.Error("Error deleting entry in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Entry deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// PostResult はクイズ結果を手動で記録するためのハンドラ
func (h *VocabHandler) PostResult(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostResult"))

	id, err := wordIDParam(r)
	if err != nil {
		logger.Warn("Invalid word ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "word_idの形式が正しくありません。", "word_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Int("word_id", id))

	var req model.PostResultRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleValidationError(w, logger, err)
		return
	}

	entry, err := h.service.RecordResult(r.Context(), id, *req.IsCorrect)
	if err != nil {
		logger.Error("Error recording result in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Result recorded successfully", slog.Bool("is_correct", *req.IsCorrect))
	webutil.RespondWithJSON(w, http.StatusOK, entry, logger)
}

// GetDuplicates は同じ英単語を持つエントリのグループを返すハンドラ
func (h *VocabHandler) GetDuplicates(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDuplicates"))

	groups, err := h.service.FindDuplicates(r.Context())
	if err != nil {
		logger.Error("Error finding duplicates in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if groups == nil {
		groups = []*model.DuplicateGroup{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, groups, logger)
}
