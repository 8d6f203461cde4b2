// internal/handlers/reading_handler.go
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

type ReadingHandler struct {
	service service.ReadingService
	logger  *slog.Logger
}

func NewReadingHandler(s service.ReadingService, logger *slog.Logger) *ReadingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadingHandler{
		service: s,
		logger:  logger,
	}
}

func textIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "text_id"))
}

// PostText はリーディング用テキストを登録するためのハンドラ
func (h *ReadingHandler) PostText(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostText"))

	var req model.PostTextRequest
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

	text, err := h.service.CreateText(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating text in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Text created successfully", slog.Int("id", text.ID), slog.Int("word_count", text.WordCount))
	webutil.RespondWithJSON(w, http.StatusCreated, text, logger)
}

// GetTexts はテキスト一覧を取得するためのハンドラ
func (h *ReadingHandler) GetTexts(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTexts"))

	texts, err := h.service.ListTexts(r.Context())
	if err != nil {
		logger.Error("Error listing texts in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if texts == nil {
		texts = []*model.ReadingText{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, texts, logger)
}

// GetText は特定のテキストを取得するためのハンドラ
func (h *ReadingHandler) GetText(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetText"))

	id, err := textIDParam(r)
	if err != nil {
		logger.Warn("Invalid text ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "text_idの形式が正しくありません。", "text_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Int("text_id", id))

	text, err := h.service.GetText(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Text not found", slog.Any("error", err))
		} else {
			logger.Error("Error getting text from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, text, logger)
}

// DeleteText はテキストを削除するためのハンドラ
func (h *ReadingHandler) DeleteText(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteText"))

	id, err := textIDParam(r)
	if err != nil {
		logger.Warn("Invalid text ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "text_idの形式が正しくありません。", "text_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Int("text_id", id))

	if err := h.service.DeleteText(r.Context(), id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Text not found", slog.Any("error", err))
		} else {
			logger.Error("Error deleting text in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Text deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// GetTextMatches は保存済みテキストを現在の語彙と照合した結果を返すハンドラ
func (h *ReadingHandler) GetTextMatches(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTextMatches"))

	id, err := textIDParam(r)
	if err != nil {
		logger.Warn("Invalid text ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "text_idの形式が正しくありません。", "text_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Int("text_id", id))

	matches, err := h.service.MatchText(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Text not found", slog.Any("error", err))
		} else {
			logger.Error("Error matching text in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Text matched successfully", slog.Int("matched_words", len(matches)))
	webutil.RespondWithJSON(w, http.StatusOK, matches, logger)
}

// PostMatch は任意のテキストを保存せずに現在の語彙と照合するハンドラ
func (h *ReadingHandler) PostMatch(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostMatch"))

	var req model.MatchTextRequest
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

	matches, err := h.service.MatchRaw(r.Context(), req.Text)
	if err != nil {
		logger.Error("Error matching text in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Text matched successfully", slog.Int("matched_words", len(matches)))
	webutil.RespondWithJSON(w, http.StatusOK, matches, logger)
}
