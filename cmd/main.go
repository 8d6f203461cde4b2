// cmd/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_5_vocab_reading/internal/config"
	"go_5_vocab_reading/internal/handlers"
	"go_5_vocab_reading/internal/middleware"
	"go_5_vocab_reading/internal/service"
	"go_5_vocab_reading/internal/store"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		// 開発時は色付きの読みやすいログ
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. ストアの初期化とデータ読み込み
	st := store.New(config.Cfg.Storage.Path, logger)
	msg, err := st.Load()
	if err != nil {
		// 読み込み失敗でも空の状態で起動は継続する（保存時に上書きされる点に注意）
		slog.Warn("Failed to load data file, starting with empty collections",
			slog.String("path", config.Cfg.Storage.Path), slog.Any("error", err))
	} else {
		slog.Info("Data file loaded", slog.String("path", config.Cfg.Storage.Path), slog.String("result", msg))
	}

	// 3. Dependency Injection
	mailer := service.NewMailer(&config.Cfg)
	notifier := service.NewQuizNotifier(mailer, config.Cfg.Mailer.Recipient)

	vocabService := service.NewVocabService(st)
	readingService := service.NewReadingService(st)
	quizService := service.NewQuizService(st, notifier, &config.Cfg)

	vocabHandler := handlers.NewVocabHandler(vocabService, logger)
	readingHandler := handlers.NewReadingHandler(readingService, logger)
	quizHandler := handlers.NewQuizHandler(quizService, logger)
	statsHandler := handlers.NewStatsHandler(st, logger)

	// 4. Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewStructuredLogger(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Word routes
		r.Route("/words", func(r chi.Router) {
			r.Post("/", vocabHandler.PostWord)
			r.Get("/", vocabHandler.GetWords)
			r.Get("/duplicates", vocabHandler.GetDuplicates)
			r.Get("/{word_id}", vocabHandler.GetWord)
			r.Patch("/{word_id}", vocabHandler.PatchWord)
			r.Delete("/{word_id}", vocabHandler.DeleteWord)
			r.Post("/{word_id}/result", vocabHandler.PostResult)
		})

		// Reading text routes
		r.Route("/texts", func(r chi.Router) {
			r.Post("/", readingHandler.PostText)
			r.Get("/", readingHandler.GetTexts)
			r.Get("/{text_id}", readingHandler.GetText)
			r.Delete("/{text_id}", readingHandler.DeleteText)
			r.Get("/{text_id}/matches", readingHandler.GetTextMatches)
		})
		r.Post("/match", readingHandler.PostMatch)

		// Quiz routes
		r.Route("/quiz/sessions", func(r chi.Router) {
			r.Post("/", quizHandler.PostSession)
			r.Post("/{session_id}/answers", quizHandler.PostAnswer)
		})

		// Stats routes
		r.Route("/stats", func(r chi.Router) {
			r.Get("/vocabulary", statsHandler.GetVocabStats)
			r.Get("/reading", statsHandler.GetReadingStats)
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := st.VocabStats()
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK (%d entries)", stats.TotalEntries)
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
