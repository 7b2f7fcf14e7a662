package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/api"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/config"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/gesture"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/repository/sqlite"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/services"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/suggest"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	log.Info("flashcard server starting")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("suggest_url=%s", cfg.SuggestURL)
	log.Debug("infer_url=%s", cfg.InferURL)
	log.Debug("session_limit=%d", cfg.SessionLimit)

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		db.Close()
	}()

	cardRepo := sqlite.NewCardRepository(db)
	deckRepo := sqlite.NewDeckRepository(db)
	logRepo := sqlite.NewReviewLogRepository(db)

	var suggester suggest.Suggester
	if cfg.SuggestURL != "" {
		suggester = suggest.New(cfg.SuggestURL, cfg.SuggestTimeout)
	} else {
		log.Warn("SUGGEST_URL not set, answer auto-fill disabled")
	}

	var classifier gesture.Classifier
	if cfg.InferURL != "" {
		classifier = gesture.NewRemoteClassifier(cfg.InferURL, cfg.InferTimeout)
	} else {
		log.Warn("INFER_URL not set, gesture review disabled")
	}

	srv := &api.Server{
		CardService: services.NewCardService(cardRepo, deckRepo, logRepo, suggester),
		DeckService: services.NewDeckService(deckRepo),
		ReviewService: services.NewReviewService(cardRepo, logRepo, classifier, gesture.NewPushSource(),
			services.WithSessionLimit(cfg.SessionLimit),
			services.WithGestureThreshold(cfg.GestureConfidence),
			services.WithGesturePollInterval(cfg.GesturePollInterval)),
		Suggester: suggester,
		Ping:      db.Ping,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("flashcard server stopped")
}
