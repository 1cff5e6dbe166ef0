package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"artscan_backend/internal/app/di"
	"artscan_backend/internal/app/router"
	scanhandler "artscan_backend/internal/feature/artscan/transport/handler"
	"artscan_backend/internal/platform/config"
	"artscan_backend/internal/platform/http/handler"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Usecase
	scanUC, closeVision, err := di.NewScanUsecase(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize scan usecase: %v", err)
	}
	defer func() {
		if err := closeVision(); err != nil {
			log.Println("[ERROR] Failed to close vision client:", err)
		}
	}()

	// Handler
	healthH := handler.NewHealthHandler(cfg.GoogleCloudConfigured(), cfg.GroqConfigured())
	scanH := scanhandler.NewScanHandler(scanUC)

	// ルータ生成
	r := router.NewRouter(cfg.AllowedOrigins, healthH, scanH)

	if !cfg.GoogleCloudConfigured() {
		log.Println("[WARN] GOOGLE_CLOUD_API_KEY is not set.")
	}
	if !cfg.GroqConfigured() {
		log.Println("[WARN] GROQ_API_KEY is not set.")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("[ERROR] Graceful shutdown failed:", err)
	}
}
