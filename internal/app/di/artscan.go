// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"artscan_backend/internal/feature/artscan/adapters/description"
	"artscan_backend/internal/feature/artscan/adapters/gemini"
	"artscan_backend/internal/feature/artscan/adapters/groq"
	"artscan_backend/internal/feature/artscan/adapters/vision"
	"artscan_backend/internal/feature/artscan/usecase"
	"artscan_backend/internal/platform/config"
	infrahttp "artscan_backend/internal/platform/http"
)

// NewCompleter creates the completion client selected by cfg.DescriptionProvider.
func NewCompleter(ctx context.Context, cfg config.Config) (description.Completer, error) {
	httpClient := infrahttp.NewHTTPClient(description.RequestTimeout)

	switch cfg.DescriptionProvider {
	case config.ProviderGroq:
		return groq.NewClient(groq.Config{
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
			BaseURL: cfg.GroqBaseURL,
		}, httpClient), nil
	case config.ProviderGemini:
		return gemini.NewClient(ctx, gemini.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		}, httpClient)
	default:
		return nil, fmt.Errorf("unknown description provider %q", cfg.DescriptionProvider)
	}
}

// NewScanUsecase wires the vision client and description generator into a ScanUsecase.
// The returned close function releases the vision client.
func NewScanUsecase(ctx context.Context, cfg config.Config) (*usecase.ScanUsecase, func() error, error) {
	annotator, err := vision.NewImageAnnotator(ctx, cfg.GoogleCloudAPIKey)
	if err != nil {
		return nil, nil, err
	}

	completer, err := NewCompleter(ctx, cfg)
	if err != nil {
		_ = annotator.Close()
		return nil, nil, err
	}
	if !completer.Configured() {
		slog.Warn("description provider API key is not set; artwork details will carry an error", "provider", completer.Name())
	}

	uc := usecase.NewScanUsecase(vision.NewClient(annotator), description.NewGenerator(completer))
	return uc, annotator.Close, nil
}
