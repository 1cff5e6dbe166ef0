// Package description は作品名からLLMで構造化された作品解説を生成します。
package description

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"artscan_backend/internal/feature/artscan/domain"
	"artscan_backend/internal/feature/artscan/domain/entity"
	"artscan_backend/internal/feature/artscan/usecase"
)

const (
	// Temperature はLLMへのリクエストで使う固定の温度です。
	Temperature = 0.7
	// MaxTokens はLLMの出力トークン上限です。
	MaxTokens = 1500
	// RequestTimeout は解説生成1回あたりのタイムアウトです。
	RequestTimeout = 30 * time.Second

	// SystemPrompt はモデルにJSONのみで回答させるためのシステムプロンプトです。
	SystemPrompt = "You are an expert art historian. Always answer with a single valid JSON object and nothing else."
	// UserPromptTemplate は作品名を埋め込むユーザープロンプトです。
	UserPromptTemplate = `Provide detailed information about the artwork "%s".
Respond strictly as JSON with exactly these fields:
{
  "title": "the artwork's title",
  "artist": "the artist's name",
  "year_created": "year or period of creation",
  "description": "a detailed visual description",
  "historical_context": "the historical context of the work",
  "artistic_technique": "techniques and materials used",
  "significance": "why the work matters in art history"
}`

	errMsgGenerationFailed = "Failed to generate description"
)

// CompletionRequest はLLMへの1回の補完リクエストです。
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

// Completer はテキスト補完APIのクライアントです。
type Completer interface {
	// Name はエラーメッセージに使う表示名です（例: "Groq"）。
	Name() string
	// Configured は認証情報が設定されているかを返します。
	Configured() bool
	// Complete はモデルの出力テキストを返します。
	// 上流がエラーステータスを返した場合は *domain.UpstreamStatusError を返します。
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Generator は作品名から解説を生成します。
type Generator struct {
	completer Completer
	timeout   time.Duration
}

// GeneratorがDescriptionGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.DescriptionGenerator = (*Generator)(nil)

// NewGenerator はGeneratorの新しいインスタンスを生成します。
func NewGenerator(c Completer) *Generator {
	return &Generator{completer: c, timeout: RequestTimeout}
}

// Generate は作品名から解説を生成します。
// 失敗はすべて戻り値の error / details フィールドに吸収されます。
func (g *Generator) Generate(ctx context.Context, artworkName string) entity.ArtworkDetails {
	if !g.completer.Configured() {
		return entity.NewErrorDetails(artworkName, fmt.Sprintf("%s API key not configured", g.completer.Name()))
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.completer.Complete(ctx, CompletionRequest{
		SystemPrompt: SystemPrompt,
		UserPrompt:   fmt.Sprintf(UserPromptTemplate, artworkName),
		Temperature:  Temperature,
		MaxTokens:    MaxTokens,
	})
	if err != nil {
		if domain.IsUnauthorized(err) {
			slog.Error("description provider rejected credentials", "provider", g.completer.Name(), "error", err)
			details := entity.NewErrorDetails(artworkName, fmt.Sprintf("%s authentication failed - invalid API key", g.completer.Name()))
			details["status"] = http.StatusUnauthorized
			return details
		}
		slog.Error("description generation failed", "provider", g.completer.Name(), "artwork", artworkName, "error", err)
		details := entity.NewErrorDetails(artworkName, errMsgGenerationFailed)
		details["details"] = err.Error()
		return details
	}

	if parsed, ok := ExtractJSON(text); ok {
		return entity.ArtworkDetails(parsed)
	}
	slog.Warn("model output contained no parsable JSON", "provider", g.completer.Name(), "artwork", artworkName)
	return entity.NewFallbackDetails(artworkName, text)
}
