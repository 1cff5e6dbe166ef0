// Package config はプロセス起動時に一度だけ読み込まれるアプリケーション設定を提供します。
package config

import (
	"os"
	"strings"
)

// 記述生成プロバイダーの識別子です。
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

const (
	defaultPort        = "8080"
	defaultGroqModel   = "llama-3.3-70b-versatile"
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGeminiModel = "gemini-2.5-flash"
)

// Config はサービス全体の設定を保持します。
// main で一度だけ生成し、各コンポーネントへ明示的に渡します。
type Config struct {
	Port string // 待ち受けポート

	GoogleCloudAPIKey string // Cloud Vision API のAPIキー

	DescriptionProvider string // "groq" または "gemini"
	GroqAPIKey          string // Groq API のAPIキー
	GroqModel           string // Groq で使用するモデル名
	GroqBaseURL         string // OpenAI互換エンドポイントのベースURL
	GeminiAPIKey        string // Gemini API のAPIキー
	GeminiModel         string // Gemini で使用するモデル名

	AllowedOrigins []string // CORS許可オリジン（空なら全オリジン許可）
}

// Load は環境変数から Config を生成します。
func Load() Config {
	return Config{
		Port:                getEnv("PORT", defaultPort),
		GoogleCloudAPIKey:   os.Getenv("GOOGLE_CLOUD_API_KEY"),
		DescriptionProvider: strings.ToLower(getEnv("DESCRIPTION_PROVIDER", ProviderGroq)),
		GroqAPIKey:          os.Getenv("GROQ_API_KEY"),
		GroqModel:           getEnv("GROQ_MODEL", defaultGroqModel),
		GroqBaseURL:         strings.TrimRight(getEnv("GROQ_BASE_URL", defaultGroqBaseURL), "/"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         getEnv("GEMINI_MODEL", defaultGeminiModel),
		AllowedOrigins:      splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
	}
}

// GoogleCloudConfigured は Vision API のキーが設定されているかを返します。
func (c Config) GoogleCloudConfigured() bool {
	return c.GoogleCloudAPIKey != ""
}

// GroqConfigured は Groq API のキーが設定されているかを返します。
func (c Config) GroqConfigured() bool {
	return c.GroqAPIKey != ""
}

// Addr は gin / http.Server に渡す待ち受けアドレスを返します。
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// splitOrigins はカンマ区切りのオリジン文字列を分割します。空要素は捨てます。
func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimRight(strings.TrimSpace(p), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
