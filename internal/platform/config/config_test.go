package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "GOOGLE_CLOUD_API_KEY", "DESCRIPTION_PROVIDER", "GROQ_API_KEY",
		"GROQ_MODEL", "GROQ_BASE_URL", "GEMINI_API_KEY", "GEMINI_MODEL", "ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, ProviderGroq, cfg.DescriptionProvider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.GroqModel)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.GroqBaseURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.False(t, cfg.GoogleCloudConfigured())
	assert.False(t, cfg.GroqConfigured())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "3001")
	t.Setenv("GOOGLE_CLOUD_API_KEY", "gcp-key")
	t.Setenv("GROQ_API_KEY", "groq-key")
	t.Setenv("DESCRIPTION_PROVIDER", "Gemini")
	t.Setenv("GROQ_BASE_URL", "http://localhost:9999/v1/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com/ ,,")

	cfg := Load()

	assert.Equal(t, ":3001", cfg.Addr())
	assert.True(t, cfg.GoogleCloudConfigured())
	assert.True(t, cfg.GroqConfigured())
	assert.Equal(t, ProviderGemini, cfg.DescriptionProvider)
	assert.Equal(t, "http://localhost:9999/v1", cfg.GroqBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}
