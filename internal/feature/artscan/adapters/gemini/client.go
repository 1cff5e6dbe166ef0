// Package gemini はGoogle Gemini APIを使用した補完クライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"artscan_backend/internal/feature/artscan/adapters/description"
	"artscan_backend/internal/feature/artscan/domain"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// ServiceName はエラーメッセージに使うサービスの表示名です。
	ServiceName = "Gemini"
)

// Config はGeminiクライアントの設定です。
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // 空ならSDKの既定エンドポイント
}

// Client はGoogle Gemini APIを使用してテキストを生成します。
type Client struct {
	client *genai.Client
	model  string
}

// ClientがCompleterを実装していることをコンパイル時に検証します。
var _ description.Completer = (*Client)(nil)

// NewClient はAPIキーを使用してClientの新しいインスタンスを生成します。
// APIキーが空の場合はSDKクライアントを生成せず、Configured が false を返します。
func NewClient(ctx context.Context, cfg Config, httpClient *http.Client) (*Client, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	if cfg.APIKey == "" {
		return &Client{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Name はサービスの表示名を返します。
func (g *Client) Name() string { return ServiceName }

// Configured はSDKクライアントが生成済みかを返します。
func (g *Client) Configured() bool { return g.client != nil }

// Complete はプロンプトからテキストを生成します。
func (g *Client) Complete(ctx context.Context, in description.CompletionRequest) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini client is not configured")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(in.UserPrompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(in.SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(in.Temperature),
		MaxOutputTokens:   int32(in.MaxTokens),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &domain.UpstreamStatusError{Service: ServiceName, StatusCode: apiErr.Code, Body: apiErr.Message}
		}
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
