// Package groq はGroqのOpenAI互換チャット補完APIクライアントを提供します。
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"artscan_backend/internal/feature/artscan/adapters/description"
	"artscan_backend/internal/feature/artscan/adapters/groq/dto"
	"artscan_backend/internal/feature/artscan/domain"
)

// ServiceName はエラーメッセージに使うサービスの表示名です。
const ServiceName = "Groq"

// maxErrorBody はエラーレスポンスから読み取る最大バイト数です。
const maxErrorBody = 4 << 10

// Config はGroqクライアントの設定です。
type Config struct {
	APIKey  string // Bearerトークンとして送信するAPIキー
	Model   string // 使用するモデル名
	BaseURL string // 例: "https://api.groq.com/openai/v1"
}

// Client はGroqのチャット補完APIを呼び出します。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがCompleterを実装していることをコンパイル時に検証します。
var _ description.Completer = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Name はサービスの表示名を返します。
func (c *Client) Name() string { return ServiceName }

// Configured はAPIキーが設定されているかを返します。
func (c *Client) Configured() bool { return c.cfg.APIKey != "" }

// Complete はチャット補完を1回実行し、先頭候補のテキストを返します。
func (c *Client) Complete(ctx context.Context, in description.CompletionRequest) (string, error) {
	payload, err := json.Marshal(dto.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []dto.ChatMessage{
			{Role: "system", Content: in.SystemPrompt},
			{Role: "user", Content: in.UserPrompt},
		},
		Temperature: in.Temperature,
		MaxTokens:   in.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return "", &domain.UpstreamStatusError{
			Service:    ServiceName,
			StatusCode: res.StatusCode,
			Body:       errorMessage(res.Body),
		}
	}

	var body dto.ChatCompletionResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(body.Choices) == 0 {
		return "", errors.New("groq: response has no choices")
	}
	return body.Choices[0].Message.Content, nil
}

// errorMessage はエラーレスポンスからメッセージを取り出します。
// JSONでない場合は本文をそのまま返します。
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var e dto.ErrorResponse
	if err := json.Unmarshal(raw, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return string(bytes.TrimSpace(raw))
}
