// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"artscan_backend/internal/api"
)

// StatusOK はヘルスチェック成功時のステータス文字列です。
const StatusOK = "ok"

// HealthHandler はサービスヘルスチェック用の /api/health エンドポイントを処理します。
// APIキーは値ではなく設定の有無だけを返します。
type HealthHandler struct {
	keys api.APIKeysConfigured
	now  func() time.Time
}

// NewHealthHandler はHealthHandlerの新しいインスタンスを生成します。
func NewHealthHandler(googleCloudConfigured, groqConfigured bool) *HealthHandler {
	return &HealthHandler{
		keys: api.APIKeysConfigured{GoogleCloud: googleCloudConfigured, Groq: groqConfigured},
		now:  time.Now,
	}
}

// Health はHTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{
			Status:            StatusOK,
			Timestamp:         h.now().UTC().Format(api.TimestampLayout),
			APIKeysConfigured: h.keys,
		})
	}
}
