package router

import (
	"github.com/gin-gonic/gin"

	scanhandler "artscan_backend/internal/feature/artscan/transport/handler"
	"artscan_backend/internal/feature/artscan/usecase"
	"artscan_backend/internal/platform/http/handler"
	"artscan_backend/internal/platform/http/middleware"
)

// NewRouter はミドルウェアとルートを登録したgin.Engineを生成します。
func NewRouter(allowedOrigins []string, health *handler.HealthHandler, scan *scanhandler.ScanHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), middleware.Recovery(), middleware.CORS(allowedOrigins))

	// multipartをメモリに展開する上限（超過分は一時ファイル）
	r.MaxMultipartMemory = usecase.MaxImageSize

	api := r.Group("/api")
	{
		// 導通確認用
		api.GET("/health", health.Health)
		api.HEAD("/health", health.Health)
		api.OPTIONS("/health", health.Health)

		// 画像スキャン
		api.POST("/classify", scan.Scan)
		api.POST("/scan/vision", scan.Scan)
	}

	return r
}
