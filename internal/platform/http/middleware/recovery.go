package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"artscan_backend/internal/api"
)

// Recovery はハンドラー内のpanicを 500 {error, details} に変換します。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered", "error", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:   "Internal server error",
			Details: fmt.Sprint(recovered),
		})
	})
}
