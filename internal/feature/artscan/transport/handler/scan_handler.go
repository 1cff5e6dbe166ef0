// Package handler はartscanフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"artscan_backend/internal/api"
	"artscan_backend/internal/feature/artscan/domain/entity"
	"artscan_backend/internal/feature/artscan/usecase"
)

const (
	// ImageField はアップロード画像のフォームフィールド名です。
	ImageField = "image"
	// maxRequestBody はmultipartのヘッダー類を見込んだリクエストボディの上限です。
	maxRequestBody = usecase.MaxImageSize + 1<<20

	errMsgNoImage       = "No image uploaded"
	errMsgImageTooLarge = "Image exceeds maximum size of 50MB"
	errMsgScanFailed    = "Failed to process image"
)

// ScanUsecase は画像スキャンのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ScanUsecase interface {
	Scan(ctx context.Context, imageData []byte) (*entity.ScanResult, error)
}

// ScanHandler は画像スキャンのHTTPリクエストを処理します。
type ScanHandler struct {
	uc ScanUsecase
}

// NewScanHandler はScanHandlerの新しいインスタンスを生成します。
func NewScanHandler(uc ScanUsecase) *ScanHandler {
	return &ScanHandler{uc: uc}
}

// Scan は画像をアップロードして作品を解析します。
//
// エンドポイント: POST /api/classify（別名 POST /api/scan/vision）
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大50MB）
func (h *ScanHandler) Scan(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)

	file, err := c.FormFile(ImageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			slog.Warn("アップロード画像がサイズ上限を超過", "limit", tooLarge.Limit, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errMsgImageTooLarge})
			return
		}
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errMsgNoImage})
		return
	}
	if file.Size > usecase.MaxImageSize {
		slog.Warn("アップロード画像がサイズ上限を超過", "size", file.Size, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errMsgImageTooLarge})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: errMsgScanFailed, Details: err.Error()})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: errMsgScanFailed, Details: err.Error()})
		return
	}
	if len(imageData) == 0 {
		slog.Warn("空の画像ファイルがアップロードされた", "filename", file.Filename, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errMsgNoImage})
		return
	}

	slog.Info("画像スキャンを開始", "filename", file.Filename, "size", len(imageData))

	result, err := h.uc.Scan(c.Request.Context(), imageData)
	if err != nil {
		slog.Error("画像スキャンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: errMsgScanFailed, Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toScanResponse(result))
}

func toScanResponse(r *entity.ScanResult) api.ScanResponse {
	labels := make([]api.LabelResponse, 0, len(r.VisionAnalysis.Labels))
	for _, l := range r.VisionAnalysis.Labels {
		labels = append(labels, api.LabelResponse{Description: l.Description, Confidence: l.Confidence})
	}
	objects := make([]api.ObjectResponse, 0, len(r.VisionAnalysis.Objects))
	for _, o := range r.VisionAnalysis.Objects {
		objects = append(objects, api.ObjectResponse{Name: o.Name, Confidence: o.Confidence})
	}

	return api.ScanResponse{
		Status:          r.Status,
		Timestamp:       r.Timestamp.UTC().Format(api.TimestampLayout),
		DetectedArtwork: r.DetectedArtwork,
		VisionAnalysis: api.VisionAnalysisResponse{
			Labels:       labels,
			Objects:      objects,
			DetectedText: r.VisionAnalysis.DetectedText,
		},
		ArtworkDetails: r.ArtworkDetails,
	}
}
