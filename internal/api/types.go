// Package api はHTTP APIのリクエスト/レスポンス型を定義します。
package api

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// LabelResponse はラベル検出結果の1件です。
type LabelResponse struct {
	Description string `json:"description"`
	Confidence  string `json:"confidence"`
}

// ObjectResponse はオブジェクト検出結果の1件です。
type ObjectResponse struct {
	Name       string `json:"name"`
	Confidence string `json:"confidence"`
}

// VisionAnalysisResponse はVision APIの補助解析結果です。
type VisionAnalysisResponse struct {
	Labels       []LabelResponse  `json:"labels"`
	Objects      []ObjectResponse `json:"objects"`
	DetectedText string           `json:"detectedText"`
}

// ScanResponse は POST /api/classify のレスポンスです。
type ScanResponse struct {
	Status          string                 `json:"status"`
	Timestamp       string                 `json:"timestamp"`
	DetectedArtwork string                 `json:"detectedArtwork"`
	VisionAnalysis  VisionAnalysisResponse `json:"visionAnalysis"`
	ArtworkDetails  map[string]any         `json:"artworkDetails"`
}

// APIKeysConfigured は上流サービスのキーが設定済みかどうかを表します。
type APIKeysConfigured struct {
	GoogleCloud bool `json:"googleCloud"`
	Groq        bool `json:"groq"`
}

// HealthResponse は GET /api/health のレスポンスです。
type HealthResponse struct {
	Status            string            `json:"status"`
	Timestamp         string            `json:"timestamp"`
	APIKeysConfigured APIKeysConfigured `json:"apiKeysConfigured"`
}

// TimestampLayout はレスポンスの時刻表記（UTC、ミリ秒精度のISO 8601）です。
const TimestampLayout = "2006-01-02T15:04:05.000Z"
