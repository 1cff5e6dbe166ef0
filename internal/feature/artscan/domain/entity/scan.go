// Package entity はartscanフィーチャーのドメインモデルを定義します。
// いずれもリクエスト単位の値オブジェクトで、リクエスト間で共有されません。
package entity

import "time"

// UnknownArtwork は作品名を特定できなかった場合の名前です。
const UnknownArtwork = "Unknown Artwork"

// NoTextDetected は画像中にテキストが見つからなかった場合の値です。
const NoTextDetected = "No text detected"

// LabelResult はラベル検出の1件を表します。
type LabelResult struct {
	Description string // ラベル名
	Confidence  string // パーセント表記（小数点以下2桁）
}

// ObjectResult はオブジェクト検出の1件を表します。
type ObjectResult struct {
	Name       string // オブジェクト名
	Confidence string // パーセント表記（小数点以下2桁）
}

// VisionAnalysis はVision APIから得た補助的な解析結果です。
type VisionAnalysis struct {
	Labels       []LabelResult
	Objects      []ObjectResult
	DetectedText string
}

// ScanResult は1枚の画像に対する最終的なスキャン結果です。
type ScanResult struct {
	Status          string
	Timestamp       time.Time
	DetectedArtwork string
	VisionAnalysis  VisionAnalysis
	ArtworkDetails  ArtworkDetails
}
