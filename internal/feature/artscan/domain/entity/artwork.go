package entity

// ArtworkDetails はLLMが生成した作品解説です。
// モデル出力をそのまま通すため、スキーマ検証はしません。
// 想定キー: title, artist, year_created, description,
// historical_context, artistic_technique, significance
type ArtworkDetails map[string]any

// NewFallbackDetails はJSONを取り出せなかった場合の解説を生成します。
func NewFallbackDetails(title, rawText string) ArtworkDetails {
	return ArtworkDetails{"title": title, "description": rawText}
}

// NewErrorDetails は生成に失敗した場合の解説を生成します。
func NewErrorDetails(title, message string) ArtworkDetails {
	return ArtworkDetails{"title": title, "error": message}
}
