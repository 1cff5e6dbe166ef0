package description

import (
	"encoding/json"
	"regexp"
)

// jsonObjectPattern は最初の "{" から最後の "}" までを貪欲に取り出します。
// 複数のJSONブロックや無関係な波括弧を含む文章では誤抽出しますが、
// その場合はパースに失敗してフォールバックされます。
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSON はモデルの自由記述テキストから埋め込まれたJSONオブジェクトを取り出します。
// フィールドの検証はせず、パースできたマップをそのまま返します。
func ExtractJSON(text string) (map[string]any, bool) {
	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return nil, false
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(match), &out); err != nil {
		return nil, false
	}
	return out, true
}
