// Package vision はGoogle Cloud Vision APIを使用した画像解析クライアントを提供します。
//
// 各メソッドは失敗しても error を返しません。通信エラーやレスポンス異常はログに残し、
// 空スライスや既定文字列などの中立的な値に置き換えます。
package vision

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"artscan_backend/internal/feature/artscan/domain/entity"
	"artscan_backend/internal/feature/artscan/usecase"
)

const (
	// MaxWebEntities はWeb検出で要求するエンティティ数の上限です。
	MaxWebEntities = 10
	// MinWebEntityScore は作品名として採用するWebエンティティの最低スコア（この値は含まない）です。
	MinWebEntityScore = 0.5
)

// Annotator はVision APIのバッチ注釈呼び出しを抽象化します。
// *gvision.ImageAnnotatorClient がこれを満たします。
type Annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
}

// Client はVision APIの4種類の検出を正規化して返します。
type Client struct {
	annotator Annotator
}

// ClientがVisionAnalyzerを実装していることをコンパイル時に検証します。
var _ usecase.VisionAnalyzer = (*Client)(nil)

// NewClient は指定されたAnnotatorでClientの新しいインスタンスを生成します。
func NewClient(annotator Annotator) *Client {
	return &Client{annotator: annotator}
}

// NewImageAnnotator はREST版のImageAnnotatorClientを生成します。
// apiKeyが空の場合は認証なしで生成し、呼び出し時の失敗は各検出メソッドで吸収されます。
func NewImageAnnotator(ctx context.Context, apiKey string, opts ...option.ClientOption) (*gvision.ImageAnnotatorClient, error) {
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		slog.Warn("GOOGLE_CLOUD_API_KEY is not set; vision requests will fail")
		opts = append(opts, option.WithoutAuthentication())
	}
	client, err := gvision.NewImageAnnotatorRESTClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return client, nil
}

// DetectWebEntities はWeb検出から作品名を1つ特定します。
// スコアが0.5を超える説明付きエンティティのうち最高スコアのものを選び、
// 該当がなければラベル検出の先頭、それも無ければ "Unknown Artwork" を返します。
func (c *Client) DetectWebEntities(ctx context.Context, imageData []byte) string {
	res, err := c.annotate(ctx, imageData, &visionpb.Feature{
		Type:       visionpb.Feature_WEB_DETECTION,
		MaxResults: MaxWebEntities,
	})
	if err != nil {
		slog.Warn("web detection failed", "error", err)
		return entity.UnknownArtwork
	}

	if name, ok := bestWebEntity(res.GetWebDetection().GetWebEntities()); ok {
		return name
	}

	labels := c.DetectLabels(ctx, imageData)
	if len(labels) > 0 && labels[0].Description != "" {
		return labels[0].Description
	}
	return entity.UnknownArtwork
}

// DetectLabels はラベル検出の結果を上流の順序のまま返します。
func (c *Client) DetectLabels(ctx context.Context, imageData []byte) []entity.LabelResult {
	res, err := c.annotate(ctx, imageData, &visionpb.Feature{Type: visionpb.Feature_LABEL_DETECTION})
	if err != nil {
		slog.Warn("label detection failed", "error", err)
		return []entity.LabelResult{}
	}

	labels := make([]entity.LabelResult, 0, len(res.GetLabelAnnotations()))
	for _, l := range res.GetLabelAnnotations() {
		labels = append(labels, entity.LabelResult{
			Description: l.GetDescription(),
			Confidence:  FormatConfidence(l.GetScore()),
		})
	}
	return labels
}

// DetectObjects はオブジェクト検出の結果を上流の順序のまま返します。
func (c *Client) DetectObjects(ctx context.Context, imageData []byte) []entity.ObjectResult {
	res, err := c.annotate(ctx, imageData, &visionpb.Feature{Type: visionpb.Feature_OBJECT_LOCALIZATION})
	if err != nil {
		slog.Warn("object localization failed", "error", err)
		return []entity.ObjectResult{}
	}

	objects := make([]entity.ObjectResult, 0, len(res.GetLocalizedObjectAnnotations()))
	for _, o := range res.GetLocalizedObjectAnnotations() {
		objects = append(objects, entity.ObjectResult{
			Name:       o.GetName(),
			Confidence: FormatConfidence(o.GetScore()),
		})
	}
	return objects
}

// DetectText は画像全体のテキスト（先頭の注釈）を返します。
func (c *Client) DetectText(ctx context.Context, imageData []byte) string {
	res, err := c.annotate(ctx, imageData, &visionpb.Feature{Type: visionpb.Feature_TEXT_DETECTION})
	if err != nil {
		slog.Warn("text detection failed", "error", err)
		return entity.NoTextDetected
	}

	annotations := res.GetTextAnnotations()
	if len(annotations) == 0 || annotations[0].GetDescription() == "" {
		return entity.NoTextDetected
	}
	return annotations[0].GetDescription()
}

// FormatConfidence は0〜1のスコアを小数点以下2桁のパーセント文字列に変換します。
func FormatConfidence(score float32) string {
	return strconv.FormatFloat(float64(score)*100, 'f', 2, 64)
}

// annotate は1つの特徴量について1回だけVision APIを呼び出します。
func (c *Client) annotate(ctx context.Context, imageData []byte, feature *visionpb.Feature) (*visionpb.AnnotateImageResponse, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image:    &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{feature},
			},
		},
	}

	resp, err := c.annotator.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed (%s): %w", feature.GetType(), err)
	}

	if len(resp.GetResponses()) == 0 {
		return &visionpb.AnnotateImageResponse{}, nil
	}

	first := resp.GetResponses()[0]
	if first.GetError() != nil {
		return nil, fmt.Errorf("vision API error (%s): %s", feature.GetType(), first.GetError().GetMessage())
	}
	return first, nil
}

// bestWebEntity は説明が空でなくスコアが閾値を超えるエンティティのうち最高スコアの説明を返します。
// 同点の場合は先に現れたものを採用します。
func bestWebEntity(entities []*visionpb.WebDetection_WebEntity) (string, bool) {
	candidates := make([]*visionpb.WebDetection_WebEntity, 0, len(entities))
	for _, e := range entities {
		if e.GetDescription() != "" && e.GetScore() > MinWebEntityScore {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].GetScore() > candidates[j].GetScore()
	})
	return candidates[0].GetDescription(), true
}
