// Package usecase はartscanフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"artscan_backend/internal/feature/artscan/domain"
	"artscan_backend/internal/feature/artscan/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（50MB）です。
	MaxImageSize = 50 * 1024 * 1024
	// MaxLabels はレスポンスに含めるラベル数の上限です。
	MaxLabels = 10
	// MaxObjects はレスポンスに含めるオブジェクト数の上限です。
	MaxObjects = 10
	// MaxDetectedTextLength は検出テキストの最大文字数（rune数）です。
	MaxDetectedTextLength = 500
	// StatusSuccess はスキャン成功時のステータス文字列です。
	StatusSuccess = "success"
)

// VisionAnalyzer は画像解析のインターフェースです。
// いずれのメソッドも失敗時は中立的な既定値を返し、エラーを返しません。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type VisionAnalyzer interface {
	DetectWebEntities(ctx context.Context, imageData []byte) string
	DetectLabels(ctx context.Context, imageData []byte) []entity.LabelResult
	DetectObjects(ctx context.Context, imageData []byte) []entity.ObjectResult
	DetectText(ctx context.Context, imageData []byte) string
}

// DescriptionGenerator は作品名から解説を生成するインターフェースです。
// 失敗は戻り値の error フィールドに吸収されます。
type DescriptionGenerator interface {
	Generate(ctx context.Context, artworkName string) entity.ArtworkDetails
}

// ScanUsecase は1枚の画像に対する解析の流れを組み立てます。
type ScanUsecase struct {
	vision    VisionAnalyzer
	describer DescriptionGenerator
	now       func() time.Time
}

// NewScanUsecase はScanUsecaseの新しいインスタンスを生成します。
func NewScanUsecase(v VisionAnalyzer, d DescriptionGenerator) *ScanUsecase {
	return &ScanUsecase{vision: v, describer: d, now: time.Now}
}

// Scan は画像から作品名を特定し、補助的な解析と解説をまとめて返します。
//
// 作品名の特定が解説生成より先に行われることだけが順序の制約です。
// ラベル・オブジェクト・テキスト検出は互いに独立しているため並行に実行します。
func (u *ScanUsecase) Scan(ctx context.Context, imageData []byte) (*entity.ScanResult, error) {
	if len(imageData) == 0 {
		return nil, domain.ErrEmptyImage
	}

	var (
		artworkName string
		details     entity.ArtworkDetails
		labels      []entity.LabelResult
		objects     []entity.ObjectResult
		text        string
	)

	var g errgroup.Group
	goSafe(&g, "web entities", func() {
		artworkName = u.vision.DetectWebEntities(ctx, imageData)
		details = u.describer.Generate(ctx, artworkName)
	})
	goSafe(&g, "labels", func() {
		labels = u.vision.DetectLabels(ctx, imageData)
	})
	goSafe(&g, "objects", func() {
		objects = u.vision.DetectObjects(ctx, imageData)
	})
	goSafe(&g, "text", func() {
		text = u.vision.DetectText(ctx, imageData)
	})
	// 各処理は失敗を既定値に吸収するため、エラーになるのはpanic時のみ
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entity.ScanResult{
		Status:          StatusSuccess,
		Timestamp:       u.now(),
		DetectedArtwork: artworkName,
		VisionAnalysis: entity.VisionAnalysis{
			Labels:       truncate(labels, MaxLabels),
			Objects:      truncate(objects, MaxObjects),
			DetectedText: truncateRunes(text, MaxDetectedTextLength),
		},
		ArtworkDetails: details,
	}, nil
}

// goSafe はfnをerrgroup上で実行し、panicをエラーに変換します。
// ゴルーチン内のpanicはginのRecoveryミドルウェアでは捕捉されません。
func goSafe(g *errgroup.Group, step string, fn func()) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("スキャン処理でpanicが発生", "step", step, "panic", r, "stack", string(debug.Stack()))
				err = fmt.Errorf("%s: %w: %v", step, domain.ErrScanPanicked, r)
			}
		}()
		fn()
		return nil
	})
}

func truncate[T any](s []T, n int) []T {
	if s == nil {
		return []T{}
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
