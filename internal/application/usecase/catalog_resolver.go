// internal/application/usecase/catalog_resolver.go
package usecase

import (
	"context"
	"errors"
	"time"

	artdom "reliefdesk/internal/domain/article"
	"reliefdesk/internal/domain/common"
)

// ============================================================
// Catalog Resolver
// ============================================================
//
// 寄付明細の (name, unit) をカタログ上の正準 Article に解決します。
//
// - 名前は trim + lowercase で照合。既存があればそれを返す
//   （保存済みの unit/category が寄付者の入力より常に優先）。
// - 無ければ新規 Article の作成を呼び出し元のバッチに stage して返す。
//   commit の責任は常に呼び出し元（Donation Intake）にある。
// - stage した作成は commit まで照合 read に映らない。同一ペイロード内の
//   重複は呼び出し元が解決結果を覚えて防ぐ。並行 intake 間の同名同時作成は
//   直列化されず重複し得る（既知のレース）。
type CatalogResolver struct {
	articles artdom.RepositoryPort
}

func NewCatalogResolver(articles artdom.RepositoryPort) *CatalogResolver {
	return &CatalogResolver{articles: articles}
}

// Resolve returns the canonical Article for name, staging a create into b
// when the catalog has no entry yet.
func (r *CatalogResolver) Resolve(
	ctx context.Context,
	b common.Batch,
	name string,
	defaultUnit string,
) (artdom.Article, error) {
	if r == nil || r.articles == nil {
		return artdom.Article{}, errors.New("catalog resolver/repo is nil")
	}

	normalized := artdom.Normalize(name)
	if normalized == "" {
		return artdom.Article{}, artdom.ErrInvalidName
	}

	existing, err := r.articles.FindByNormalizedName(ctx, normalized)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, artdom.ErrNotFound) {
		return artdom.Article{}, err
	}

	created, err := artdom.New(name, defaultUnit, "", time.Now().UTC())
	if err != nil {
		return artdom.Article{}, err
	}
	return r.articles.StageCreate(b, created)
}
