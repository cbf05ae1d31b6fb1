// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	artdom "reliefdesk/internal/domain/article"
)

// CatalogUsecase は管理者向けのカタログ操作です。
// Article の削除は在庫に一切触れない（独立した管理操作）。
type CatalogUsecase struct {
	articles artdom.RepositoryPort
}

func NewCatalogUsecase(articles artdom.RepositoryPort) *CatalogUsecase {
	return &CatalogUsecase{articles: articles}
}

func (uc *CatalogUsecase) List(ctx context.Context) ([]artdom.Article, error) {
	if uc == nil || uc.articles == nil {
		return nil, errors.New("catalog usecase/repo is nil")
	}
	return uc.articles.List(ctx)
}

func (uc *CatalogUsecase) GetByID(ctx context.Context, id string) (artdom.Article, error) {
	if uc == nil || uc.articles == nil {
		return artdom.Article{}, errors.New("catalog usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return artdom.Article{}, artdom.ErrInvalidID
	}
	return uc.articles.GetByID(ctx, id)
}

// Create adds an explicit catalog entry. Duplicate normalized names reuse the
// existing Article instead of inserting a second one.
func (uc *CatalogUsecase) Create(ctx context.Context, name, unit, category string) (artdom.Article, error) {
	if uc == nil || uc.articles == nil {
		return artdom.Article{}, errors.New("catalog usecase/repo is nil")
	}

	a, err := artdom.New(name, unit, category, time.Now().UTC())
	if err != nil {
		return artdom.Article{}, err
	}

	existing, err := uc.articles.FindByNormalizedName(ctx, a.NormalizedName)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, artdom.ErrNotFound) {
		return artdom.Article{}, err
	}

	return uc.articles.Create(ctx, a)
}

func (uc *CatalogUsecase) Delete(ctx context.Context, id string) error {
	if uc == nil || uc.articles == nil {
		return errors.New("catalog usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return artdom.ErrInvalidID
	}
	return uc.articles.Delete(ctx, id)
}
