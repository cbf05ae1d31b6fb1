// internal/domain/stock/repository_port.go
package stock

import (
	"context"

	"reliefdesk/internal/domain/common"
)

// ------------------------------------------------------
// Repository Port for Stock (stocks コレクション)
// ------------------------------------------------------
//
// 残量チェック（read）とバッチへの反映（stage）は分離されています。
// commit 時の増減はドキュメント単位でアトミックですが、チェック自体は
// 並行呼び出し間で直列化されない点に注意（store の batch 保証のみ）。
type RepositoryPort interface {
	// GetByArticleID returns the stock record owning the given article.
	// ErrNotFound when the article has never been stocked.
	GetByArticleID(ctx context.Context, articleID string) (Record, error)

	// List returns every stock record ordered by article name.
	List(ctx context.Context) ([]Record, error)

	// StageCreate stages the first movement for an article as a brand-new
	// record. Returns the record with its assigned ID.
	StageCreate(b common.Batch, rec Record) (Record, error)

	// StageAdjust stages an atomic quantity increment (delta may be negative)
	// on an existing record.
	StageAdjust(b common.Batch, id string, delta int64) error
}
