// internal/domain/article/repository_port.go
package article

import (
	"context"

	"reliefdesk/internal/domain/common"
)

// ------------------------------------------------------
// Repository Port for Article (articles コレクション)
// ------------------------------------------------------
//
// Firestore などの具体実装は adapters/out 側で実装し、
// ドメイン層からはこのインターフェースのみを参照します。
type RepositoryPort interface {
	// GetByID returns one Article by document ID.
	GetByID(ctx context.Context, id string) (Article, error)

	// FindByNormalizedName:
	// - 正規化済みの名前で 1 件検索します。
	// - 見つからなければ ErrNotFound。
	// - 正規化キーが衝突する既存データ不整合がある場合はクエリの先頭 1 件を返す
	//   （マージは行わない）。
	FindByNormalizedName(ctx context.Context, normalized string) (Article, error)

	// List returns the whole catalog ordered by name.
	List(ctx context.Context) ([]Article, error)

	// Create persists a new Article immediately (admin catalog path).
	Create(ctx context.Context, a Article) (Article, error)

	// StageCreate:
	// - 新規 Article の作成を呼び出し元のバッチに積みます（単独では commit しない）。
	// - 採番した ID を設定した Article を返します。
	StageCreate(b common.Batch, a Article) (Article, error)

	// Delete removes a catalog entry. Stock records are never touched here.
	Delete(ctx context.Context, id string) error
}
