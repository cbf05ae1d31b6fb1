// internal/domain/donation/repository_port.go
package donation

import (
	"context"
	"time"

	"reliefdesk/internal/domain/common"
)

// UpdatePatch は在庫に触れない記述フィールドのみの部分更新です。
// 明細（Items）や金額の変更はここでは受け付けません。変更したい場合は
// 削除（巻き戻し）→ 再登録で台帳を通します。
type UpdatePatch struct {
	DonorName     *string
	DonorDocument *string
	DonorPhone    *string
	DonorAddress  *string
	Notes         *string
}

// Repository Port for Donation (donations コレクション)
type RepositoryPort interface {
	GetByID(ctx context.Context, id string) (Donation, error)

	// List returns donations created inside the optional time range,
	// newest first.
	List(ctx context.Context, from, to *time.Time) ([]Donation, error)

	// Update applies a descriptive-only patch. Inventory is never adjusted
	// by this path.
	Update(ctx context.Context, id string, patch UpdatePatch) (Donation, error)

	// StageCreate stages creation into the caller's batch and returns the
	// donation with its assigned ID.
	StageCreate(b common.Batch, d Donation) (Donation, error)

	// StageDelete stages deletion into the caller's batch.
	StageDelete(b common.Batch, id string) error
}
