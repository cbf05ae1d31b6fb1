// internal/domain/delivery/repository_port.go
package delivery

import (
	"context"
	"time"

	"reliefdesk/internal/domain/common"
)

// UpdatePatch は在庫に触れない記述フィールドのみの部分更新です。
type UpdatePatch struct {
	RecipientName     *string
	RecipientDocument *string
	RecipientPhone    *string
	RecipientAddress  *string
	Responsible       *string
	DeliveredAt       *time.Time
	Notes             *string
}

// Repository Port for Delivery (deliveries コレクション)
type RepositoryPort interface {
	GetByID(ctx context.Context, id string) (Delivery, error)

	List(ctx context.Context, from, to *time.Time) ([]Delivery, error)

	// Update applies a descriptive-only patch; the ledger is never touched.
	Update(ctx context.Context, id string, patch UpdatePatch) (Delivery, error)

	StageCreate(b common.Batch, d Delivery) (Delivery, error)

	StageDelete(b common.Batch, id string) error
}
