// internal/domain/delivery/entity.go
package delivery

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound         = errors.New("delivery not found")
	ErrInvalidID        = errors.New("invalid delivery id")
	ErrInvalidRecipient = errors.New("invalid delivery recipient")
	ErrInvalidItems     = errors.New("invalid delivery items")
	ErrInvalidItemQty   = errors.New("delivery item quantity must be positive")
)

// LineItem は配給明細です。配給は既存カタログからの選択のみで、
// Article の自動作成は行いません（ArticleID 必須）。
type LineItem struct {
	ArticleID string
	Name      string
	Unit      string
	Quantity  int64
}

// Delivery は配給 1 件のレコードです。
type Delivery struct {
	ID                string
	RecipientName     string
	RecipientDocument string
	RecipientPhone    string
	RecipientAddress  string
	Items             []LineItem
	Responsible       string
	DeliveredAt       time.Time
	Notes             string
	CreatedAt         time.Time
}

// New validates a delivery before fulfillment debits stock.
func New(recipientName string, items []LineItem, responsible string, deliveredAt, now time.Time) (Delivery, error) {
	name := strings.TrimSpace(recipientName)
	if name == "" {
		return Delivery{}, ErrInvalidRecipient
	}
	if len(items) == 0 {
		return Delivery{}, ErrInvalidItems
	}
	for _, it := range items {
		if strings.TrimSpace(it.ArticleID) == "" {
			return Delivery{}, ErrInvalidItems
		}
		if it.Quantity <= 0 {
			return Delivery{}, ErrInvalidItemQty
		}
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}
	if deliveredAt.IsZero() {
		deliveredAt = now
	}

	return Delivery{
		RecipientName: name,
		Items:         items,
		Responsible:   strings.TrimSpace(responsible),
		DeliveredAt:   deliveredAt.UTC(),
		CreatedAt:     now,
	}, nil
}
