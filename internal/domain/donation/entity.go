// internal/domain/donation/entity.go
package donation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("donation not found")
	ErrInvalidID      = errors.New("invalid donation id")
	ErrInvalidDonor   = errors.New("invalid donor name")
	ErrInvalidKind    = errors.New("invalid donation kind")
	ErrInvalidAmount  = errors.New("invalid donation amount")
	ErrInvalidItems   = errors.New("invalid donation items")
	ErrItemsOnMoney   = errors.New("monetary donation cannot carry items")
	ErrAmountOnGoods  = errors.New("goods donation cannot carry a money amount")
	ErrEmptyItemName  = errors.New("donation item name is empty")
	ErrInvalidItemQty = errors.New("donation item quantity must be positive")
)

// Kind は寄付の種別です。KindMoney のみ金額を持ち、物資明細を持ちません。
type Kind string

const (
	KindMoney    Kind = "money"
	KindFood     Kind = "food"
	KindClothing Kind = "clothing"
	KindMedicine Kind = "medicine"
	KindOther    Kind = "other"
)

// ParseKind validates a caller-supplied kind tag.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindMoney:
		return KindMoney, nil
	case KindFood:
		return KindFood, nil
	case KindClothing:
		return KindClothing, nil
	case KindMedicine:
		return KindMedicine, nil
	case KindOther:
		return KindOther, nil
	default:
		return "", ErrInvalidKind
	}
}

// LineItem は正規化済みの寄付明細です。Name/Unit はカタログが正であり、
// intake 完了後は寄付者の入力表記は残りません。
type LineItem struct {
	ArticleID string
	Name      string
	Unit      string
	Quantity  int64
}

// RequestedItem は intake 前の、寄付者が入力したままの明細です。
type RequestedItem struct {
	Name     string
	Unit     string
	Quantity int64
}

// Donation は寄付 1 件のレコードです。
// 不変条件: Kind == KindMoney なら Items は空で Amount > 0、
// それ以外なら Amount == 0 で Items が 1 件以上。
type Donation struct {
	ID            string
	DonorName     string
	DonorDocument string
	DonorPhone    string
	DonorAddress  string
	Kind          Kind
	Amount        int64 // KindMoney のみ
	Items         []LineItem
	Notes         string
	CreatedAt     time.Time
}

// IsMonetary reports whether the donation never touches inventory.
func (d Donation) IsMonetary() bool { return d.Kind == KindMoney }

// New validates the variant shape common to both kinds. Items for goods
// donations are canonicalized by the intake workflow, not here.
func New(donorName string, kind Kind, amount int64, items []LineItem, now time.Time) (Donation, error) {
	name := strings.TrimSpace(donorName)
	if name == "" {
		return Donation{}, ErrInvalidDonor
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return Donation{}, err
	}

	if kind == KindMoney {
		if amount <= 0 {
			return Donation{}, ErrInvalidAmount
		}
		if len(items) > 0 {
			return Donation{}, ErrItemsOnMoney
		}
	} else {
		if amount != 0 {
			return Donation{}, ErrAmountOnGoods
		}
		if len(items) == 0 {
			return Donation{}, ErrInvalidItems
		}
		for _, it := range items {
			if strings.TrimSpace(it.ArticleID) == "" || strings.TrimSpace(it.Name) == "" {
				return Donation{}, ErrInvalidItems
			}
			if it.Quantity <= 0 {
				return Donation{}, ErrInvalidItemQty
			}
		}
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Donation{
		DonorName: name,
		Kind:      kind,
		Amount:    amount,
		Items:     items,
		CreatedAt: now,
	}, nil
}
