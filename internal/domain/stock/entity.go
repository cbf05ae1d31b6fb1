// internal/domain/stock/entity.go
package stock

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("stock record not found")
	ErrInvalidArticle  = errors.New("invalid stock article reference")
	ErrInvalidQuantity = errors.New("invalid stock quantity")
)

// Direction は在庫変動の向きです。
type Direction int

const (
	// Credit adds quantity (donation intake, delivery reversal).
	Credit Direction = iota + 1
	// Debit subtracts quantity (delivery fulfillment).
	Debit
)

func (d Direction) String() string {
	switch d {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	default:
		return "unknown"
	}
}

// Record は Article 1 件あたりの現在在庫を表します（articleId につき高々 1 件）。
// ArticleName / Unit は一覧表示用の非正規化コピーです。
type Record struct {
	ID          string
	ArticleID   string
	ArticleName string
	Unit        string
	Quantity    int64
	UpdatedAt   time.Time
}

// Movement は 1 明細分の在庫変動要求です。Quantity は常に正で、
// 向きは Direction が決めます。
type Movement struct {
	ArticleID   string
	ArticleName string
	Unit        string
	Quantity    int64
}

// Validate checks a movement before it is staged.
func (m Movement) Validate() error {
	if strings.TrimSpace(m.ArticleID) == "" {
		return ErrInvalidArticle
	}
	if m.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// InsufficientStockError は、デビットが在庫をマイナスに振らせてしまう場合の
// 致命的エラーです。呼び出し元はワークフロー全体を commit せずに中断します。
type InsufficientStockError struct {
	ArticleID   string
	ArticleName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	name := strings.TrimSpace(e.ArticleName)
	if name == "" {
		name = e.ArticleID
	}
	return fmt.Sprintf("insufficient stock for %q: available=%d requested=%d",
		name, e.Available, e.Requested)
}
