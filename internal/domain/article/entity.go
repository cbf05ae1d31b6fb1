// internal/domain/article/entity.go
package article

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("article not found")
	ErrInvalidID   = errors.New("invalid article id")
	ErrInvalidName = errors.New("invalid article name")
)

// DefaultUnit は単位未指定の寄付明細に割り当てる単位です。
const DefaultUnit = "und"

// DefaultCategory is assigned to articles auto-created during donation intake.
const DefaultCategory = "General"

// Article は配給物資カタログの 1 エントリを表します。
// 期待値:
// - Name: 表示名（入力のトリム済みテキスト）
// - NormalizedName: trim + lowercase した重複判定キー（1 キーにつき高々 1 件）
// - Unit/Category: カタログが正。寄付者の入力した表記より常に優先される。
type Article struct {
	ID             string
	Name           string
	NormalizedName string
	Unit           string
	Category       string
	CreatedAt      time.Time
}

// Normalize computes the dedup key for an article name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds an Article from operator/donor input.
// Name must be non-empty after trimming; unit and category fall back to defaults.
func New(name, unit, category string, now time.Time) (Article, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Article{}, ErrInvalidName
	}

	u := strings.TrimSpace(unit)
	if u == "" {
		u = DefaultUnit
	}
	c := strings.TrimSpace(category)
	if c == "" {
		c = DefaultCategory
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Article{
		Name:           trimmed,
		NormalizedName: Normalize(trimmed),
		Unit:           u,
		Category:       c,
		CreatedAt:      now,
	}, nil
}
