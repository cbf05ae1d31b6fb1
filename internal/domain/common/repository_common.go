// internal/domain/common/repository_common.go
package common

import "time"

// Timestamps は作成・更新時刻を共通で保持するための埋め込み用構造体
type Timestamps struct {
	CreatedAt time.Time  // 作成日時
	UpdatedAt *time.Time // 更新日時（未更新なら nil）
}

// Sort はソート指定の共通表現
type Sort struct {
	Column string
	Order  SortOrder
}

// SortOrder はソート順
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Page はオフセットページング指定
type Page struct {
	Number  int // 1-based
	PerPage int // 0 以下は実装側デフォルト
}

// PageResult はページング結果（ジェネリクスでアイテム型を受け取る）
type PageResult[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Page       int
	PerPage    int
}
