// internal/domain/common/batch.go
package common

import "context"

// Batch は複数コレクションにまたがる書き込みを「全部反映 or 全部失敗」で
// コミットするための不透明ハンドルです。
//
// Repository 側は StageXxx 系メソッドで書き込みを積むだけで、
// コミットの責任は常にワークフロー（usecase）側にあります。
type Batch interface {
	// Commit applies every staged write atomically.
	Commit(ctx context.Context) error
}

// BatchSource hands out fresh batches. Implemented by the store adapter.
type BatchSource interface {
	NewBatch() Batch
}
