// internal/adapters/out/firestore/batch.go
package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"

	"reliefdesk/internal/domain/common"
)

// ============================================================
// Atomic batch over Firestore WriteBatch
// ============================================================
//
// common.Batch の Firestore 実装。Repository の StageXxx が書き込みを積み、
// ワークフロー側が Commit する。Commit は Firestore 側で all-or-nothing。

type BatchFactory struct {
	Client *firestore.Client
}

func NewBatchFactory(client *firestore.Client) *BatchFactory {
	return &BatchFactory{Client: client}
}

func (f *BatchFactory) NewBatch() common.Batch {
	return &WriteBatch{batch: f.Client.Batch()}
}

type WriteBatch struct {
	batch *firestore.WriteBatch
	ops   int
}

// Commit applies every staged write atomically. Committing an empty batch is
// a no-op (Firestore rejects empty commits).
func (b *WriteBatch) Commit(ctx context.Context) error {
	if b == nil || b.batch == nil {
		return errors.New("firestore batch is nil")
	}
	if b.ops == 0 {
		return nil
	}
	_, err := b.batch.Commit(ctx)
	return err
}

// asWriteBatch unwraps the opaque handle for this adapter's repositories.
func asWriteBatch(b common.Batch) (*WriteBatch, error) {
	fb, ok := b.(*WriteBatch)
	if !ok || fb == nil || fb.batch == nil {
		return nil, errors.New("batch is not a firestore write batch")
	}
	return fb, nil
}
