// internal/application/usecase/ports.go
package usecase

import (
	"context"
	"io"
)

// MovementJournalEntry は確定済み在庫変動 1 件の監査行です。
type MovementJournalEntry struct {
	ArticleID     string
	ArticleName   string
	Direction     string // "credit" | "debit"
	Quantity      int64
	RefCollection string // "donations" | "deliveries"
	RefID         string
}

// MovementJournalPort は commit 成功後に呼ばれる追記専用の監査ログです。
// best-effort: 失敗してもワークフローは失敗させず、ログに残すだけ。
type MovementJournalPort interface {
	Append(ctx context.Context, entries []MovementJournalEntry) error
}

// WelcomeMailerPort sends the volunteer welcome mail (best-effort).
type WelcomeMailerPort interface {
	SendWelcome(ctx context.Context, name, email string) error
}

// VisitPhotoStorePort stores a visit-report photo and returns its public URL.
type VisitPhotoStorePort interface {
	Upload(ctx context.Context, visitID, filename, contentType string, r io.Reader) (string, error)
}
