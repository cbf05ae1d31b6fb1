// internal/application/usecase/ledger.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"reliefdesk/internal/domain/common"
	stockdom "reliefdesk/internal/domain/stock"
)

// ============================================================
// Stock Ledger
// ============================================================
//
// 寄付（credit）と配給（debit）の両ワークフローが共有する在庫反映の唯一の入口。
//
// - 自分では commit しない。全ての書き込みは呼び出し元のバッチに積まれ、
//   寄付・配給レコード本体と同時に反映されるか、全く反映されないかのどちらか。
// - debit は残量チェックを commit 前の read で行う。チェックと commit の間は
//   並行呼び出しに対して直列化されない（store のバッチ保証のみ）。
type StockLedger struct {
	stocks stockdom.RepositoryPort
}

func NewStockLedger(stocks stockdom.RepositoryPort) *StockLedger {
	return &StockLedger{stocks: stocks}
}

// Apply stages one signed quantity change per article into b.
//
// credit:
//   - 既存レコードがあれば quantity += m.Quantity をアトミック加算として stage
//   - 無ければ初回入庫としてレコード作成を stage
//
// debit:
//   - レコードが無ければ常に InsufficientStockError（未入庫の物資は配給不可）
//   - 残量 < 要求量なら InsufficientStockError（article 名と数量を添えて返す）
//   - それ以外は quantity -= m.Quantity を stage
//
// 同一 article が複数明細に現れる場合は正味 1 件に束ねてから処理する。
// stage 済みの増減はバッチ commit まで read に映らないため、明細ごとに
// チェックすると同一 article の 2 行目以降が素通りしてしまう。
//
// いずれかの明細で失敗した場合、それまでに stage 済みの書き込みは commit され
// ないまま破棄される前提（呼び出し元がバッチごと放棄する）。
func (l *StockLedger) Apply(
	ctx context.Context,
	b common.Batch,
	movements []stockdom.Movement,
	dir stockdom.Direction,
) error {
	if l == nil || l.stocks == nil {
		return errors.New("stock ledger/repo is nil")
	}
	if b == nil {
		return errors.New("stock ledger: batch is nil")
	}
	if dir != stockdom.Credit && dir != stockdom.Debit {
		return errors.New("stock ledger: unknown direction")
	}

	merged := make([]stockdom.Movement, 0, len(movements))
	index := make(map[string]int, len(movements))
	for _, m := range movements {
		if err := m.Validate(); err != nil {
			return err
		}
		id := strings.TrimSpace(m.ArticleID)
		if i, ok := index[id]; ok {
			merged[i].Quantity += m.Quantity
			continue
		}
		index[id] = len(merged)
		m.ArticleID = id
		merged = append(merged, m)
	}

	for _, m := range merged {
		rec, err := l.stocks.GetByArticleID(ctx, m.ArticleID)
		switch {
		case errors.Is(err, stockdom.ErrNotFound):
			if dir == stockdom.Debit {
				return &stockdom.InsufficientStockError{
					ArticleID:   m.ArticleID,
					ArticleName: m.ArticleName,
					Available:   0,
					Requested:   m.Quantity,
				}
			}
			// first movement for this article: create the record
			if _, err := l.stocks.StageCreate(b, stockdom.Record{
				ArticleID:   m.ArticleID,
				ArticleName: strings.TrimSpace(m.ArticleName),
				Unit:        strings.TrimSpace(m.Unit),
				Quantity:    m.Quantity,
				UpdatedAt:   time.Now().UTC(),
			}); err != nil {
				return err
			}

		case err != nil:
			return err

		default:
			delta := m.Quantity
			if dir == stockdom.Debit {
				if rec.Quantity < m.Quantity {
					return &stockdom.InsufficientStockError{
						ArticleID:   rec.ArticleID,
						ArticleName: rec.ArticleName,
						Available:   rec.Quantity,
						Requested:   m.Quantity,
					}
				}
				delta = -m.Quantity
			}
			if err := l.stocks.StageAdjust(b, rec.ID, delta); err != nil {
				return err
			}
		}
	}

	log.Printf("[ledger] staged %s x%d movement(s)", dir, len(merged))
	return nil
}
