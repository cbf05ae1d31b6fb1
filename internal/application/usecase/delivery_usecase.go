// internal/application/usecase/delivery_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"reliefdesk/internal/domain/common"
	deldom "reliefdesk/internal/domain/delivery"
	stockdom "reliefdesk/internal/domain/stock"
)

// DeliveryFulfillInput は UI/API 層から渡される配給ペイロードです。
// 配給は既存カタログからの選択のみなので、各明細は解決済みの ArticleID を持つ。
type DeliveryFulfillInput struct {
	RecipientName     string
	RecipientDocument string
	RecipientPhone    string
	RecipientAddress  string
	Items             []deldom.LineItem
	Responsible       string
	DeliveredAt       time.Time
	Notes             string
}

type DeliveryUsecase struct {
	deliveries deldom.RepositoryPort
	ledger     *StockLedger
	batches    common.BatchSource
	journal    MovementJournalPort // optional
}

func NewDeliveryUsecase(
	deliveries deldom.RepositoryPort,
	ledger *StockLedger,
	batches common.BatchSource,
	journal MovementJournalPort,
) *DeliveryUsecase {
	return &DeliveryUsecase{
		deliveries: deliveries,
		ledger:     ledger,
		batches:    batches,
		journal:    journal,
	}
}

// ============================================================
// Fulfillment
// ============================================================
//
// 明細ごとの在庫 debit と配給レコード作成を 1 バッチで commit する。
// InsufficientStock は配給全体を中断し、部分 debit もレコードも残さない。
// ここが本コアで最重要の正しさ要件。
func (uc *DeliveryUsecase) Fulfill(ctx context.Context, in DeliveryFulfillInput) (deldom.Delivery, error) {
	if uc == nil || uc.deliveries == nil || uc.ledger == nil || uc.batches == nil {
		return deldom.Delivery{}, errors.New("delivery usecase is not wired")
	}

	now := time.Now().UTC()
	d, err := deldom.New(in.RecipientName, in.Items, in.Responsible, in.DeliveredAt, now)
	if err != nil {
		return deldom.Delivery{}, err
	}
	d.RecipientDocument = strings.TrimSpace(in.RecipientDocument)
	d.RecipientPhone = strings.TrimSpace(in.RecipientPhone)
	d.RecipientAddress = strings.TrimSpace(in.RecipientAddress)
	d.Notes = strings.TrimSpace(in.Notes)

	b := uc.batches.NewBatch()

	movements := movementsFromDelivery(d)
	if err := uc.ledger.Apply(ctx, b, movements, stockdom.Debit); err != nil {
		return deldom.Delivery{}, err
	}

	d, err = uc.deliveries.StageCreate(b, d)
	if err != nil {
		return deldom.Delivery{}, err
	}

	if err := b.Commit(ctx); err != nil {
		return deldom.Delivery{}, err
	}
	log.Printf("[delivery_uc] fulfill ok id=%s items=%d", d.ID, len(d.Items))

	appendMovementJournal(ctx, uc.journal, "deliveries", d.ID, stockdom.Debit, movements)
	return d, nil
}

// ============================================================
// Reversal (delete)
// ============================================================
//
// 配給削除は debit の取り消しなので在庫を credit で戻す。
func (uc *DeliveryUsecase) Delete(ctx context.Context, id string) error {
	if uc == nil || uc.deliveries == nil || uc.ledger == nil || uc.batches == nil {
		return errors.New("delivery usecase is not wired")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return deldom.ErrInvalidID
	}

	d, err := uc.deliveries.GetByID(ctx, id)
	if err != nil {
		return err
	}

	b := uc.batches.NewBatch()

	movements := movementsFromDelivery(d)
	if err := uc.ledger.Apply(ctx, b, movements, stockdom.Credit); err != nil {
		return err
	}
	if err := uc.deliveries.StageDelete(b, d.ID); err != nil {
		return err
	}
	if err := b.Commit(ctx); err != nil {
		return err
	}
	log.Printf("[delivery_uc] delete ok id=%s", d.ID)

	appendMovementJournal(ctx, uc.journal, "deliveries", d.ID, stockdom.Credit, movements)
	return nil
}

// ============================================================
// Reads / descriptive update
// ============================================================

func (uc *DeliveryUsecase) GetByID(ctx context.Context, id string) (deldom.Delivery, error) {
	if uc == nil || uc.deliveries == nil {
		return deldom.Delivery{}, errors.New("delivery usecase is not wired")
	}
	return uc.deliveries.GetByID(ctx, strings.TrimSpace(id))
}

func (uc *DeliveryUsecase) List(ctx context.Context, from, to *time.Time) ([]deldom.Delivery, error) {
	if uc == nil || uc.deliveries == nil {
		return nil, errors.New("delivery usecase is not wired")
	}
	return uc.deliveries.List(ctx, from, to)
}

// Update は記述フィールドのみ。明細・在庫はこの経路では変わらない。
func (uc *DeliveryUsecase) Update(ctx context.Context, id string, patch deldom.UpdatePatch) (deldom.Delivery, error) {
	if uc == nil || uc.deliveries == nil {
		return deldom.Delivery{}, errors.New("delivery usecase is not wired")
	}
	return uc.deliveries.Update(ctx, strings.TrimSpace(id), patch)
}

func movementsFromDelivery(d deldom.Delivery) []stockdom.Movement {
	out := make([]stockdom.Movement, 0, len(d.Items))
	for _, it := range d.Items {
		out = append(out, stockdom.Movement{
			ArticleID:   it.ArticleID,
			ArticleName: it.Name,
			Unit:        it.Unit,
			Quantity:    it.Quantity,
		})
	}
	return out
}
