// internal/application/usecase/donation_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	artdom "reliefdesk/internal/domain/article"
	"reliefdesk/internal/domain/common"
	dondom "reliefdesk/internal/domain/donation"
	stockdom "reliefdesk/internal/domain/stock"
)

// DonationIntakeInput は UI/API 層から渡される寄付ペイロードです。
// Items は寄付者の入力のまま。intake がカタログ正準形に置き換えます。
type DonationIntakeInput struct {
	DonorName     string
	DonorDocument string
	DonorPhone    string
	DonorAddress  string
	Kind          string
	Amount        int64
	Items         []dondom.RequestedItem
	Notes         string
}

type DonationUsecase struct {
	donations dondom.RepositoryPort
	resolver  *CatalogResolver
	ledger    *StockLedger
	batches   common.BatchSource
	journal   MovementJournalPort // optional
}

func NewDonationUsecase(
	donations dondom.RepositoryPort,
	resolver *CatalogResolver,
	ledger *StockLedger,
	batches common.BatchSource,
	journal MovementJournalPort,
) *DonationUsecase {
	return &DonationUsecase{
		donations: donations,
		resolver:  resolver,
		ledger:    ledger,
		batches:   batches,
		journal:   journal,
	}
}

// ============================================================
// Intake
// ============================================================
//
// 物資寄付は 1 バッチで
//   (a) 無ければ Article 作成
//   (b) 在庫 credit
//   (c) 正準化済み明細での寄付レコード作成
// を全てまとめて commit する。途中のどの失敗でも何も残らない。
//
// 金銭寄付は在庫に一切触れず、レコード保存のみ。
func (uc *DonationUsecase) Intake(ctx context.Context, in DonationIntakeInput) (dondom.Donation, error) {
	if uc == nil || uc.donations == nil || uc.batches == nil {
		return dondom.Donation{}, errors.New("donation usecase is not wired")
	}

	kind, err := dondom.ParseKind(in.Kind)
	if err != nil {
		return dondom.Donation{}, err
	}

	now := time.Now().UTC()
	b := uc.batches.NewBatch()

	// ----- monetary: no catalog, no ledger -----
	if kind == dondom.KindMoney {
		if len(in.Items) > 0 {
			return dondom.Donation{}, dondom.ErrItemsOnMoney
		}
		d, err := dondom.New(in.DonorName, kind, in.Amount, nil, now)
		if err != nil {
			return dondom.Donation{}, err
		}
		fillDonorFields(&d, in)

		d, err = uc.donations.StageCreate(b, d)
		if err != nil {
			return dondom.Donation{}, err
		}
		if err := b.Commit(ctx); err != nil {
			return dondom.Donation{}, err
		}
		log.Printf("[donation_uc] intake ok id=%s kind=%s amount=%d", d.ID, d.Kind, d.Amount)
		return d, nil
	}

	// ----- goods: resolve -> credit -> persist, one batch -----
	if uc.resolver == nil || uc.ledger == nil {
		return dondom.Donation{}, errors.New("donation usecase is not wired")
	}
	if in.Amount != 0 {
		return dondom.Donation{}, dondom.ErrAmountOnGoods
	}
	if len(in.Items) == 0 {
		return dondom.Donation{}, dondom.ErrInvalidItems
	}

	items := make([]dondom.LineItem, 0, len(in.Items))
	movements := make([]stockdom.Movement, 0, len(in.Items))
	// 同一ペイロード内で同名（正規化後）の明細が重複しても Article は 1 件。
	// stage 済みの作成は commit まで照合 read に映らないので、解決結果を
	// この intake の間だけ覚えておく。
	resolved := make(map[string]artdom.Article, len(in.Items))
	for _, req := range in.Items {
		if strings.TrimSpace(req.Name) == "" {
			return dondom.Donation{}, dondom.ErrEmptyItemName
		}
		if req.Quantity <= 0 {
			return dondom.Donation{}, dondom.ErrInvalidItemQty
		}

		art, ok := resolved[artdom.Normalize(req.Name)]
		if !ok {
			var err error
			art, err = uc.resolver.Resolve(ctx, b, req.Name, req.Unit)
			if err != nil {
				return dondom.Donation{}, err
			}
			resolved[artdom.Normalize(req.Name)] = art
		}

		// カタログの表記が正。寄付者の入力した name/unit はここで消える。
		items = append(items, dondom.LineItem{
			ArticleID: art.ID,
			Name:      art.Name,
			Unit:      art.Unit,
			Quantity:  req.Quantity,
		})
		movements = append(movements, stockdom.Movement{
			ArticleID:   art.ID,
			ArticleName: art.Name,
			Unit:        art.Unit,
			Quantity:    req.Quantity,
		})
	}

	if err := uc.ledger.Apply(ctx, b, movements, stockdom.Credit); err != nil {
		return dondom.Donation{}, err
	}

	d, err := dondom.New(in.DonorName, kind, 0, items, now)
	if err != nil {
		return dondom.Donation{}, err
	}
	fillDonorFields(&d, in)

	d, err = uc.donations.StageCreate(b, d)
	if err != nil {
		return dondom.Donation{}, err
	}

	if err := b.Commit(ctx); err != nil {
		return dondom.Donation{}, err
	}
	log.Printf("[donation_uc] intake ok id=%s kind=%s items=%d", d.ID, d.Kind, len(d.Items))

	uc.appendJournal(ctx, "donations", d.ID, stockdom.Credit, movements)
	return d, nil
}

// ============================================================
// Reversal (delete)
// ============================================================
//
// 寄付削除は観測された挙動どおり在庫を credit で戻す
// （削除をデータ訂正とみなし、棚の物資は配給まで数え続ける）。
func (uc *DonationUsecase) Delete(ctx context.Context, id string) error {
	if uc == nil || uc.donations == nil || uc.batches == nil {
		return errors.New("donation usecase is not wired")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return dondom.ErrInvalidID
	}

	d, err := uc.donations.GetByID(ctx, id)
	if err != nil {
		return err
	}

	b := uc.batches.NewBatch()

	var movements []stockdom.Movement
	if !d.IsMonetary() {
		if uc.ledger == nil {
			return errors.New("donation usecase is not wired")
		}
		movements = movementsFromDonation(d)
		if err := uc.ledger.Apply(ctx, b, movements, stockdom.Credit); err != nil {
			return err
		}
	}

	if err := uc.donations.StageDelete(b, d.ID); err != nil {
		return err
	}
	if err := b.Commit(ctx); err != nil {
		return err
	}
	log.Printf("[donation_uc] delete ok id=%s kind=%s", d.ID, d.Kind)

	uc.appendJournal(ctx, "donations", d.ID, stockdom.Credit, movements)
	return nil
}

// ============================================================
// Reads / descriptive update
// ============================================================

func (uc *DonationUsecase) GetByID(ctx context.Context, id string) (dondom.Donation, error) {
	if uc == nil || uc.donations == nil {
		return dondom.Donation{}, errors.New("donation usecase is not wired")
	}
	return uc.donations.GetByID(ctx, strings.TrimSpace(id))
}

func (uc *DonationUsecase) List(ctx context.Context, from, to *time.Time) ([]dondom.Donation, error) {
	if uc == nil || uc.donations == nil {
		return nil, errors.New("donation usecase is not wired")
	}
	return uc.donations.List(ctx, from, to)
}

// Update は記述フィールドのみを書き換える。明細・在庫には一切触れない
// （既知の制限として保存。明細を変えたい場合は削除→再登録）。
func (uc *DonationUsecase) Update(ctx context.Context, id string, patch dondom.UpdatePatch) (dondom.Donation, error) {
	if uc == nil || uc.donations == nil {
		return dondom.Donation{}, errors.New("donation usecase is not wired")
	}
	return uc.donations.Update(ctx, strings.TrimSpace(id), patch)
}

// ============================================================
// Helpers
// ============================================================

func fillDonorFields(d *dondom.Donation, in DonationIntakeInput) {
	d.DonorDocument = strings.TrimSpace(in.DonorDocument)
	d.DonorPhone = strings.TrimSpace(in.DonorPhone)
	d.DonorAddress = strings.TrimSpace(in.DonorAddress)
	d.Notes = strings.TrimSpace(in.Notes)
}

func movementsFromDonation(d dondom.Donation) []stockdom.Movement {
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

// appendJournal writes the audit rows after a successful commit. Best-effort:
// journal being down must never fail an already-committed workflow.
func (uc *DonationUsecase) appendJournal(
	ctx context.Context,
	refCollection, refID string,
	dir stockdom.Direction,
	movements []stockdom.Movement,
) {
	appendMovementJournal(ctx, uc.journal, refCollection, refID, dir, movements)
}

func appendMovementJournal(
	ctx context.Context,
	journal MovementJournalPort,
	refCollection, refID string,
	dir stockdom.Direction,
	movements []stockdom.Movement,
) {
	if journal == nil || len(movements) == 0 {
		return
	}
	entries := make([]MovementJournalEntry, 0, len(movements))
	for _, m := range movements {
		entries = append(entries, MovementJournalEntry{
			ArticleID:     m.ArticleID,
			ArticleName:   m.ArticleName,
			Direction:     dir.String(),
			Quantity:      m.Quantity,
			RefCollection: refCollection,
			RefID:         refID,
		})
	}
	if err := journal.Append(ctx, entries); err != nil {
		log.Printf("[journal] WARN: append failed ref=%s/%s: %v", refCollection, refID, err)
	}
}
