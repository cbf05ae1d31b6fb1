// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	artdom "reliefdesk/internal/domain/article"
	"reliefdesk/internal/domain/common"
	deldom "reliefdesk/internal/domain/delivery"
	dondom "reliefdesk/internal/domain/donation"
	stockdom "reliefdesk/internal/domain/stock"
)

// ============================================================
// In-memory store with Firestore-like batch semantics
// ============================================================
//
// Stage 系の書き込みは Commit まで読み取りから見えない。
// これで「チェックと commit の間は直列化されない」挙動（同名カタログの
// 重複作成）もテストで再現できる。

type memOp func()

type memBatch struct {
	store     *memStore
	ops       []memOp
	committed bool
}

func (b *memBatch) add(op memOp) { b.ops = append(b.ops, op) }

func (b *memBatch) Commit(_ context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	if b.store.commitErr != nil {
		return b.store.commitErr
	}
	for _, op := range b.ops {
		op()
	}
	b.committed = true
	return nil
}

type memStore struct {
	mu  sync.Mutex
	seq int

	articles   map[string]artdom.Article
	stocks     map[string]stockdom.Record
	donations  map[string]dondom.Donation
	deliveries map[string]deldom.Delivery

	commitErr error // set to force every Commit to fail
}

func newMemStore() *memStore {
	return &memStore{
		articles:   map[string]artdom.Article{},
		stocks:     map[string]stockdom.Record{},
		donations:  map[string]dondom.Donation{},
		deliveries: map[string]deldom.Delivery{},
	}
}

func (s *memStore) NewBatch() common.Batch { return &memBatch{store: s} }

func (s *memStore) nextID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("%s-%03d", prefix, s.seq)
}

func asMemBatch(b common.Batch) *memBatch { return b.(*memBatch) }

// ------------------------------------------------------------
// Article repository fake
// ------------------------------------------------------------

type memArticles struct{ store *memStore }

func (r *memArticles) GetByID(_ context.Context, id string) (artdom.Article, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.articles[id]
	if !ok {
		return artdom.Article{}, artdom.ErrNotFound
	}
	return a, nil
}

func (r *memArticles) FindByNormalizedName(_ context.Context, normalized string) (artdom.Article, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var found *artdom.Article
	for _, a := range r.store.articles {
		if a.NormalizedName != normalized {
			continue
		}
		// クエリの先頭 1 件相当として ID が最小のものを返す
		if found == nil || a.ID < found.ID {
			c := a
			found = &c
		}
	}
	if found == nil {
		return artdom.Article{}, artdom.ErrNotFound
	}
	return *found, nil
}

func (r *memArticles) List(_ context.Context) ([]artdom.Article, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]artdom.Article, 0, len(r.store.articles))
	for _, a := range r.store.articles {
		out = append(out, a)
	}
	return out, nil
}

func (r *memArticles) Create(_ context.Context, a artdom.Article) (artdom.Article, error) {
	a.ID = r.store.nextID("art")
	r.store.mu.Lock()
	r.store.articles[a.ID] = a
	r.store.mu.Unlock()
	return a, nil
}

func (r *memArticles) StageCreate(b common.Batch, a artdom.Article) (artdom.Article, error) {
	a.ID = r.store.nextID("art")
	staged := a
	asMemBatch(b).add(func() { r.store.articles[staged.ID] = staged })
	return a, nil
}

func (r *memArticles) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.articles[id]; !ok {
		return artdom.ErrNotFound
	}
	delete(r.store.articles, id)
	return nil
}

// ------------------------------------------------------------
// Stock repository fake
// ------------------------------------------------------------

type memStocks struct{ store *memStore }

func (r *memStocks) GetByArticleID(_ context.Context, articleID string) (stockdom.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rec := range r.store.stocks {
		if rec.ArticleID == articleID {
			return rec, nil
		}
	}
	return stockdom.Record{}, stockdom.ErrNotFound
}

func (r *memStocks) List(_ context.Context) ([]stockdom.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]stockdom.Record, 0, len(r.store.stocks))
	for _, rec := range r.store.stocks {
		out = append(out, rec)
	}
	return out, nil
}

func (r *memStocks) StageCreate(b common.Batch, rec stockdom.Record) (stockdom.Record, error) {
	rec.ID = r.store.nextID("stk")
	staged := rec
	asMemBatch(b).add(func() { r.store.stocks[staged.ID] = staged })
	return rec, nil
}

func (r *memStocks) StageAdjust(b common.Batch, id string, delta int64) error {
	asMemBatch(b).add(func() {
		rec, ok := r.store.stocks[id]
		if !ok {
			return
		}
		rec.Quantity += delta
		rec.UpdatedAt = time.Now().UTC()
		r.store.stocks[id] = rec
	})
	return nil
}

// seed inserts a committed stock record directly (test setup).
func (r *memStocks) seed(articleID, name, unit string, qty int64) stockdom.Record {
	rec := stockdom.Record{
		ID:          r.store.nextID("stk"),
		ArticleID:   articleID,
		ArticleName: name,
		Unit:        unit,
		Quantity:    qty,
		UpdatedAt:   time.Now().UTC(),
	}
	r.store.mu.Lock()
	r.store.stocks[rec.ID] = rec
	r.store.mu.Unlock()
	return rec
}

// ------------------------------------------------------------
// Donation repository fake
// ------------------------------------------------------------

type memDonations struct{ store *memStore }

func (r *memDonations) GetByID(_ context.Context, id string) (dondom.Donation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.donations[id]
	if !ok {
		return dondom.Donation{}, dondom.ErrNotFound
	}
	return d, nil
}

func (r *memDonations) List(_ context.Context, from, to *time.Time) ([]dondom.Donation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []dondom.Donation{}
	for _, d := range r.store.donations {
		if from != nil && d.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && d.CreatedAt.After(*to) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *memDonations) Update(_ context.Context, id string, patch dondom.UpdatePatch) (dondom.Donation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.donations[id]
	if !ok {
		return dondom.Donation{}, dondom.ErrNotFound
	}
	if patch.DonorName != nil {
		d.DonorName = strings.TrimSpace(*patch.DonorName)
	}
	if patch.DonorDocument != nil {
		d.DonorDocument = strings.TrimSpace(*patch.DonorDocument)
	}
	if patch.DonorPhone != nil {
		d.DonorPhone = strings.TrimSpace(*patch.DonorPhone)
	}
	if patch.DonorAddress != nil {
		d.DonorAddress = strings.TrimSpace(*patch.DonorAddress)
	}
	if patch.Notes != nil {
		d.Notes = strings.TrimSpace(*patch.Notes)
	}
	r.store.donations[id] = d
	return d, nil
}

func (r *memDonations) StageCreate(b common.Batch, d dondom.Donation) (dondom.Donation, error) {
	d.ID = r.store.nextID("don")
	staged := d
	asMemBatch(b).add(func() { r.store.donations[staged.ID] = staged })
	return d, nil
}

func (r *memDonations) StageDelete(b common.Batch, id string) error {
	asMemBatch(b).add(func() { delete(r.store.donations, id) })
	return nil
}

// ------------------------------------------------------------
// Delivery repository fake
// ------------------------------------------------------------

type memDeliveries struct{ store *memStore }

func (r *memDeliveries) GetByID(_ context.Context, id string) (deldom.Delivery, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.deliveries[id]
	if !ok {
		return deldom.Delivery{}, deldom.ErrNotFound
	}
	return d, nil
}

func (r *memDeliveries) List(_ context.Context, from, to *time.Time) ([]deldom.Delivery, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := []deldom.Delivery{}
	for _, d := range r.store.deliveries {
		if from != nil && d.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && d.CreatedAt.After(*to) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *memDeliveries) Update(_ context.Context, id string, patch deldom.UpdatePatch) (deldom.Delivery, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.deliveries[id]
	if !ok {
		return deldom.Delivery{}, deldom.ErrNotFound
	}
	if patch.RecipientName != nil {
		d.RecipientName = strings.TrimSpace(*patch.RecipientName)
	}
	if patch.Responsible != nil {
		d.Responsible = strings.TrimSpace(*patch.Responsible)
	}
	if patch.DeliveredAt != nil {
		d.DeliveredAt = patch.DeliveredAt.UTC()
	}
	if patch.Notes != nil {
		d.Notes = strings.TrimSpace(*patch.Notes)
	}
	r.store.deliveries[id] = d
	return d, nil
}

func (r *memDeliveries) StageCreate(b common.Batch, d deldom.Delivery) (deldom.Delivery, error) {
	d.ID = r.store.nextID("del")
	staged := d
	asMemBatch(b).add(func() { r.store.deliveries[staged.ID] = staged })
	return d, nil
}

func (r *memDeliveries) StageDelete(b common.Batch, id string) error {
	asMemBatch(b).add(func() { delete(r.store.deliveries, id) })
	return nil
}

// ------------------------------------------------------------
// Movement journal fake
// ------------------------------------------------------------

type memJournal struct {
	mu      sync.Mutex
	entries []MovementJournalEntry
	err     error
}

func (j *memJournal) Append(_ context.Context, entries []MovementJournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.entries = append(j.entries, entries...)
	return nil
}

// ------------------------------------------------------------
// Wiring helper
// ------------------------------------------------------------

type fixture struct {
	store      *memStore
	articles   *memArticles
	stocks     *memStocks
	donations  *memDonations
	deliveries *memDeliveries
	journal    *memJournal

	resolver   *CatalogResolver
	ledger     *StockLedger
	donationUC *DonationUsecase
	deliveryUC *DeliveryUsecase
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:      store,
		articles:   &memArticles{store: store},
		stocks:     &memStocks{store: store},
		donations:  &memDonations{store: store},
		deliveries: &memDeliveries{store: store},
		journal:    &memJournal{},
	}
	f.resolver = NewCatalogResolver(f.articles)
	f.ledger = NewStockLedger(f.stocks)
	f.donationUC = NewDonationUsecase(f.donations, f.resolver, f.ledger, store, f.journal)
	f.deliveryUC = NewDeliveryUsecase(f.deliveries, f.ledger, store, f.journal)
	return f
}

// seedArticle inserts a committed catalog entry directly (test setup).
func (f *fixture) seedArticle(name, unit string) artdom.Article {
	a, _ := artdom.New(name, unit, "", time.Now().UTC())
	a.ID = f.store.nextID("art")
	f.store.mu.Lock()
	f.store.articles[a.ID] = a
	f.store.mu.Unlock()
	return a
}

func (f *fixture) stockFor(articleID string) (stockdom.Record, bool) {
	rec, err := f.stocks.GetByArticleID(context.Background(), articleID)
	return rec, err == nil
}
