// internal/adapters/out/firestore/stock_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"reliefdesk/internal/domain/common"
	stockdom "reliefdesk/internal/domain/stock"
)

// ============================================================
// Firestore-based Stock Repository (stocks collection)
// ============================================================
//
// 1 article = 1 document。数量の増減は firestore.Increment による
// commit 時アトミック加算で行う。

type StockRepositoryFS struct {
	Client *firestore.Client
}

func NewStockRepositoryFS(client *firestore.Client) *StockRepositoryFS {
	return &StockRepositoryFS{Client: client}
}

func (r *StockRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("stocks")
}

// GetByArticleID returns the stock record owning the article, or ErrNotFound
// when the article has never moved through the ledger.
func (r *StockRepositoryFS) GetByArticleID(ctx context.Context, articleID string) (stockdom.Record, error) {
	if r.Client == nil {
		return stockdom.Record{}, errors.New("firestore client is nil")
	}
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return stockdom.Record{}, stockdom.ErrNotFound
	}

	it := r.col().Where("articleId", "==", articleID).Limit(1).Documents(ctx)
	defer it.Stop()

	doc, err := it.Next()
	if errors.Is(err, iterator.Done) {
		return stockdom.Record{}, stockdom.ErrNotFound
	}
	if err != nil {
		return stockdom.Record{}, err
	}
	return docToStock(doc)
}

// List returns every stock record ordered by article name.
func (r *StockRepositoryFS) List(ctx context.Context) ([]stockdom.Record, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col().OrderBy("articleName", firestore.Asc).Documents(ctx)
	defer it.Stop()

	out := []stockdom.Record{}
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := docToStock(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// StageCreate stages the first movement for an article as a new record.
func (r *StockRepositoryFS) StageCreate(b common.Batch, rec stockdom.Record) (stockdom.Record, error) {
	if r.Client == nil {
		return stockdom.Record{}, errors.New("firestore client is nil")
	}
	fb, err := asWriteBatch(b)
	if err != nil {
		return stockdom.Record{}, err
	}
	if strings.TrimSpace(rec.ArticleID) == "" {
		return stockdom.Record{}, stockdom.ErrInvalidArticle
	}

	ref := r.col().NewDoc()
	rec.ID = ref.ID
	if rec.Quantity < 0 {
		rec.Quantity = 0
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}

	fb.batch.Create(ref, stockToDoc(rec))
	fb.ops++
	return rec, nil
}

// StageAdjust stages an atomic increment (delta may be negative) on an
// existing record. The non-negative guard lives in the ledger, not here.
func (r *StockRepositoryFS) StageAdjust(b common.Batch, id string, delta int64) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	fb, err := asWriteBatch(b)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return stockdom.ErrNotFound
	}

	fb.batch.Update(r.col().Doc(id), []firestore.Update{
		{Path: "quantity", Value: firestore.Increment(delta)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	fb.ops++
	return nil
}

// ============================================================
// Mapping Helpers
// ============================================================

func docToStock(doc *firestore.DocumentSnapshot) (stockdom.Record, error) {
	var raw struct {
		ArticleID   string    `firestore:"articleId"`
		ArticleName string    `firestore:"articleName"`
		Unit        string    `firestore:"unit"`
		Quantity    int64     `firestore:"quantity"`
		UpdatedAt   time.Time `firestore:"updatedAt"`
	}
	if err := doc.DataTo(&raw); err != nil {
		return stockdom.Record{}, err
	}

	return stockdom.Record{
		ID:          doc.Ref.ID,
		ArticleID:   strings.TrimSpace(raw.ArticleID),
		ArticleName: strings.TrimSpace(raw.ArticleName),
		Unit:        strings.TrimSpace(raw.Unit),
		Quantity:    raw.Quantity,
		UpdatedAt:   raw.UpdatedAt.UTC(),
	}, nil
}

func stockToDoc(rec stockdom.Record) map[string]any {
	return map[string]any{
		"articleId":   strings.TrimSpace(rec.ArticleID),
		"articleName": strings.TrimSpace(rec.ArticleName),
		"unit":        strings.TrimSpace(rec.Unit),
		"quantity":    rec.Quantity,
		"updatedAt":   rec.UpdatedAt.UTC(),
	}
}
