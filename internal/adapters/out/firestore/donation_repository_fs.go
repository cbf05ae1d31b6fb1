// internal/adapters/out/firestore/donation_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"reliefdesk/internal/domain/common"
	dondom "reliefdesk/internal/domain/donation"
)

// ============================================================
// Firestore-based Donation Repository (donations collection)
// ============================================================

type DonationRepositoryFS struct {
	Client *firestore.Client
}

func NewDonationRepositoryFS(client *firestore.Client) *DonationRepositoryFS {
	return &DonationRepositoryFS{Client: client}
}

func (r *DonationRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("donations")
}

func (r *DonationRepositoryFS) GetByID(ctx context.Context, id string) (dondom.Donation, error) {
	if r.Client == nil {
		return dondom.Donation{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return dondom.Donation{}, dondom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return dondom.Donation{}, dondom.ErrNotFound
	}
	if err != nil {
		return dondom.Donation{}, err
	}
	return docToDonation(snap)
}

// List returns donations newest first, optionally bounded by createdAt.
func (r *DonationRepositoryFS) List(ctx context.Context, from, to *time.Time) ([]dondom.Donation, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	q := r.col().Query
	if from != nil {
		q = q.Where("createdAt", ">=", from.UTC())
	}
	if to != nil {
		q = q.Where("createdAt", "<", to.UTC())
	}
	q = q.OrderBy("createdAt", firestore.Desc)

	it := q.Documents(ctx)
	defer it.Stop()

	out := []dondom.Donation{}
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		d, err := docToDonation(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Update applies a descriptive-only patch. Items/amount are never writable
// through this path.
func (r *DonationRepositoryFS) Update(ctx context.Context, id string, patch dondom.UpdatePatch) (dondom.Donation, error) {
	if r.Client == nil {
		return dondom.Donation{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return dondom.Donation{}, dondom.ErrNotFound
	}

	ref := r.col().Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return dondom.Donation{}, dondom.ErrNotFound
	} else if err != nil {
		return dondom.Donation{}, err
	}

	var updates []firestore.Update
	setStr := func(path string, p *string) {
		if p != nil {
			updates = append(updates, firestore.Update{Path: path, Value: strings.TrimSpace(*p)})
		}
	}
	setStr("donorName", patch.DonorName)
	setStr("donorDocument", patch.DonorDocument)
	setStr("donorPhone", patch.DonorPhone)
	setStr("donorAddress", patch.DonorAddress)
	setStr("notes", patch.Notes)

	if len(updates) > 0 {
		if _, err := ref.Update(ctx, updates); err != nil {
			if status.Code(err) == codes.NotFound {
				return dondom.Donation{}, dondom.ErrNotFound
			}
			return dondom.Donation{}, err
		}
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return dondom.Donation{}, err
	}
	return docToDonation(snap)
}

// StageCreate assigns a document ID and stages the create into the caller's
// batch. The workflow owns the commit.
func (r *DonationRepositoryFS) StageCreate(b common.Batch, d dondom.Donation) (dondom.Donation, error) {
	if r.Client == nil {
		return dondom.Donation{}, errors.New("firestore client is nil")
	}
	fb, err := asWriteBatch(b)
	if err != nil {
		return dondom.Donation{}, err
	}

	ref := r.col().NewDoc()
	d.ID = ref.ID
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	fb.batch.Create(ref, donationToDoc(d))
	fb.ops++
	return d, nil
}

func (r *DonationRepositoryFS) StageDelete(b common.Batch, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	fb, err := asWriteBatch(b)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return dondom.ErrNotFound
	}

	fb.batch.Delete(r.col().Doc(id))
	fb.ops++
	return nil
}

// ============================================================
// Mapping Helpers
// ============================================================

type lineItemDoc struct {
	ArticleID string `firestore:"articleId"`
	Name      string `firestore:"name"`
	Unit      string `firestore:"unit"`
	Quantity  int64  `firestore:"quantity"`
}

func docToDonation(doc *firestore.DocumentSnapshot) (dondom.Donation, error) {
	var raw struct {
		DonorName     string        `firestore:"donorName"`
		DonorDocument string        `firestore:"donorDocument"`
		DonorPhone    string        `firestore:"donorPhone"`
		DonorAddress  string        `firestore:"donorAddress"`
		Kind          string        `firestore:"kind"`
		Amount        int64         `firestore:"amount"`
		Items         []lineItemDoc `firestore:"items"`
		Notes         string        `firestore:"notes"`
		CreatedAt     time.Time     `firestore:"createdAt"`
	}
	if err := doc.DataTo(&raw); err != nil {
		return dondom.Donation{}, err
	}

	items := make([]dondom.LineItem, 0, len(raw.Items))
	for _, it := range raw.Items {
		items = append(items, dondom.LineItem{
			ArticleID: strings.TrimSpace(it.ArticleID),
			Name:      strings.TrimSpace(it.Name),
			Unit:      strings.TrimSpace(it.Unit),
			Quantity:  it.Quantity,
		})
	}

	return dondom.Donation{
		ID:            doc.Ref.ID,
		DonorName:     strings.TrimSpace(raw.DonorName),
		DonorDocument: strings.TrimSpace(raw.DonorDocument),
		DonorPhone:    strings.TrimSpace(raw.DonorPhone),
		DonorAddress:  strings.TrimSpace(raw.DonorAddress),
		Kind:          dondom.Kind(strings.TrimSpace(raw.Kind)),
		Amount:        raw.Amount,
		Items:         items,
		Notes:         strings.TrimSpace(raw.Notes),
		CreatedAt:     raw.CreatedAt.UTC(),
	}, nil
}

func donationToDoc(d dondom.Donation) map[string]any {
	items := make([]lineItemDoc, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, lineItemDoc{
			ArticleID: strings.TrimSpace(it.ArticleID),
			Name:      strings.TrimSpace(it.Name),
			Unit:      strings.TrimSpace(it.Unit),
			Quantity:  it.Quantity,
		})
	}

	m := map[string]any{
		"donorName": strings.TrimSpace(d.DonorName),
		"kind":      string(d.Kind),
		"items":     items,
		"createdAt": d.CreatedAt.UTC(),
	}
	if d.Kind == dondom.KindMoney {
		m["amount"] = d.Amount
	}
	if d.DonorDocument != "" {
		m["donorDocument"] = d.DonorDocument
	}
	if d.DonorPhone != "" {
		m["donorPhone"] = d.DonorPhone
	}
	if d.DonorAddress != "" {
		m["donorAddress"] = d.DonorAddress
	}
	if d.Notes != "" {
		m["notes"] = d.Notes
	}
	return m
}
