// internal/adapters/out/firestore/delivery_repository_fs.go
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
	deldom "reliefdesk/internal/domain/delivery"
)

// ============================================================
// Firestore-based Delivery Repository (deliveries collection)
// ============================================================

type DeliveryRepositoryFS struct {
	Client *firestore.Client
}

func NewDeliveryRepositoryFS(client *firestore.Client) *DeliveryRepositoryFS {
	return &DeliveryRepositoryFS{Client: client}
}

func (r *DeliveryRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("deliveries")
}

func (r *DeliveryRepositoryFS) GetByID(ctx context.Context, id string) (deldom.Delivery, error) {
	if r.Client == nil {
		return deldom.Delivery{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return deldom.Delivery{}, deldom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return deldom.Delivery{}, deldom.ErrNotFound
	}
	if err != nil {
		return deldom.Delivery{}, err
	}
	return docToDelivery(snap)
}

func (r *DeliveryRepositoryFS) List(ctx context.Context, from, to *time.Time) ([]deldom.Delivery, error) {
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

	out := []deldom.Delivery{}
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		d, err := docToDelivery(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Update applies a descriptive-only patch; items are never writable here.
func (r *DeliveryRepositoryFS) Update(ctx context.Context, id string, patch deldom.UpdatePatch) (deldom.Delivery, error) {
	if r.Client == nil {
		return deldom.Delivery{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return deldom.Delivery{}, deldom.ErrNotFound
	}

	ref := r.col().Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return deldom.Delivery{}, deldom.ErrNotFound
	} else if err != nil {
		return deldom.Delivery{}, err
	}

	var updates []firestore.Update
	setStr := func(path string, p *string) {
		if p != nil {
			updates = append(updates, firestore.Update{Path: path, Value: strings.TrimSpace(*p)})
		}
	}
	setStr("recipientName", patch.RecipientName)
	setStr("recipientDocument", patch.RecipientDocument)
	setStr("recipientPhone", patch.RecipientPhone)
	setStr("recipientAddress", patch.RecipientAddress)
	setStr("responsible", patch.Responsible)
	setStr("notes", patch.Notes)
	if patch.DeliveredAt != nil && !patch.DeliveredAt.IsZero() {
		updates = append(updates, firestore.Update{Path: "deliveredAt", Value: patch.DeliveredAt.UTC()})
	}

	if len(updates) > 0 {
		if _, err := ref.Update(ctx, updates); err != nil {
			if status.Code(err) == codes.NotFound {
				return deldom.Delivery{}, deldom.ErrNotFound
			}
			return deldom.Delivery{}, err
		}
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return deldom.Delivery{}, err
	}
	return docToDelivery(snap)
}

func (r *DeliveryRepositoryFS) StageCreate(b common.Batch, d deldom.Delivery) (deldom.Delivery, error) {
	if r.Client == nil {
		return deldom.Delivery{}, errors.New("firestore client is nil")
	}
	fb, err := asWriteBatch(b)
	if err != nil {
		return deldom.Delivery{}, err
	}

	ref := r.col().NewDoc()
	d.ID = ref.ID
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	fb.batch.Create(ref, deliveryToDoc(d))
	fb.ops++
	return d, nil
}

func (r *DeliveryRepositoryFS) StageDelete(b common.Batch, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	fb, err := asWriteBatch(b)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return deldom.ErrNotFound
	}

	fb.batch.Delete(r.col().Doc(id))
	fb.ops++
	return nil
}

// ============================================================
// Mapping Helpers
// ============================================================

func docToDelivery(doc *firestore.DocumentSnapshot) (deldom.Delivery, error) {
	var raw struct {
		RecipientName     string        `firestore:"recipientName"`
		RecipientDocument string        `firestore:"recipientDocument"`
		RecipientPhone    string        `firestore:"recipientPhone"`
		RecipientAddress  string        `firestore:"recipientAddress"`
		Items             []lineItemDoc `firestore:"items"`
		Responsible       string        `firestore:"responsible"`
		DeliveredAt       time.Time     `firestore:"deliveredAt"`
		Notes             string        `firestore:"notes"`
		CreatedAt         time.Time     `firestore:"createdAt"`
	}
	if err := doc.DataTo(&raw); err != nil {
		return deldom.Delivery{}, err
	}

	items := make([]deldom.LineItem, 0, len(raw.Items))
	for _, it := range raw.Items {
		items = append(items, deldom.LineItem{
			ArticleID: strings.TrimSpace(it.ArticleID),
			Name:      strings.TrimSpace(it.Name),
			Unit:      strings.TrimSpace(it.Unit),
			Quantity:  it.Quantity,
		})
	}

	return deldom.Delivery{
		ID:                doc.Ref.ID,
		RecipientName:     strings.TrimSpace(raw.RecipientName),
		RecipientDocument: strings.TrimSpace(raw.RecipientDocument),
		RecipientPhone:    strings.TrimSpace(raw.RecipientPhone),
		RecipientAddress:  strings.TrimSpace(raw.RecipientAddress),
		Items:             items,
		Responsible:       strings.TrimSpace(raw.Responsible),
		DeliveredAt:       raw.DeliveredAt.UTC(),
		Notes:             strings.TrimSpace(raw.Notes),
		CreatedAt:         raw.CreatedAt.UTC(),
	}, nil
}

func deliveryToDoc(d deldom.Delivery) map[string]any {
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
		"recipientName": strings.TrimSpace(d.RecipientName),
		"items":         items,
		"deliveredAt":   d.DeliveredAt.UTC(),
		"createdAt":     d.CreatedAt.UTC(),
	}
	if d.RecipientDocument != "" {
		m["recipientDocument"] = d.RecipientDocument
	}
	if d.RecipientPhone != "" {
		m["recipientPhone"] = d.RecipientPhone
	}
	if d.RecipientAddress != "" {
		m["recipientAddress"] = d.RecipientAddress
	}
	if d.Responsible != "" {
		m["responsible"] = d.Responsible
	}
	if d.Notes != "" {
		m["notes"] = d.Notes
	}
	return m
}
