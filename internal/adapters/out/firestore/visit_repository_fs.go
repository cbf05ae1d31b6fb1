// internal/adapters/out/firestore/visit_repository_fs.go
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

	visitdom "reliefdesk/internal/domain/visit"
)

// ============================================================
// Firestore-based Visit Repository (visits collection)
// ============================================================

type VisitRepositoryFS struct {
	Client *firestore.Client
}

func NewVisitRepositoryFS(client *firestore.Client) *VisitRepositoryFS {
	return &VisitRepositoryFS{Client: client}
}

func (r *VisitRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("visits")
}

func (r *VisitRepositoryFS) GetByID(ctx context.Context, id string) (visitdom.Visit, error) {
	if r.Client == nil {
		return visitdom.Visit{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return visitdom.Visit{}, visitdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return visitdom.Visit{}, visitdom.ErrNotFound
	}
	if err != nil {
		return visitdom.Visit{}, err
	}
	return docToVisit(snap)
}

func (r *VisitRepositoryFS) List(ctx context.Context) ([]visitdom.Visit, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}
	it := r.col().OrderBy("date", firestore.Desc).Documents(ctx)
	return drainVisits(it)
}

func (r *VisitRepositoryFS) ListByPersonID(ctx context.Context, personID string) ([]visitdom.Visit, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return []visitdom.Visit{}, nil
	}
	it := r.col().Where("personId", "==", personID).Documents(ctx)
	return drainVisits(it)
}

func (r *VisitRepositoryFS) Create(ctx context.Context, v visitdom.Visit) (visitdom.Visit, error) {
	if r.Client == nil {
		return visitdom.Visit{}, errors.New("firestore client is nil")
	}

	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = now
	}

	ref := r.col().NewDoc()
	v.ID = ref.ID

	if _, err := ref.Create(ctx, visitToDoc(v)); err != nil {
		return visitdom.Visit{}, err
	}
	return v, nil
}

func (r *VisitRepositoryFS) Update(ctx context.Context, id string, patch visitdom.UpdatePatch) (visitdom.Visit, error) {
	if r.Client == nil {
		return visitdom.Visit{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return visitdom.Visit{}, visitdom.ErrNotFound
	}

	ref := r.col().Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return visitdom.Visit{}, visitdom.ErrNotFound
	} else if err != nil {
		return visitdom.Visit{}, err
	}

	var updates []firestore.Update
	if patch.Visitor != nil {
		updates = append(updates, firestore.Update{Path: "visitor", Value: strings.TrimSpace(*patch.Visitor)})
	}
	if patch.Date != nil {
		updates = append(updates, firestore.Update{Path: "date", Value: patch.Date.UTC()})
	}
	if patch.Observations != nil {
		updates = append(updates, firestore.Update{Path: "observations", Value: strings.TrimSpace(*patch.Observations)})
	}
	if patch.Damage != nil {
		updates = append(updates, firestore.Update{Path: "damage", Value: string(*patch.Damage)})
	}

	if len(updates) > 0 {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})
		if _, err := ref.Update(ctx, updates); err != nil {
			if status.Code(err) == codes.NotFound {
				return visitdom.Visit{}, visitdom.ErrNotFound
			}
			return visitdom.Visit{}, err
		}
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return visitdom.Visit{}, err
	}
	return docToVisit(snap)
}

func (r *VisitRepositoryFS) AppendPhotoURL(ctx context.Context, id string, url string) (visitdom.Visit, error) {
	if r.Client == nil {
		return visitdom.Visit{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return visitdom.Visit{}, visitdom.ErrNotFound
	}

	ref := r.col().Doc(id)
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "photoUrls", Value: firestore.ArrayUnion(strings.TrimSpace(url))},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if status.Code(err) == codes.NotFound {
		return visitdom.Visit{}, visitdom.ErrNotFound
	}
	if err != nil {
		return visitdom.Visit{}, err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return visitdom.Visit{}, err
	}
	return docToVisit(snap)
}

func (r *VisitRepositoryFS) Delete(ctx context.Context, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return visitdom.ErrNotFound
	}

	ref := r.col().Doc(id)
	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return visitdom.ErrNotFound
	}
	if err != nil {
		return err
	}

	_, err = ref.Delete(ctx)
	return err
}

// ============================================================
// Mapping Helpers
// ============================================================

func drainVisits(it *firestore.DocumentIterator) ([]visitdom.Visit, error) {
	defer it.Stop()

	out := []visitdom.Visit{}
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := docToVisit(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func docToVisit(doc *firestore.DocumentSnapshot) (visitdom.Visit, error) {
	var raw struct {
		PersonID     string    `firestore:"personId"`
		Visitor      string    `firestore:"visitor"`
		Date         time.Time `firestore:"date"`
		Observations string    `firestore:"observations"`
		Damage       string    `firestore:"damage"`
		PhotoURLs    []string  `firestore:"photoUrls"`
		CreatedAt    time.Time `firestore:"createdAt"`
		UpdatedAt    time.Time `firestore:"updatedAt"`
	}
	if err := doc.DataTo(&raw); err != nil {
		return visitdom.Visit{}, err
	}

	updated := raw.UpdatedAt
	if updated.IsZero() {
		updated = raw.CreatedAt
	}

	return visitdom.Visit{
		ID:           doc.Ref.ID,
		PersonID:     strings.TrimSpace(raw.PersonID),
		Visitor:      strings.TrimSpace(raw.Visitor),
		Date:         raw.Date.UTC(),
		Observations: strings.TrimSpace(raw.Observations),
		Damage:       visitdom.DamageLevel(raw.Damage),
		PhotoURLs:    raw.PhotoURLs,
		CreatedAt:    raw.CreatedAt.UTC(),
		UpdatedAt:    updated.UTC(),
	}, nil
}

func visitToDoc(v visitdom.Visit) map[string]any {
	doc := map[string]any{
		"personId":  strings.TrimSpace(v.PersonID),
		"visitor":   strings.TrimSpace(v.Visitor),
		"date":      v.Date.UTC(),
		"createdAt": v.CreatedAt.UTC(),
		"updatedAt": v.UpdatedAt.UTC(),
	}
	if s := strings.TrimSpace(v.Observations); s != "" {
		doc["observations"] = s
	}
	if v.Damage != visitdom.DamageUnlisted {
		doc["damage"] = string(v.Damage)
	}
	if len(v.PhotoURLs) > 0 {
		doc["photoUrls"] = v.PhotoURLs
	}
	return doc
}
