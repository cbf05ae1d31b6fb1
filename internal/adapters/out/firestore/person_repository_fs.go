// internal/adapters/out/firestore/person_repository_fs.go
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

	persondom "reliefdesk/internal/domain/person"
)

// ============================================================
// Firestore-based Person Repository (persons collection)
// ============================================================

type PersonRepositoryFS struct {
	Client *firestore.Client
}

func NewPersonRepositoryFS(client *firestore.Client) *PersonRepositoryFS {
	return &PersonRepositoryFS{Client: client}
}

func (r *PersonRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("persons")
}

func (r *PersonRepositoryFS) GetByID(ctx context.Context, id string) (persondom.Person, error) {
	if r.Client == nil {
		return persondom.Person{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return persondom.Person{}, persondom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return persondom.Person{}, persondom.ErrNotFound
	}
	if err != nil {
		return persondom.Person{}, err
	}
	return docToPerson(snap)
}

func (r *PersonRepositoryFS) List(ctx context.Context) ([]persondom.Person, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col().OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer it.Stop()

	out := []persondom.Person{}
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		p, err := docToPerson(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PersonRepositoryFS) Create(ctx context.Context, p persondom.Person) (persondom.Person, error) {
	if r.Client == nil {
		return persondom.Person{}, errors.New("firestore client is nil")
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	ref := r.col().NewDoc()
	p.ID = ref.ID

	if _, err := ref.Create(ctx, personToDoc(p)); err != nil {
		return persondom.Person{}, err
	}
	return p, nil
}

func (r *PersonRepositoryFS) Update(ctx context.Context, id string, patch persondom.UpdatePatch) (persondom.Person, error) {
	if r.Client == nil {
		return persondom.Person{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return persondom.Person{}, persondom.ErrNotFound
	}

	ref := r.col().Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return persondom.Person{}, persondom.ErrNotFound
	} else if err != nil {
		return persondom.Person{}, err
	}

	var updates []firestore.Update
	setStr := func(path string, p *string) {
		if p != nil {
			updates = append(updates, firestore.Update{Path: path, Value: strings.TrimSpace(*p)})
		}
	}
	setStr("name", patch.Name)
	setStr("document", patch.Document)
	setStr("phone", patch.Phone)
	setStr("address", patch.Address)
	setStr("needs", patch.Needs)
	if patch.FamilySize != nil {
		updates = append(updates, firestore.Update{Path: "familySize", Value: *patch.FamilySize})
	}

	if len(updates) > 0 {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})
		if _, err := ref.Update(ctx, updates); err != nil {
			if status.Code(err) == codes.NotFound {
				return persondom.Person{}, persondom.ErrNotFound
			}
			return persondom.Person{}, err
		}
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return persondom.Person{}, err
	}
	return docToPerson(snap)
}

func (r *PersonRepositoryFS) Delete(ctx context.Context, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return persondom.ErrNotFound
	}

	ref := r.col().Doc(id)
	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return persondom.ErrNotFound
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

func docToPerson(doc *firestore.DocumentSnapshot) (persondom.Person, error) {
	var raw struct {
		Name       string    `firestore:"name"`
		Document   string    `firestore:"document"`
		Phone      string    `firestore:"phone"`
		Address    string    `firestore:"address"`
		FamilySize int       `firestore:"familySize"`
		Needs      string    `firestore:"needs"`
		CreatedAt  time.Time `firestore:"createdAt"`
		UpdatedAt  time.Time `firestore:"updatedAt"`
	}
	if err := doc.DataTo(&raw); err != nil {
		return persondom.Person{}, err
	}

	updated := raw.UpdatedAt
	if updated.IsZero() {
		updated = raw.CreatedAt
	}

	return persondom.Person{
		ID:         doc.Ref.ID,
		Name:       strings.TrimSpace(raw.Name),
		Document:   strings.TrimSpace(raw.Document),
		Phone:      strings.TrimSpace(raw.Phone),
		Address:    strings.TrimSpace(raw.Address),
		FamilySize: raw.FamilySize,
		Needs:      strings.TrimSpace(raw.Needs),
		CreatedAt:  raw.CreatedAt.UTC(),
		UpdatedAt:  updated.UTC(),
	}, nil
}

func personToDoc(p persondom.Person) map[string]any {
	return map[string]any{
		"name":       strings.TrimSpace(p.Name),
		"document":   strings.TrimSpace(p.Document),
		"phone":      strings.TrimSpace(p.Phone),
		"address":    strings.TrimSpace(p.Address),
		"familySize": p.FamilySize,
		"needs":      strings.TrimSpace(p.Needs),
		"createdAt":  p.CreatedAt.UTC(),
		"updatedAt":  p.UpdatedAt.UTC(),
	}
}
