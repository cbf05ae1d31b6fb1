// internal/adapters/out/firestore/volunteer_repository_fs.go
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

	voldom "reliefdesk/internal/domain/volunteer"
)

// ============================================================
// Firestore-based Volunteer Repository (volunteers collection)
// ============================================================

type VolunteerRepositoryFS struct {
	Client *firestore.Client
}

func NewVolunteerRepositoryFS(client *firestore.Client) *VolunteerRepositoryFS {
	return &VolunteerRepositoryFS{Client: client}
}

func (r *VolunteerRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("volunteers")
}

func (r *VolunteerRepositoryFS) GetByID(ctx context.Context, id string) (voldom.Volunteer, error) {
	if r.Client == nil {
		return voldom.Volunteer{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return voldom.Volunteer{}, voldom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return voldom.Volunteer{}, voldom.ErrNotFound
	}
	if err != nil {
		return voldom.Volunteer{}, err
	}
	return docToVolunteer(snap)
}

func (r *VolunteerRepositoryFS) List(ctx context.Context) ([]voldom.Volunteer, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col().OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	out := []voldom.Volunteer{}
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := docToVolunteer(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *VolunteerRepositoryFS) Create(ctx context.Context, v voldom.Volunteer) (voldom.Volunteer, error) {
	if r.Client == nil {
		return voldom.Volunteer{}, errors.New("firestore client is nil")
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

	if _, err := ref.Create(ctx, volunteerToDoc(v)); err != nil {
		return voldom.Volunteer{}, err
	}
	return v, nil
}

func (r *VolunteerRepositoryFS) Update(ctx context.Context, id string, patch voldom.UpdatePatch) (voldom.Volunteer, error) {
	if r.Client == nil {
		return voldom.Volunteer{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return voldom.Volunteer{}, voldom.ErrNotFound
	}

	ref := r.col().Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return voldom.Volunteer{}, voldom.ErrNotFound
	} else if err != nil {
		return voldom.Volunteer{}, err
	}

	var updates []firestore.Update
	setStr := func(path string, p *string) {
		if p != nil {
			updates = append(updates, firestore.Update{Path: path, Value: strings.TrimSpace(*p)})
		}
	}
	setStr("name", patch.Name)
	setStr("phone", patch.Phone)
	setStr("skills", patch.Skills)
	setStr("availability", patch.Availability)

	if len(updates) > 0 {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})
		if _, err := ref.Update(ctx, updates); err != nil {
			if status.Code(err) == codes.NotFound {
				return voldom.Volunteer{}, voldom.ErrNotFound
			}
			return voldom.Volunteer{}, err
		}
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return voldom.Volunteer{}, err
	}
	return docToVolunteer(snap)
}

func (r *VolunteerRepositoryFS) Delete(ctx context.Context, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return voldom.ErrNotFound
	}

	ref := r.col().Doc(id)
	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return voldom.ErrNotFound
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

func docToVolunteer(doc *firestore.DocumentSnapshot) (voldom.Volunteer, error) {
	var raw struct {
		Name         string    `firestore:"name"`
		Email        string    `firestore:"email"`
		Phone        string    `firestore:"phone"`
		Skills       string    `firestore:"skills"`
		Availability string    `firestore:"availability"`
		CreatedAt    time.Time `firestore:"createdAt"`
		UpdatedAt    time.Time `firestore:"updatedAt"`
	}
	if err := doc.DataTo(&raw); err != nil {
		return voldom.Volunteer{}, err
	}

	updated := raw.UpdatedAt
	if updated.IsZero() {
		updated = raw.CreatedAt
	}

	return voldom.Volunteer{
		ID:           doc.Ref.ID,
		Name:         strings.TrimSpace(raw.Name),
		Email:        strings.TrimSpace(raw.Email),
		Phone:        strings.TrimSpace(raw.Phone),
		Skills:       strings.TrimSpace(raw.Skills),
		Availability: strings.TrimSpace(raw.Availability),
		CreatedAt:    raw.CreatedAt.UTC(),
		UpdatedAt:    updated.UTC(),
	}, nil
}

func volunteerToDoc(v voldom.Volunteer) map[string]any {
	return map[string]any{
		"name":         strings.TrimSpace(v.Name),
		"email":        strings.TrimSpace(v.Email),
		"phone":        strings.TrimSpace(v.Phone),
		"skills":       strings.TrimSpace(v.Skills),
		"availability": strings.TrimSpace(v.Availability),
		"createdAt":    v.CreatedAt.UTC(),
		"updatedAt":    v.UpdatedAt.UTC(),
	}
}
