// internal/adapters/out/firestore/article_repository_fs.go
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

	artdom "reliefdesk/internal/domain/article"
	"reliefdesk/internal/domain/common"
)

// ============================================================
// Firestore-based Article Repository (articles collection)
// ============================================================

type ArticleRepositoryFS struct {
	Client *firestore.Client
}

func NewArticleRepositoryFS(client *firestore.Client) *ArticleRepositoryFS {
	return &ArticleRepositoryFS{Client: client}
}

func (r *ArticleRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("articles")
}

// GetByID returns an Article by document ID.
func (r *ArticleRepositoryFS) GetByID(ctx context.Context, id string) (artdom.Article, error) {
	if r.Client == nil {
		return artdom.Article{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return artdom.Article{}, artdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return artdom.Article{}, artdom.ErrNotFound
	}
	if err != nil {
		return artdom.Article{}, err
	}
	return docToArticle(snap)
}

// FindByNormalizedName queries by the dedup key. When pre-existing data holds
// colliding keys, the first query result wins (no merge logic).
func (r *ArticleRepositoryFS) FindByNormalizedName(ctx context.Context, normalized string) (artdom.Article, error) {
	if r.Client == nil {
		return artdom.Article{}, errors.New("firestore client is nil")
	}
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return artdom.Article{}, artdom.ErrNotFound
	}

	it := r.col().Where("normalizedName", "==", normalized).Limit(1).Documents(ctx)
	defer it.Stop()

	doc, err := it.Next()
	if errors.Is(err, iterator.Done) {
		return artdom.Article{}, artdom.ErrNotFound
	}
	if err != nil {
		return artdom.Article{}, err
	}
	return docToArticle(doc)
}

// List returns the whole catalog ordered by display name.
func (r *ArticleRepositoryFS) List(ctx context.Context) ([]artdom.Article, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col().OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	out := []artdom.Article{}
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		a, err := docToArticle(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Create persists a new Article immediately (admin path).
func (r *ArticleRepositoryFS) Create(ctx context.Context, a artdom.Article) (artdom.Article, error) {
	if r.Client == nil {
		return artdom.Article{}, errors.New("firestore client is nil")
	}

	ref := r.col().NewDoc()
	a.ID = ref.ID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	if _, err := ref.Create(ctx, articleToDoc(a)); err != nil {
		return artdom.Article{}, err
	}
	return a, nil
}

// StageCreate assigns a fresh document ID and stages the create into the
// caller's batch. Nothing is written until the workflow commits.
func (r *ArticleRepositoryFS) StageCreate(b common.Batch, a artdom.Article) (artdom.Article, error) {
	if r.Client == nil {
		return artdom.Article{}, errors.New("firestore client is nil")
	}
	fb, err := asWriteBatch(b)
	if err != nil {
		return artdom.Article{}, err
	}

	ref := r.col().NewDoc()
	a.ID = ref.ID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	fb.batch.Create(ref, articleToDoc(a))
	fb.ops++
	return a, nil
}

// Delete removes a catalog entry. Stock records are intentionally untouched.
func (r *ArticleRepositoryFS) Delete(ctx context.Context, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return artdom.ErrNotFound
	}

	ref := r.col().Doc(id)
	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return artdom.ErrNotFound
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

func docToArticle(doc *firestore.DocumentSnapshot) (artdom.Article, error) {
	var raw struct {
		Name           string    `firestore:"name"`
		NormalizedName string    `firestore:"normalizedName"`
		Unit           string    `firestore:"unit"`
		Category       string    `firestore:"category"`
		CreatedAt      time.Time `firestore:"createdAt"`
	}
	if err := doc.DataTo(&raw); err != nil {
		return artdom.Article{}, err
	}

	name := strings.TrimSpace(raw.Name)
	normalized := strings.TrimSpace(raw.NormalizedName)
	if normalized == "" {
		normalized = artdom.Normalize(name)
	}

	return artdom.Article{
		ID:             doc.Ref.ID,
		Name:           name,
		NormalizedName: normalized,
		Unit:           strings.TrimSpace(raw.Unit),
		Category:       strings.TrimSpace(raw.Category),
		CreatedAt:      raw.CreatedAt.UTC(),
	}, nil
}

func articleToDoc(a artdom.Article) map[string]any {
	return map[string]any{
		"name":           strings.TrimSpace(a.Name),
		"normalizedName": strings.TrimSpace(a.NormalizedName),
		"unit":           strings.TrimSpace(a.Unit),
		"category":       strings.TrimSpace(a.Category),
		"createdAt":      a.CreatedAt.UTC(),
	}
}
