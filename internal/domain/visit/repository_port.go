// internal/domain/visit/repository_port.go
package visit

import "context"

type RepositoryPort interface {
	GetByID(ctx context.Context, id string) (Visit, error)
	List(ctx context.Context) ([]Visit, error)
	ListByPersonID(ctx context.Context, personID string) ([]Visit, error)
	Create(ctx context.Context, v Visit) (Visit, error)
	Update(ctx context.Context, id string, patch UpdatePatch) (Visit, error)
	// AppendPhotoURL adds one uploaded photo URL to the report.
	AppendPhotoURL(ctx context.Context, id string, url string) (Visit, error)
	Delete(ctx context.Context, id string) error
}
