// internal/domain/volunteer/repository_port.go
package volunteer

import "context"

type RepositoryPort interface {
	GetByID(ctx context.Context, id string) (Volunteer, error)
	List(ctx context.Context) ([]Volunteer, error)
	Create(ctx context.Context, v Volunteer) (Volunteer, error)
	Update(ctx context.Context, id string, patch UpdatePatch) (Volunteer, error)
	Delete(ctx context.Context, id string) error
}
