// internal/domain/person/repository_port.go
package person

import "context"

type RepositoryPort interface {
	GetByID(ctx context.Context, id string) (Person, error)
	List(ctx context.Context) ([]Person, error)
	Create(ctx context.Context, p Person) (Person, error)
	Update(ctx context.Context, id string, patch UpdatePatch) (Person, error)
	Delete(ctx context.Context, id string) error
}
