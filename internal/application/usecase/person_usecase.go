// internal/application/usecase/person_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	persondom "reliefdesk/internal/domain/person"
)

type PersonUsecase struct {
	persons persondom.RepositoryPort
}

func NewPersonUsecase(persons persondom.RepositoryPort) *PersonUsecase {
	return &PersonUsecase{persons: persons}
}

type PersonRegisterInput struct {
	Name       string
	Document   string
	Phone      string
	Address    string
	FamilySize int
	Needs      string
}

func (uc *PersonUsecase) Register(ctx context.Context, in PersonRegisterInput) (persondom.Person, error) {
	if uc == nil || uc.persons == nil {
		return persondom.Person{}, errors.New("person usecase/repo is nil")
	}

	p, err := persondom.New(in.Name, time.Now().UTC())
	if err != nil {
		return persondom.Person{}, err
	}
	p.Document = strings.TrimSpace(in.Document)
	p.Phone = strings.TrimSpace(in.Phone)
	p.Address = strings.TrimSpace(in.Address)
	p.FamilySize = in.FamilySize
	p.Needs = strings.TrimSpace(in.Needs)

	return uc.persons.Create(ctx, p)
}

func (uc *PersonUsecase) GetByID(ctx context.Context, id string) (persondom.Person, error) {
	if uc == nil || uc.persons == nil {
		return persondom.Person{}, errors.New("person usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return persondom.Person{}, persondom.ErrInvalidID
	}
	return uc.persons.GetByID(ctx, id)
}

func (uc *PersonUsecase) List(ctx context.Context) ([]persondom.Person, error) {
	if uc == nil || uc.persons == nil {
		return nil, errors.New("person usecase/repo is nil")
	}
	return uc.persons.List(ctx)
}

func (uc *PersonUsecase) Update(ctx context.Context, id string, patch persondom.UpdatePatch) (persondom.Person, error) {
	if uc == nil || uc.persons == nil {
		return persondom.Person{}, errors.New("person usecase/repo is nil")
	}
	return uc.persons.Update(ctx, strings.TrimSpace(id), patch)
}

func (uc *PersonUsecase) Delete(ctx context.Context, id string) error {
	if uc == nil || uc.persons == nil {
		return errors.New("person usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return persondom.ErrInvalidID
	}
	return uc.persons.Delete(ctx, id)
}
