// internal/application/usecase/volunteer_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	voldom "reliefdesk/internal/domain/volunteer"
)

type VolunteerUsecase struct {
	volunteers voldom.RepositoryPort
	mailer     WelcomeMailerPort // optional
}

func NewVolunteerUsecase(volunteers voldom.RepositoryPort, mailer WelcomeMailerPort) *VolunteerUsecase {
	return &VolunteerUsecase{volunteers: volunteers, mailer: mailer}
}

type VolunteerRegisterInput struct {
	Name         string
	Email        string
	Phone        string
	Skills       string
	Availability string
}

// Register persists the volunteer and sends the welcome mail best-effort
// （送信失敗は登録を失敗させず、ログに残すだけ）。
func (uc *VolunteerUsecase) Register(ctx context.Context, in VolunteerRegisterInput) (voldom.Volunteer, error) {
	if uc == nil || uc.volunteers == nil {
		return voldom.Volunteer{}, errors.New("volunteer usecase/repo is nil")
	}

	v, err := voldom.New(in.Name, in.Email, time.Now().UTC())
	if err != nil {
		return voldom.Volunteer{}, err
	}
	v.Phone = strings.TrimSpace(in.Phone)
	v.Skills = strings.TrimSpace(in.Skills)
	v.Availability = strings.TrimSpace(in.Availability)

	v, err = uc.volunteers.Create(ctx, v)
	if err != nil {
		return voldom.Volunteer{}, err
	}

	if uc.mailer != nil {
		if err := uc.mailer.SendWelcome(ctx, v.Name, v.Email); err != nil {
			log.Printf("[volunteer_uc] WARN: welcome mail failed id=%s: %v", v.ID, err)
		}
	}

	return v, nil
}

func (uc *VolunteerUsecase) GetByID(ctx context.Context, id string) (voldom.Volunteer, error) {
	if uc == nil || uc.volunteers == nil {
		return voldom.Volunteer{}, errors.New("volunteer usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return voldom.Volunteer{}, voldom.ErrInvalidID
	}
	return uc.volunteers.GetByID(ctx, id)
}

func (uc *VolunteerUsecase) List(ctx context.Context) ([]voldom.Volunteer, error) {
	if uc == nil || uc.volunteers == nil {
		return nil, errors.New("volunteer usecase/repo is nil")
	}
	return uc.volunteers.List(ctx)
}

func (uc *VolunteerUsecase) Update(ctx context.Context, id string, patch voldom.UpdatePatch) (voldom.Volunteer, error) {
	if uc == nil || uc.volunteers == nil {
		return voldom.Volunteer{}, errors.New("volunteer usecase/repo is nil")
	}
	return uc.volunteers.Update(ctx, strings.TrimSpace(id), patch)
}

func (uc *VolunteerUsecase) Delete(ctx context.Context, id string) error {
	if uc == nil || uc.volunteers == nil {
		return errors.New("volunteer usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return voldom.ErrInvalidID
	}
	return uc.volunteers.Delete(ctx, id)
}
