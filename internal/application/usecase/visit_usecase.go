// internal/application/usecase/visit_usecase.go
package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	visitdom "reliefdesk/internal/domain/visit"
)

type VisitUsecase struct {
	visits visitdom.RepositoryPort
	photos VisitPhotoStorePort // optional
}

func NewVisitUsecase(visits visitdom.RepositoryPort, photos VisitPhotoStorePort) *VisitUsecase {
	return &VisitUsecase{visits: visits, photos: photos}
}

type VisitReportInput struct {
	PersonID     string
	Visitor      string
	Date         time.Time
	Observations string
	Damage       string
}

func (uc *VisitUsecase) Report(ctx context.Context, in VisitReportInput) (visitdom.Visit, error) {
	if uc == nil || uc.visits == nil {
		return visitdom.Visit{}, errors.New("visit usecase/repo is nil")
	}

	v, err := visitdom.New(in.PersonID, in.Visitor, in.Date, time.Now().UTC())
	if err != nil {
		return visitdom.Visit{}, err
	}
	v.Observations = strings.TrimSpace(in.Observations)
	v.Damage = visitdom.DamageLevel(strings.ToLower(strings.TrimSpace(in.Damage)))

	return uc.visits.Create(ctx, v)
}

// AttachPhoto uploads one photo to the bucket and records its URL on the
// report. Requires the photo store to be configured.
func (uc *VisitUsecase) AttachPhoto(
	ctx context.Context,
	visitID, filename, contentType string,
	r io.Reader,
) (visitdom.Visit, error) {
	if uc == nil || uc.visits == nil {
		return visitdom.Visit{}, errors.New("visit usecase/repo is nil")
	}
	if uc.photos == nil {
		return visitdom.Visit{}, errors.New("visit photo store is not configured")
	}

	visitID = strings.TrimSpace(visitID)
	if visitID == "" {
		return visitdom.Visit{}, visitdom.ErrInvalidID
	}

	// レポートの存在確認を先に（孤児オブジェクトを作らないため）
	if _, err := uc.visits.GetByID(ctx, visitID); err != nil {
		return visitdom.Visit{}, err
	}

	url, err := uc.photos.Upload(ctx, visitID, filename, contentType, r)
	if err != nil {
		return visitdom.Visit{}, err
	}
	log.Printf("[visit_uc] photo uploaded visit=%s url=%s", visitID, url)

	return uc.visits.AppendPhotoURL(ctx, visitID, url)
}

func (uc *VisitUsecase) GetByID(ctx context.Context, id string) (visitdom.Visit, error) {
	if uc == nil || uc.visits == nil {
		return visitdom.Visit{}, errors.New("visit usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return visitdom.Visit{}, visitdom.ErrInvalidID
	}
	return uc.visits.GetByID(ctx, id)
}

func (uc *VisitUsecase) List(ctx context.Context, personID string) ([]visitdom.Visit, error) {
	if uc == nil || uc.visits == nil {
		return nil, errors.New("visit usecase/repo is nil")
	}
	if pid := strings.TrimSpace(personID); pid != "" {
		return uc.visits.ListByPersonID(ctx, pid)
	}
	return uc.visits.List(ctx)
}

func (uc *VisitUsecase) Update(ctx context.Context, id string, patch visitdom.UpdatePatch) (visitdom.Visit, error) {
	if uc == nil || uc.visits == nil {
		return visitdom.Visit{}, errors.New("visit usecase/repo is nil")
	}
	return uc.visits.Update(ctx, strings.TrimSpace(id), patch)
}

func (uc *VisitUsecase) Delete(ctx context.Context, id string) error {
	if uc == nil || uc.visits == nil {
		return errors.New("visit usecase/repo is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return visitdom.ErrInvalidID
	}
	return uc.visits.Delete(ctx, id)
}
