// internal/domain/volunteer/entity.go
package volunteer

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("volunteer not found")
	ErrInvalidID    = errors.New("invalid volunteer id")
	ErrInvalidName  = errors.New("invalid volunteer name")
	ErrInvalidEmail = errors.New("invalid volunteer email")
)

// Volunteer はボランティア登録の 1 レコードです。
type Volunteer struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Skills       string
	Availability string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func New(name, email string, now time.Time) (Volunteer, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return Volunteer{}, ErrInvalidName
	}
	e := strings.TrimSpace(email)
	if e == "" || !strings.Contains(e, "@") {
		return Volunteer{}, ErrInvalidEmail
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return Volunteer{Name: n, Email: e, CreatedAt: now, UpdatedAt: now}, nil
}

// UpdatePatch is a partial update; nil fields stay unchanged.
type UpdatePatch struct {
	Name         *string
	Phone        *string
	Skills       *string
	Availability *string
}
