// internal/domain/visit/entity.go
package visit

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("visit not found")
	ErrInvalidID      = errors.New("invalid visit id")
	ErrInvalidPerson  = errors.New("invalid visit person reference")
	ErrInvalidVisitor = errors.New("invalid visit visitor")
)

// DamageLevel は技術訪問で判定した被害程度です。
type DamageLevel string

const (
	DamageNone     DamageLevel = "none"
	DamagePartial  DamageLevel = "partial"
	DamageSevere   DamageLevel = "severe"
	DamageTotal    DamageLevel = "total"
	DamageUnlisted DamageLevel = ""
)

// Visit は技術訪問レポートの 1 レコードです。
type Visit struct {
	ID           string
	PersonID     string
	Visitor      string
	Date         time.Time
	Observations string
	Damage       DamageLevel
	PhotoURLs    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func New(personID, visitor string, date, now time.Time) (Visit, error) {
	pid := strings.TrimSpace(personID)
	if pid == "" {
		return Visit{}, ErrInvalidPerson
	}
	v := strings.TrimSpace(visitor)
	if v == "" {
		return Visit{}, ErrInvalidVisitor
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if date.IsZero() {
		date = now
	}
	return Visit{
		PersonID:  pid,
		Visitor:   v,
		Date:      date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdatePatch is a partial update; nil fields stay unchanged.
type UpdatePatch struct {
	Visitor      *string
	Date         *time.Time
	Observations *string
	Damage       *DamageLevel
}
