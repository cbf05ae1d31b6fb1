// internal/domain/person/entity.go
package person

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("person not found")
	ErrInvalidID   = errors.New("invalid person id")
	ErrInvalidName = errors.New("invalid person name")
)

// Person は被災者登録の 1 レコードです。
type Person struct {
	ID         string
	Name       string
	Document   string
	Phone      string
	Address    string
	FamilySize int
	Needs      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func New(name string, now time.Time) (Person, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return Person{}, ErrInvalidName
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return Person{Name: n, CreatedAt: now, UpdatedAt: now}, nil
}

// UpdatePatch is a partial update; nil fields stay unchanged.
type UpdatePatch struct {
	Name       *string
	Document   *string
	Phone      *string
	Address    *string
	FamilySize *int
	Needs      *string
}
