// internal/adapters/out/firestore/common/helpers.go
package common

import (
	"strings"
	"time"
)

// TrimPtr は *string をトリムして返します。空になったら nil。
func TrimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// NormalizeTimePtr はゼロ値の time を nil に正規化し、UTC に揃えます。
func NormalizeTimePtr(p *time.Time) *time.Time {
	if p == nil || p.IsZero() {
		return nil
	}
	t := p.UTC()
	return &t
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
