// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	deldom "reliefdesk/internal/domain/delivery"
	dondom "reliefdesk/internal/domain/donation"
	stockdom "reliefdesk/internal/domain/stock"
)

// ============================================================
// JSON helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrMsg(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeDomainErr maps domain errors to HTTP status codes:
//   - 入力不正         → 400
//   - 見つからない     → 404
//   - 在庫不足         → 409（在庫内訳つき）
//   - それ以外         → 500
func writeDomainErr(w http.ResponseWriter, err error) {
	var insufficient *stockdom.InsufficientStockError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":       "insufficient_stock",
			"articleId":   insufficient.ArticleID,
			"articleName": insufficient.ArticleName,
			"available":   insufficient.Available,
			"requested":   insufficient.Requested,
		})
		return
	}

	code := http.StatusInternalServerError
	switch {
	case isNotFoundErr(err):
		code = http.StatusNotFound
	case isInvalidInputErr(err):
		code = http.StatusBadRequest
	}
	writeErrMsg(w, code, err.Error())
}

func isNotFoundErr(err error) bool {
	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isInvalidInputErr(err error) bool {
	for _, sentinel := range invalidInputSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// pathTail returns the path segment after prefix, "" for the collection root.
func pathTail(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}

// parseTimeQuery parses an optional RFC3339 query parameter.
func parseTimeQuery(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	u := t.UTC()
	return &u, nil
}

// ============================================================
// DTOs shared by donation/delivery handlers
// ============================================================

type lineItemDTO struct {
	ArticleID string `json:"articleId,omitempty"`
	Name      string `json:"name"`
	Unit      string `json:"unit,omitempty"`
	Quantity  int64  `json:"quantity"`
}

func donationToDTO(d dondom.Donation) map[string]any {
	items := make([]lineItemDTO, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, lineItemDTO{
			ArticleID: it.ArticleID,
			Name:      it.Name,
			Unit:      it.Unit,
			Quantity:  it.Quantity,
		})
	}
	out := map[string]any{
		"id":        d.ID,
		"donorName": d.DonorName,
		"kind":      string(d.Kind),
		"createdAt": d.CreatedAt,
	}
	if d.Kind == dondom.KindMoney {
		out["amount"] = d.Amount
	} else {
		out["items"] = items
	}
	if d.DonorDocument != "" {
		out["donorDocument"] = d.DonorDocument
	}
	if d.DonorPhone != "" {
		out["donorPhone"] = d.DonorPhone
	}
	if d.DonorAddress != "" {
		out["donorAddress"] = d.DonorAddress
	}
	if d.Notes != "" {
		out["notes"] = d.Notes
	}
	return out
}

func deliveryToDTO(d deldom.Delivery) map[string]any {
	items := make([]lineItemDTO, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, lineItemDTO{
			ArticleID: it.ArticleID,
			Name:      it.Name,
			Unit:      it.Unit,
			Quantity:  it.Quantity,
		})
	}
	out := map[string]any{
		"id":            d.ID,
		"recipientName": d.RecipientName,
		"items":         items,
		"deliveredAt":   d.DeliveredAt,
		"createdAt":     d.CreatedAt,
	}
	if d.RecipientDocument != "" {
		out["recipientDocument"] = d.RecipientDocument
	}
	if d.RecipientPhone != "" {
		out["recipientPhone"] = d.RecipientPhone
	}
	if d.RecipientAddress != "" {
		out["recipientAddress"] = d.RecipientAddress
	}
	if d.Responsible != "" {
		out["responsible"] = d.Responsible
	}
	if d.Notes != "" {
		out["notes"] = d.Notes
	}
	return out
}
