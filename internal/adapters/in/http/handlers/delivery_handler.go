// internal/adapters/in/http/handlers/delivery_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	usecase "reliefdesk/internal/application/usecase"
	deldom "reliefdesk/internal/domain/delivery"
)

// DeliveryHandler は /deliveries 関連のエンドポイントを担当します。
//
//	POST   /deliveries        配給登録（明細分の在庫 debit と 1 バッチで確定）
//	GET    /deliveries        一覧（?from=&to= RFC3339）
//	GET    /deliveries/{id}   単一取得
//	PATCH  /deliveries/{id}   記述フィールドのみの部分更新
//	DELETE /deliveries/{id}   巻き戻し削除（在庫を credit で戻す）
type DeliveryHandler struct {
	uc *usecase.DeliveryUsecase
}

// NewDeliveryHandler はHTTPハンドラを初期化します。
func NewDeliveryHandler(uc *usecase.DeliveryUsecase) http.Handler {
	return &DeliveryHandler{uc: uc}
}

// ServeHTTP はHTTPルーティングの入口です。
func (h *DeliveryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := pathTail(r.URL.Path, "/deliveries")

	switch {
	case r.Method == http.MethodPost && id == "":
		h.create(w, r)
	case r.Method == http.MethodGet && id == "":
		h.list(w, r)
	case r.Method == http.MethodGet:
		h.get(w, r, id)
	case r.Method == http.MethodPatch && id != "":
		h.patch(w, r, id)
	case r.Method == http.MethodDelete && id != "":
		h.delete(w, r, id)
	default:
		writeErrMsg(w, http.StatusNotFound, "not_found")
	}
}

type deliveryCreateReq struct {
	RecipientName     string        `json:"recipientName"`
	RecipientDocument string        `json:"recipientDocument"`
	RecipientPhone    string        `json:"recipientPhone"`
	RecipientAddress  string        `json:"recipientAddress"`
	Items             []lineItemDTO `json:"items"`
	Responsible       string        `json:"responsible"`
	DeliveredAt       *time.Time    `json:"deliveredAt"`
	Notes             string        `json:"notes"`
}

// POST /deliveries
func (h *DeliveryHandler) create(w http.ResponseWriter, r *http.Request) {
	var req deliveryCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	items := make([]deldom.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, deldom.LineItem{
			ArticleID: it.ArticleID,
			Name:      it.Name,
			Unit:      it.Unit,
			Quantity:  it.Quantity,
		})
	}

	var deliveredAt time.Time
	if req.DeliveredAt != nil {
		deliveredAt = req.DeliveredAt.UTC()
	}

	d, err := h.uc.Fulfill(r.Context(), usecase.DeliveryFulfillInput{
		RecipientName:     req.RecipientName,
		RecipientDocument: req.RecipientDocument,
		RecipientPhone:    req.RecipientPhone,
		RecipientAddress:  req.RecipientAddress,
		Items:             items,
		Responsible:       req.Responsible,
		DeliveredAt:       deliveredAt,
		Notes:             req.Notes,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, deliveryToDTO(d))
}

// GET /deliveries?from=&to=
func (h *DeliveryHandler) list(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimeQuery(r, "from")
	if err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid from: use RFC3339")
		return
	}
	to, err := parseTimeQuery(r, "to")
	if err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid to: use RFC3339")
		return
	}

	ds, err := h.uc.List(r.Context(), from, to)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	out := make([]map[string]any, 0, len(ds))
	for _, d := range ds {
		out = append(out, deliveryToDTO(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /deliveries/{id}
func (h *DeliveryHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	d, err := h.uc.GetByID(r.Context(), strings.TrimSpace(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deliveryToDTO(d))
}

type deliveryPatchReq struct {
	RecipientName     *string    `json:"recipientName"`
	RecipientDocument *string    `json:"recipientDocument"`
	RecipientPhone    *string    `json:"recipientPhone"`
	RecipientAddress  *string    `json:"recipientAddress"`
	Responsible       *string    `json:"responsible"`
	DeliveredAt       *time.Time `json:"deliveredAt"`
	Notes             *string    `json:"notes"`
}

// PATCH /deliveries/{id}
// 明細は受け付けない。数量を直したいなら DELETE → POST で台帳を通す。
func (h *DeliveryHandler) patch(w http.ResponseWriter, r *http.Request, id string) {
	var req deliveryPatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	d, err := h.uc.Update(r.Context(), strings.TrimSpace(id), deldom.UpdatePatch{
		RecipientName:     req.RecipientName,
		RecipientDocument: req.RecipientDocument,
		RecipientPhone:    req.RecipientPhone,
		RecipientAddress:  req.RecipientAddress,
		Responsible:       req.Responsible,
		DeliveredAt:       req.DeliveredAt,
		Notes:             req.Notes,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deliveryToDTO(d))
}

// DELETE /deliveries/{id}
func (h *DeliveryHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), strings.TrimSpace(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
