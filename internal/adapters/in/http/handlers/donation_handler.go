// internal/adapters/in/http/handlers/donation_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "reliefdesk/internal/application/usecase"
	dondom "reliefdesk/internal/domain/donation"
)

// DonationHandler は /donations 関連のエンドポイントを担当します。
//
//	POST   /donations        寄付受付（物資は 1 バッチでカタログ解決 + 在庫 credit）
//	GET    /donations        一覧（?from=&to= RFC3339）
//	GET    /donations/{id}   単一取得
//	PATCH  /donations/{id}   記述フィールドのみの部分更新
//	DELETE /donations/{id}   巻き戻し削除（物資は在庫も戻す）
type DonationHandler struct {
	uc *usecase.DonationUsecase
}

// NewDonationHandler はHTTPハンドラを初期化します。
func NewDonationHandler(uc *usecase.DonationUsecase) http.Handler {
	return &DonationHandler{uc: uc}
}

// ServeHTTP はHTTPルーティングの入口です。
func (h *DonationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := pathTail(r.URL.Path, "/donations")

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

type donationCreateReq struct {
	DonorName     string        `json:"donorName"`
	DonorDocument string        `json:"donorDocument"`
	DonorPhone    string        `json:"donorPhone"`
	DonorAddress  string        `json:"donorAddress"`
	Kind          string        `json:"kind"`
	Amount        int64         `json:"amount"`
	Items         []lineItemDTO `json:"items"`
	Notes         string        `json:"notes"`
}

// POST /donations
func (h *DonationHandler) create(w http.ResponseWriter, r *http.Request) {
	var req donationCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	items := make([]dondom.RequestedItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, dondom.RequestedItem{
			Name:     it.Name,
			Unit:     it.Unit,
			Quantity: it.Quantity,
		})
	}

	d, err := h.uc.Intake(r.Context(), usecase.DonationIntakeInput{
		DonorName:     req.DonorName,
		DonorDocument: req.DonorDocument,
		DonorPhone:    req.DonorPhone,
		DonorAddress:  req.DonorAddress,
		Kind:          req.Kind,
		Amount:        req.Amount,
		Items:         items,
		Notes:         req.Notes,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, donationToDTO(d))
}

// GET /donations?from=&to=
func (h *DonationHandler) list(w http.ResponseWriter, r *http.Request) {
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
		out = append(out, donationToDTO(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /donations/{id}
func (h *DonationHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	d, err := h.uc.GetByID(r.Context(), strings.TrimSpace(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donationToDTO(d))
}

type donationPatchReq struct {
	DonorName     *string `json:"donorName"`
	DonorDocument *string `json:"donorDocument"`
	DonorPhone    *string `json:"donorPhone"`
	DonorAddress  *string `json:"donorAddress"`
	Notes         *string `json:"notes"`
}

// PATCH /donations/{id}
// 明細・金額は受け付けない。在庫を触りたいなら DELETE → POST で台帳を通す。
func (h *DonationHandler) patch(w http.ResponseWriter, r *http.Request, id string) {
	var req donationPatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	d, err := h.uc.Update(r.Context(), strings.TrimSpace(id), dondom.UpdatePatch{
		DonorName:     req.DonorName,
		DonorDocument: req.DonorDocument,
		DonorPhone:    req.DonorPhone,
		DonorAddress:  req.DonorAddress,
		Notes:         req.Notes,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donationToDTO(d))
}

// DELETE /donations/{id}
func (h *DonationHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), strings.TrimSpace(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
