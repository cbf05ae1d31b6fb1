// internal/adapters/in/http/handlers/visit_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	usecase "reliefdesk/internal/application/usecase"
	visitdom "reliefdesk/internal/domain/visit"
)

// VisitHandler は /visits 関連のエンドポイントを担当します。
//
//	POST   /visits               技術訪問レポート登録
//	GET    /visits               一覧（?personId= で絞り込み）
//	GET    /visits/{id}          単一取得
//	PATCH  /visits/{id}          部分更新
//	DELETE /visits/{id}          削除
//	POST   /visits/{id}/photos   写真アップロード（multipart/form-data, field=photo）
type VisitHandler struct {
	uc *usecase.VisitUsecase
}

func NewVisitHandler(uc *usecase.VisitUsecase) http.Handler {
	return &VisitHandler{uc: uc}
}

func (h *VisitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tail := pathTail(r.URL.Path, "/visits")
	id, sub := tail, ""
	if i := strings.Index(tail, "/"); i >= 0 {
		id, sub = tail[:i], tail[i+1:]
	}

	switch {
	case r.Method == http.MethodPost && tail == "":
		h.create(w, r)
	case r.Method == http.MethodGet && tail == "":
		h.list(w, r)
	case r.Method == http.MethodPost && sub == "photos" && id != "":
		h.uploadPhoto(w, r, id)
	case r.Method == http.MethodGet && sub == "":
		h.get(w, r, id)
	case r.Method == http.MethodPatch && sub == "" && id != "":
		h.patch(w, r, id)
	case r.Method == http.MethodDelete && sub == "" && id != "":
		h.delete(w, r, id)
	default:
		writeErrMsg(w, http.StatusNotFound, "not_found")
	}
}

type visitCreateReq struct {
	PersonID     string     `json:"personId"`
	Visitor      string     `json:"visitor"`
	Date         *time.Time `json:"date"`
	Observations string     `json:"observations"`
	Damage       string     `json:"damage"`
}

func visitToDTO(v visitdom.Visit) map[string]any {
	out := map[string]any{
		"id":        v.ID,
		"personId":  v.PersonID,
		"visitor":   v.Visitor,
		"date":      v.Date,
		"createdAt": v.CreatedAt,
		"updatedAt": v.UpdatedAt,
	}
	if v.Observations != "" {
		out["observations"] = v.Observations
	}
	if v.Damage != visitdom.DamageUnlisted {
		out["damage"] = string(v.Damage)
	}
	if len(v.PhotoURLs) > 0 {
		out["photoUrls"] = v.PhotoURLs
	}
	return out
}

// POST /visits
func (h *VisitHandler) create(w http.ResponseWriter, r *http.Request) {
	var req visitCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	var date time.Time
	if req.Date != nil {
		date = req.Date.UTC()
	}

	v, err := h.uc.Report(r.Context(), usecase.VisitReportInput{
		PersonID:     req.PersonID,
		Visitor:      req.Visitor,
		Date:         date,
		Observations: req.Observations,
		Damage:       req.Damage,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, visitToDTO(v))
}

// GET /visits?personId=
func (h *VisitHandler) list(w http.ResponseWriter, r *http.Request) {
	vs, err := h.uc.List(r.Context(), r.URL.Query().Get("personId"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]map[string]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, visitToDTO(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /visits/{id}
func (h *VisitHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	v, err := h.uc.GetByID(r.Context(), strings.TrimSpace(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, visitToDTO(v))
}

type visitPatchReq struct {
	Visitor      *string    `json:"visitor"`
	Date         *time.Time `json:"date"`
	Observations *string    `json:"observations"`
	Damage       *string    `json:"damage"`
}

// PATCH /visits/{id}
func (h *VisitHandler) patch(w http.ResponseWriter, r *http.Request, id string) {
	var req visitPatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	patch := visitdom.UpdatePatch{
		Visitor:      req.Visitor,
		Date:         req.Date,
		Observations: req.Observations,
	}
	if req.Damage != nil {
		d := visitdom.DamageLevel(strings.ToLower(strings.TrimSpace(*req.Damage)))
		patch.Damage = &d
	}

	v, err := h.uc.Update(r.Context(), strings.TrimSpace(id), patch)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, visitToDTO(v))
}

// POST /visits/{id}/photos
func (h *VisitHandler) uploadPhoto(w http.ResponseWriter, r *http.Request, id string) {
	// 32MB までメモリ展開、超過分は一時ファイル
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeErrMsg(w, http.StatusBadRequest, "missing photo field")
		return
	}
	defer file.Close()

	v, err := h.uc.AttachPhoto(
		r.Context(),
		strings.TrimSpace(id),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, visitToDTO(v))
}

// DELETE /visits/{id}
func (h *VisitHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), strings.TrimSpace(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
