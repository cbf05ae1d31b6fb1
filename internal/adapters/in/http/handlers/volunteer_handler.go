// internal/adapters/in/http/handlers/volunteer_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "reliefdesk/internal/application/usecase"
	voldom "reliefdesk/internal/domain/volunteer"
)

// VolunteerHandler は /volunteers 関連のエンドポイントを担当します。
// 登録時は SendGrid 経由でウェルカムメールを送る（best-effort）。
type VolunteerHandler struct {
	uc *usecase.VolunteerUsecase
}

func NewVolunteerHandler(uc *usecase.VolunteerUsecase) http.Handler {
	return &VolunteerHandler{uc: uc}
}

func (h *VolunteerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := pathTail(r.URL.Path, "/volunteers")

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

type volunteerCreateReq struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Skills       string `json:"skills"`
	Availability string `json:"availability"`
}

func volunteerToDTO(v voldom.Volunteer) map[string]any {
	return map[string]any{
		"id":           v.ID,
		"name":         v.Name,
		"email":        v.Email,
		"phone":        v.Phone,
		"skills":       v.Skills,
		"availability": v.Availability,
		"createdAt":    v.CreatedAt,
		"updatedAt":    v.UpdatedAt,
	}
}

// POST /volunteers
func (h *VolunteerHandler) create(w http.ResponseWriter, r *http.Request) {
	var req volunteerCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	v, err := h.uc.Register(r.Context(), usecase.VolunteerRegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Skills:       req.Skills,
		Availability: req.Availability,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, volunteerToDTO(v))
}

// GET /volunteers
func (h *VolunteerHandler) list(w http.ResponseWriter, r *http.Request) {
	vs, err := h.uc.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]map[string]any, 0, len(vs))
	for _, v := range vs {
		out = append(out, volunteerToDTO(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /volunteers/{id}
func (h *VolunteerHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	v, err := h.uc.GetByID(r.Context(), strings.TrimSpace(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, volunteerToDTO(v))
}

type volunteerPatchReq struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Skills       *string `json:"skills"`
	Availability *string `json:"availability"`
}

// PATCH /volunteers/{id}
func (h *VolunteerHandler) patch(w http.ResponseWriter, r *http.Request, id string) {
	var req volunteerPatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	v, err := h.uc.Update(r.Context(), strings.TrimSpace(id), voldom.UpdatePatch{
		Name:         req.Name,
		Phone:        req.Phone,
		Skills:       req.Skills,
		Availability: req.Availability,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, volunteerToDTO(v))
}

// DELETE /volunteers/{id}
func (h *VolunteerHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), strings.TrimSpace(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
