// internal/adapters/in/http/handlers/person_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "reliefdesk/internal/application/usecase"
	persondom "reliefdesk/internal/domain/person"
)

// PersonHandler は /persons 関連のエンドポイントを担当します。
type PersonHandler struct {
	uc *usecase.PersonUsecase
}

func NewPersonHandler(uc *usecase.PersonUsecase) http.Handler {
	return &PersonHandler{uc: uc}
}

func (h *PersonHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := pathTail(r.URL.Path, "/persons")

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

type personCreateReq struct {
	Name       string `json:"name"`
	Document   string `json:"document"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	FamilySize int    `json:"familySize"`
	Needs      string `json:"needs"`
}

func personToDTO(p persondom.Person) map[string]any {
	return map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"document":   p.Document,
		"phone":      p.Phone,
		"address":    p.Address,
		"familySize": p.FamilySize,
		"needs":      p.Needs,
		"createdAt":  p.CreatedAt,
		"updatedAt":  p.UpdatedAt,
	}
}

// POST /persons
func (h *PersonHandler) create(w http.ResponseWriter, r *http.Request) {
	var req personCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	p, err := h.uc.Register(r.Context(), usecase.PersonRegisterInput{
		Name:       req.Name,
		Document:   req.Document,
		Phone:      req.Phone,
		Address:    req.Address,
		FamilySize: req.FamilySize,
		Needs:      req.Needs,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, personToDTO(p))
}

// GET /persons
func (h *PersonHandler) list(w http.ResponseWriter, r *http.Request) {
	ps, err := h.uc.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]map[string]any, 0, len(ps))
	for _, p := range ps {
		out = append(out, personToDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /persons/{id}
func (h *PersonHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.uc.GetByID(r.Context(), strings.TrimSpace(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, personToDTO(p))
}

type personPatchReq struct {
	Name       *string `json:"name"`
	Document   *string `json:"document"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	FamilySize *int    `json:"familySize"`
	Needs      *string `json:"needs"`
}

// PATCH /persons/{id}
func (h *PersonHandler) patch(w http.ResponseWriter, r *http.Request, id string) {
	var req personPatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	p, err := h.uc.Update(r.Context(), strings.TrimSpace(id), persondom.UpdatePatch{
		Name:       req.Name,
		Document:   req.Document,
		Phone:      req.Phone,
		Address:    req.Address,
		FamilySize: req.FamilySize,
		Needs:      req.Needs,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, personToDTO(p))
}

// DELETE /persons/{id}
func (h *PersonHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), strings.TrimSpace(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
