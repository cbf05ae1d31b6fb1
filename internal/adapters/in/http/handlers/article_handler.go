// internal/adapters/in/http/handlers/article_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "reliefdesk/internal/application/usecase"
	artdom "reliefdesk/internal/domain/article"
)

// ArticleHandler は /articles 関連のエンドポイントを担当します。
//
//	POST   /articles        カタログ登録（同名は既存を返す）
//	GET    /articles        一覧
//	GET    /articles/{id}   単一取得
//	DELETE /articles/{id}   削除
type ArticleHandler struct {
	uc *usecase.CatalogUsecase
}

func NewArticleHandler(uc *usecase.CatalogUsecase) http.Handler {
	return &ArticleHandler{uc: uc}
}

func (h *ArticleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := pathTail(r.URL.Path, "/articles")

	switch {
	case r.Method == http.MethodPost && id == "":
		h.create(w, r)
	case r.Method == http.MethodGet && id == "":
		h.list(w, r)
	case r.Method == http.MethodGet:
		h.get(w, r, id)
	case r.Method == http.MethodDelete && id != "":
		h.delete(w, r, id)
	default:
		writeErrMsg(w, http.StatusNotFound, "not_found")
	}
}

type articleCreateReq struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
}

func articleToDTO(a artdom.Article) map[string]any {
	return map[string]any{
		"id":        a.ID,
		"name":      a.Name,
		"unit":      a.Unit,
		"category":  a.Category,
		"createdAt": a.CreatedAt,
	}
}

// POST /articles
func (h *ArticleHandler) create(w http.ResponseWriter, r *http.Request) {
	var req articleCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrMsg(w, http.StatusBadRequest, "invalid json body")
		return
	}

	a, err := h.uc.Create(r.Context(), req.Name, req.Unit, req.Category)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, articleToDTO(a))
}

// GET /articles
func (h *ArticleHandler) list(w http.ResponseWriter, r *http.Request) {
	as, err := h.uc.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]map[string]any, 0, len(as))
	for _, a := range as {
		out = append(out, articleToDTO(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /articles/{id}
func (h *ArticleHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	a, err := h.uc.GetByID(r.Context(), strings.TrimSpace(id))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articleToDTO(a))
}

// DELETE /articles/{id}
func (h *ArticleHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), strings.TrimSpace(id)); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
