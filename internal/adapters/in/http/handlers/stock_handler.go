// internal/adapters/in/http/handlers/stock_handler.go
package handlers

import (
	"net/http"
	"strings"

	usecase "reliefdesk/internal/application/usecase"
	stockdom "reliefdesk/internal/domain/stock"
)

// StockHandler は /stocks 関連のエンドポイントを担当します（読み取りのみ）。
// 在庫は寄付・配給のワークフロー経由でしか動かない。
//
//	GET /stocks                一覧
//	GET /stocks/{articleId}    品目別の現在庫
type StockHandler struct {
	uc *usecase.StockUsecase
}

func NewStockHandler(uc *usecase.StockUsecase) http.Handler {
	return &StockHandler{uc: uc}
}

func (h *StockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	articleID := pathTail(r.URL.Path, "/stocks")

	switch {
	case r.Method == http.MethodGet && articleID == "":
		h.list(w, r)
	case r.Method == http.MethodGet:
		h.get(w, r, articleID)
	default:
		writeErrMsg(w, http.StatusNotFound, "not_found")
	}
}

func stockToDTO(s stockdom.Record) map[string]any {
	return map[string]any{
		"id":          s.ID,
		"articleId":   s.ArticleID,
		"articleName": s.ArticleName,
		"unit":        s.Unit,
		"quantity":    s.Quantity,
		"updatedAt":   s.UpdatedAt,
	}
}

// GET /stocks
func (h *StockHandler) list(w http.ResponseWriter, r *http.Request) {
	ss, err := h.uc.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]map[string]any, 0, len(ss))
	for _, s := range ss {
		out = append(out, stockToDTO(s))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /stocks/{articleId}
func (h *StockHandler) get(w http.ResponseWriter, r *http.Request, articleID string) {
	s, err := h.uc.GetByArticleID(r.Context(), strings.TrimSpace(articleID))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stockToDTO(s))
}
