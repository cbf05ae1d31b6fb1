// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	usecase "reliefdesk/internal/application/usecase"

	"reliefdesk/internal/adapters/in/http/handlers"
	"reliefdesk/internal/adapters/in/http/middleware"
)

// RouterDeps collects all usecases (and other dependencies) injected from main.go.
type RouterDeps struct {
	CatalogUC   *usecase.CatalogUsecase
	StockUC     *usecase.StockUsecase
	DonationUC  *usecase.DonationUsecase
	DeliveryUC  *usecase.DeliveryUsecase
	PersonUC    *usecase.PersonUsecase
	VolunteerUC *usecase.VolunteerUsecase
	VisitUC     *usecase.VisitUsecase

	// Firebase auth は任意。nil ならトークン検証なしで公開する
	// （ローカル開発・エミュレータ用）。配線された場合も読み取り系の
	// メソッドは公開のままで、書き込み系のみ検証を通す。
	Auth *middleware.AuthMiddleware
}

// NewRouter sets up HTTP routing for all domain endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// 以降、Usecase が存在するものだけマウントする
	if deps.CatalogUC != nil {
		mount(mux, "/articles", handlers.NewArticleHandler(deps.CatalogUC))
	}

	if deps.StockUC != nil {
		mount(mux, "/stocks", handlers.NewStockHandler(deps.StockUC))
	}

	if deps.DonationUC != nil {
		mount(mux, "/donations", handlers.NewDonationHandler(deps.DonationUC))
	}

	if deps.DeliveryUC != nil {
		mount(mux, "/deliveries", handlers.NewDeliveryHandler(deps.DeliveryUC))
	}

	if deps.PersonUC != nil {
		mount(mux, "/persons", handlers.NewPersonHandler(deps.PersonUC))
	}

	if deps.VolunteerUC != nil {
		mount(mux, "/volunteers", handlers.NewVolunteerHandler(deps.VolunteerUC))
	}

	if deps.VisitUC != nil {
		mount(mux, "/visits", handlers.NewVisitHandler(deps.VisitUC))
	}

	var protected http.Handler = mux
	if deps.Auth != nil {
		authed := deps.Auth.Handler(mux)
		protected = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isReadOnly(r.Method) {
				mux.ServeHTTP(w, r)
				return
			}
			authed.ServeHTTP(w, r)
		})
	}

	// Health check は認証の外に置く（Cloud Run の起動確認用）
	root := http.NewServeMux()
	root.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	root.Handle("/", protected)

	return root
}

// mount registers both "/prefix" and "/prefix/" on the mux.
func mount(mux *http.ServeMux, prefix string, h http.Handler) {
	mux.Handle(prefix, h)
	mux.Handle(prefix+"/", h)
}

// isReadOnly reports whether method never mutates state.
func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
