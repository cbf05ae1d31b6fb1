// internal/adapters/in/http/middleware/recover.go
package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
)

// Recover converts a handler panic into a 500 with the same JSON error shape
// the domain handlers use. The panic value and stack go to the logs only;
// the response body never carries them.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[recover] PANIC %s %s: %v\n%s", r.Method, r.URL.Path, rec, string(debug.Stack()))

				// ここで必ずレスポンスを返す（Cloud Run に 503 を作らせない）
				// ※ CORS は外側で付ける（チェーン順が重要）
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal_error"}`))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
