// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient は firebase auth クライアントのエイリアス。
// 呼び出し側が fbauth を直接 import せずに済むようにしている。
type FirebaseAuthClient = fbauth.Client

// TokenVerifier は ID トークン検証に必要な最小の面。
// *fbauth.Client がそのまま満たす。
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// context keys（衝突防止のため非公開の struct key を使う）
type ctxKey struct{ name string }

var (
	ctxKeyUID   = ctxKey{name: "uid"}
	ctxKeyEmail = ctxKey{name: "email"}
)

// AuthMiddleware verifies Firebase ID token and stores uid/email in context.
// - Authorization: Bearer <ID_TOKEN> を検証
// - スタッフ用エンドポイント（登録・配布・削除系）を想定
type AuthMiddleware struct {
	FirebaseAuth TokenVerifier
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		// Firebase ID トークン検証
		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)

		// email クレームがあれば context にも入れておく
		if emailRaw, ok := token.Claims["email"]; ok {
			if emailStr, ok2 := emailRaw.(string); ok2 {
				emailStr = strings.TrimSpace(emailStr)
				if emailStr != "" {
					ctx = context.WithValue(ctx, ctxKeyEmail, emailStr)
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUIDAndEmail returns the verified uid/email stored by AuthMiddleware.
func CurrentUIDAndEmail(r *http.Request) (uid string, email string, ok bool) {
	vUID := r.Context().Value(ctxKeyUID)
	uid, okUID := vUID.(string)
	if !okUID || strings.TrimSpace(uid) == "" {
		return "", "", false
	}
	if vEmail := r.Context().Value(ctxKeyEmail); vEmail != nil {
		if e, ok2 := vEmail.(string); ok2 {
			email = e
		}
	}
	return uid, email, true
}
