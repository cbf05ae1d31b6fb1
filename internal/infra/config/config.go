// internal/infra/config/config.go
package config

import "os"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port                     string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// GCS: 訪問レポート写真の保存先。未設定なら写真アップロードは無効。
	GCSBucket string

	// Postgres: 在庫変動ジャーナル。未設定ならジャーナルはスキップされる。
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDBName   string

	// SendGrid: ボランティア向けウェルカムメール。
	// APIKey が空で SecretName が設定されていれば Secret Manager から取得する。
	SendGridAPIKey     string
	SendGridSecretName string
	SendGridFrom       string

	// CORS で許可するフロントのオリジン。
	AllowedOrigin string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "reliefdesk-ops")

	return &Config{
		Port:                     getenvDefault("PORT", "8080"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		GCSBucket: os.Getenv("GCS_BUCKET"),

		PGHost:     os.Getenv("PG_HOST"),
		PGPort:     getenvDefault("PG_PORT", "5432"),
		PGUser:     os.Getenv("PG_USER"),
		PGPassword: os.Getenv("PG_PASSWORD"),
		PGDBName:   os.Getenv("PG_DBNAME"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: os.Getenv("SENDGRID_API_KEY_SECRET"),
		SendGridFrom:       os.Getenv("SENDGRID_FROM"),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),
	}
}

// HasPostgres reports whether the movement journal can be wired.
func (c *Config) HasPostgres() bool {
	return c.PGHost != "" && c.PGUser != "" && c.PGDBName != ""
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
