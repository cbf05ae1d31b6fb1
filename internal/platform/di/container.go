// internal/platform/di/container.go
package di

import (
	"context"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"

	httpin "reliefdesk/internal/adapters/in/http"
	"reliefdesk/internal/adapters/in/http/middleware"
	pgout "reliefdesk/internal/adapters/out/db"
	fs "reliefdesk/internal/adapters/out/firestore"
	gcsout "reliefdesk/internal/adapters/out/gcs"
	mailout "reliefdesk/internal/adapters/out/mail"
	usecase "reliefdesk/internal/application/usecase"
	appcfg "reliefdesk/internal/infra/config"
	"reliefdesk/internal/infra/database"
	firestoreinfra "reliefdesk/internal/infra/firestore"
)

// Container owns external clients and wires repositories, the stock ledger
// and all usecases.
//
// 必須: Firestore（在庫台帳の本体）
// 任意: Postgres ジャーナル / GCS 写真 / SendGrid メール / Firebase 認証
// 任意の依存は WARN を出して nil のまま進める。
type Container struct {
	Config *appcfg.Config

	// Clients (owned; Close-managed)
	Firestore     *firestoreinfra.ClientWrapper
	DB            *database.DB
	GCS           *storage.Client
	SecretManager *secretmanager.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client

	// Usecases
	CatalogUC   *usecase.CatalogUsecase
	StockUC     *usecase.StockUsecase
	DonationUC  *usecase.DonationUsecase
	DeliveryUC  *usecase.DeliveryUsecase
	PersonUC    *usecase.PersonUsecase
	VolunteerUC *usecase.VolunteerUsecase
	VisitUC     *usecase.VisitUsecase
}

// ========================================
// NewContainer
// ========================================

func NewContainer(ctx context.Context) (*Container, error) {
	// 1. Load config
	cfg := appcfg.Load()

	c := &Container{Config: cfg}

	// 2. Initialize Firestore client（必須）
	fsw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		return nil, err
	}
	c.Firestore = fsw

	// 3. Optional: Postgres journal
	var journal usecase.MovementJournalPort
	if cfg.HasPostgres() {
		db, err := database.NewConnection(cfg.PGHost, cfg.PGPort, cfg.PGUser, cfg.PGPassword, cfg.PGDBName)
		if err != nil {
			log.Printf("[container] WARN: postgres init failed: %v (movement journal disabled)", err)
		} else {
			c.DB = db
			j := pgout.NewMovementJournalPG(db.Client)
			if err := j.EnsureSchema(ctx); err != nil {
				log.Printf("[container] WARN: journal schema init failed: %v (movement journal disabled)", err)
			} else {
				journal = j
				log.Printf("[container] movement journal enabled (postgres)")
			}
		}
	} else {
		log.Printf("[container] movement journal not configured (PG_HOST empty)")
	}

	// 4. Optional: GCS photo store
	var photos usecase.VisitPhotoStorePort
	if strings.TrimSpace(cfg.GCSBucket) != "" {
		gcsClient, err := storage.NewClient(ctx)
		if err != nil {
			log.Printf("[container] WARN: gcs init failed: %v (photo upload disabled)", err)
		} else {
			c.GCS = gcsClient
			photos = gcsout.NewVisitPhotoRepositoryGCS(gcsClient, cfg.GCSBucket)
			log.Printf("[container] visit photo store enabled bucket=%s", cfg.GCSBucket)
		}
	} else {
		log.Printf("[container] visit photo store not configured (GCS_BUCKET empty)")
	}

	// 5. Optional: SendGrid mailer（API キーは Secret Manager 経由でも解決できる）
	var mailer usecase.WelcomeMailerPort
	{
		apiKey := strings.TrimSpace(cfg.SendGridAPIKey)
		if apiKey == "" && strings.TrimSpace(cfg.SendGridSecretName) != "" {
			sm, err := secretmanager.NewClient(ctx)
			if err != nil {
				log.Printf("[container] WARN: secretmanager.NewClient failed: %v (welcome mail disabled)", err)
			} else {
				c.SecretManager = sm
				key, err := accessSecret(ctx, sm, cfg.FirestoreProjectID, cfg.SendGridSecretName)
				if err != nil {
					log.Printf("[container] WARN: sendgrid key fetch failed: %v (welcome mail disabled)", err)
				} else {
					apiKey = key
				}
			}
		}
		if apiKey != "" && strings.TrimSpace(cfg.SendGridFrom) != "" {
			mailer = mailout.NewWelcomeMailerWithSendGrid(apiKey, cfg.SendGridFrom)
		} else {
			log.Printf("[container] welcome mail not configured")
		}
	}

	// 6. Optional: Firebase Auth
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: cfg.FirebaseProjectID,
	})
	if err != nil {
		log.Printf("[container] WARN: firebase app init failed: %v", err)
	} else {
		c.FirebaseApp = fbApp
		authClient, err := fbApp.Auth(ctx)
		if err != nil {
			log.Printf("[container] WARN: firebase auth init failed: %v", err)
		} else {
			c.FirebaseAuth = authClient
			log.Printf("[container] Firebase Auth initialized")
		}
	}

	// 7. Outbound adapters (repositories)
	fsClient := fsw.Client
	articleRepo := fs.NewArticleRepositoryFS(fsClient)
	stockRepo := fs.NewStockRepositoryFS(fsClient)
	donationRepo := fs.NewDonationRepositoryFS(fsClient)
	deliveryRepo := fs.NewDeliveryRepositoryFS(fsClient)
	personRepo := fs.NewPersonRepositoryFS(fsClient)
	volunteerRepo := fs.NewVolunteerRepositoryFS(fsClient)
	visitRepo := fs.NewVisitRepositoryFS(fsClient)

	batches := fs.NewBatchFactory(fsClient)

	// 8. Core workflow services
	resolver := usecase.NewCatalogResolver(articleRepo)
	ledger := usecase.NewStockLedger(stockRepo)

	// 9. Usecases
	c.CatalogUC = usecase.NewCatalogUsecase(articleRepo)
	c.StockUC = usecase.NewStockUsecase(stockRepo)
	c.DonationUC = usecase.NewDonationUsecase(donationRepo, resolver, ledger, batches, journal)
	c.DeliveryUC = usecase.NewDeliveryUsecase(deliveryRepo, ledger, batches, journal)
	c.PersonUC = usecase.NewPersonUsecase(personRepo)
	c.VolunteerUC = usecase.NewVolunteerUsecase(volunteerRepo, mailer)
	c.VisitUC = usecase.NewVisitUsecase(visitRepo, photos)

	return c, nil
}

// RouterDeps exposes the wired usecases to the HTTP layer.
func (c *Container) RouterDeps() httpin.RouterDeps {
	deps := httpin.RouterDeps{
		CatalogUC:   c.CatalogUC,
		StockUC:     c.StockUC,
		DonationUC:  c.DonationUC,
		DeliveryUC:  c.DeliveryUC,
		PersonUC:    c.PersonUC,
		VolunteerUC: c.VolunteerUC,
		VisitUC:     c.VisitUC,
	}
	if c.FirebaseAuth != nil {
		deps.Auth = &middleware.AuthMiddleware{FirebaseAuth: c.FirebaseAuth}
	}
	return deps
}

// Close releases owned clients in reverse init order.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.SecretManager != nil {
		if err := c.SecretManager.Close(); err != nil {
			log.Printf("[container] secretmanager close error: %v", err)
		}
	}
	if c.GCS != nil {
		if err := c.GCS.Close(); err != nil {
			log.Printf("[container] gcs close error: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[container] db close error: %v", err)
		}
	}
	if c.Firestore != nil {
		if err := c.Firestore.Close(); err != nil {
			log.Printf("[container] firestore close error: %v", err)
		}
	}
}
