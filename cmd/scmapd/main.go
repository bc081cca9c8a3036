// Command scmapd is the hosted election-map platform service.
// It serves the dashboard REST API, the pipeline webhook endpoint,
// Prometheus metrics, and a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/russellteter/sc-election-map-2026-sub002/internal/api"
	"github.com/russellteter/sc-election-map-2026-sub002/internal/catalog"
	"github.com/russellteter/sc-election-map-2026-sub002/internal/ingestion"
	"github.com/russellteter/sc-election-map-2026-sub002/internal/observability"
	"github.com/russellteter/sc-election-map-2026-sub002/internal/platform"
	"github.com/russellteter/sc-election-map-2026-sub002/internal/webhook"
)

type config struct {
	Port             string
	DatabaseURL      string
	WebhookSecret    string
	APIKey           string
	DatasetStorage   string // local, s3, or gcs
	LocalStoragePath string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	GCSBucket        string
	RateLimitRPS     float64
	RateLimitBurst   int
}

func loadConfig() config {
	return config{
		Port:             envOrDefault("PORT", "8080"),
		DatabaseURL:      envOrDefault("DATABASE_URL", "postgres://localhost:5432/scmap?sslmode=disable"),
		WebhookSecret:    os.Getenv("WEBHOOK_SECRET"),
		APIKey:           os.Getenv("API_KEY"),
		DatasetStorage:   envOrDefault("DATASET_STORAGE", "local"),
		LocalStoragePath: envOrDefault("LOCAL_STORAGE_PATH", "/tmp/scmap-data"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Region:         os.Getenv("AWS_REGION"),
		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3AccessKey:      os.Getenv("AWS_ACCESS_KEY_ID"),
		S3SecretKey:      os.Getenv("AWS_SECRET_ACCESS_KEY"),
		GCSBucket:        os.Getenv("GCS_BUCKET"),
		RateLimitRPS:     envFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:   envInt("RATE_LIMIT_BURST", 0),
	}
}

func main() {
	// Local development reads .env; deployed environments set real vars.
	_ = godotenv.Load()

	cfg := loadConfig()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	storage, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("configure dataset storage: %v", err)
	}

	metrics := observability.NewMetrics()
	catalogSvc := catalog.NewService(db)
	ingestSvc := ingestion.NewService(db, catalogSvc, storage, nil, metrics)

	apiHandler := api.NewHandler(catalogSvc, ingestSvc, nil, metrics)
	apiMux := http.NewServeMux()
	apiHandler.RegisterRoutes(apiMux)
	protected := api.APIKeyAuth(cfg.APIKey)(api.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)(apiMux))

	webhookHandler := webhook.NewHandler([]byte(cfg.WebhookSecret), ingestSvc)

	// The webhook authenticates with its own HMAC signature and the
	// health and metrics endpoints are probed unauthenticated, so only
	// the API routes sit behind the key.
	mux := http.NewServeMux()
	mux.Handle("/api/v1/", protected)
	mux.Handle("POST /v1/webhooks/pipeline", webhookHandler)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.CORS(mux),
	}

	go func() {
		log.Printf("starting scmapd on :%s (storage: %s)", cfg.Port, cfg.DatasetStorage)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func buildStorage(ctx context.Context, cfg config) (ingestion.StorageClient, error) {
	switch cfg.DatasetStorage {
	case "local":
		return ingestion.NewLocalStorage(cfg.LocalStoragePath), nil
	case "s3":
		return ingestion.NewS3Storage(ctx, ingestion.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "gcs":
		return ingestion.NewGCSStorage(ctx, cfg.GCSBucket)
	default:
		return nil, fmt.Errorf("unknown DATASET_STORAGE %q (supported: local, s3, gcs)", cfg.DatasetStorage)
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
		log.Printf("ignoring invalid %s=%q", key, v)
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
		log.Printf("ignoring invalid %s=%q", key, v)
	}
	return defaultVal
}
