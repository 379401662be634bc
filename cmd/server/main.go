package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	_ "github.com/mattn/go-sqlite3"

	"github.com/quadrantlabs/lsq/internal/api"
	"github.com/quadrantlabs/lsq/internal/db"
	"github.com/quadrantlabs/lsq/internal/middleware"
	"github.com/quadrantlabs/lsq/internal/utils"
)

// Set via -ldflags at build time.
var (
	commit    = "dev"
	buildTime = "unknown"
)

type config struct {
	Addr          string   `env:"LSQ_ADDR" envDefault:":8080"`
	SQLitePath    string   `env:"LSQ_SQLITE_PATH" envDefault:"data/lsq.db"`
	MigrationsDir string   `env:"LSQ_MIGRATIONS_DIR"`
	JWTSecret     string   `env:"LSQ_JWT_SECRET"`
	Locales       []string `env:"LSQ_LOCALES" envDefault:"en,es"`
	DefaultLocale string   `env:"LSQ_DEFAULT_LOCALE" envDefault:"en"`
	AdminEmail    string   `env:"LSQ_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminName     string   `env:"LSQ_ADMIN_NAME" envDefault:"Administrator"`
	AdminPassword string   `env:"LSQ_ADMIN_PASSWORD"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}
	if cfg.JWTSecret != "" {
		middleware.SetSecret(cfg.JWTSecret)
	}

	if dir := filepath.Dir(cfg.SQLitePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create data dir: %v", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.ToSlash(cfg.SQLitePath))
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(sqlDB, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	store, err := db.NewSQLiteStore(sqlDB)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}
	if err := store.SeedQuestions(); err != nil {
		log.Fatalf("seed questions: %v", err)
	}
	if cfg.AdminPassword == "" {
		log.Printf("LSQ_ADMIN_PASSWORD not set, skipping admin bootstrap")
	} else if err := store.SeedAdmin(cfg.AdminEmail, cfg.AdminName, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		locale := middleware.LocaleFromContext(r.Context())
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":%q}`, utils.T(locale, "health.ok"))
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"commit":%q,"build_time":%q}`, commit, buildTime)
	})

	handler := middleware.NoStore(
		middleware.SecureHeaders(
			middleware.CORS(
				middleware.Locale(cfg.Locales, cfg.DefaultLocale)(
					middleware.WithAuth(mux)))))

	log.Printf("listening on %s (db %s)", cfg.Addr, cfg.SQLitePath)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
