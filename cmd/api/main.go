package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mikopo.org/internal/httpapi"
	"mikopo.org/internal/notify"
	"mikopo.org/internal/obs"
	"mikopo.org/internal/portfolio"
	"mikopo.org/internal/session"
	"mikopo.org/internal/store/local"
	"mikopo.org/internal/store/pg"
	"mikopo.org/internal/tenant"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	// Local .env overrides for development; absent in production.
	_ = godotenv.Overload()

	obs.Init()
	obs.InitBuildInfo(version, commit)

	if os.Getenv("MIKOPO_AUTH_SECRET") == "" {
		// Sessions still need a signing key in dev setups.
		os.Setenv("MIKOPO_AUTH_SECRET", "mikopo-dev-secret")
		log.Println("MIKOPO_AUTH_SECRET not set; using the development default")
	}

	ctx := context.Background()

	cachePath := os.Getenv("MIKOPO_CACHE_PATH")
	if cachePath == "" {
		cachePath = "mikopo.db"
	}
	cache, err := local.Open(ctx, cachePath)
	if err != nil {
		log.Fatalf("open cache: %v", err)
	}

	// Remote directory is optional; without a DSN every flow runs against
	// the cache alone.
	var dir *pg.Directory
	if dsn := os.Getenv("MIKOPO_PG_DSN"); dsn != "" {
		dir, err = pg.Open(dsn)
		if err != nil {
			log.Fatalf("open remote directory: %v", err)
		}
	}

	notices := notify.New()

	var directory tenant.Directory
	rp := httpapi.ReadyProbe{Local: cache.DB()}
	if dir != nil {
		directory = dir
		rp.Remote = dir.DB()
	}

	resolver := session.NewResolver(directory, cache)
	onboarding := tenant.NewOnboarding(cache, directory, notices)

	snapshot := portfolio.NewSnapshot()
	if err := loadPortfolio(ctx, cache, snapshot); err != nil {
		log.Fatalf("load portfolio: %v", err)
	}

	api := httpapi.New(rp, version, resolver, onboarding, snapshot, notices)

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting mikopo-api %s on %s", version, srv.Addr)

	// graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = cache.Close()
	if dir != nil {
		_ = dir.Close()
	}
	log.Println("Stopped")
}

// loadPortfolio fills the in-memory snapshot from the cache document,
// seeding demo data on first run so the insight panels have something to
// chew on.
func loadPortfolio(ctx context.Context, cache *local.Store, snapshot *portfolio.Snapshot) error {
	doc, err := cache.Document(ctx)
	if err != nil {
		return err
	}
	if len(doc.Loans) == 0 {
		gen := portfolio.NewGenerator(0)
		doc.Clients, doc.Loans, doc.Savings = gen.Portfolio("demo-org", 12)
		if err := cache.SaveDocument(ctx, doc); err != nil {
			return err
		}
	}
	snapshot.Replace(doc.Clients, doc.Loans, doc.Savings)
	return nil
}
