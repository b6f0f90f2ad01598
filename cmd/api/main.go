package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sme-storefront/internal/blog"
	"sme-storefront/internal/catalog"
	"sme-storefront/internal/cloudinary"
	"sme-storefront/internal/config"
	"sme-storefront/internal/db"
	"sme-storefront/internal/fulfillment"
	"sme-storefront/internal/httpserver"
	"sme-storefront/internal/recipes"
	"sme-storefront/internal/repository/scanrepo"
	"sme-storefront/internal/scan"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}
	recipeLib, err := recipes.Load()
	if err != nil {
		logger.Fatalf("load recipes: %v", err)
	}
	blogLib, err := blog.Load()
	if err != nil {
		logger.Fatalf("load blog posts: %v", err)
	}

	deps := httpserver.Deps{
		Catalog:     cat,
		Recipes:     recipeLib,
		Blog:        blogLib,
		Fulfillment: fulfillment.NewCalculator(fulfillment.DefaultTariff()),
	}
	if cfg.CloudinaryCloudName != "" {
		deps.Images = cloudinary.NewBuilder(cfg.CloudinaryCloudName, cfg.CloudinaryFolder)
	}

	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		// The content routes work without Postgres; only scanning needs it.
		logger.Printf("connect to db: %v (scan routes disabled)", err)
		dbpool = nil
	} else {
		defer dbpool.Close()
	}

	if dbpool != nil && cfg.OriginalityAPIKey != "" {
		repo := scanrepo.NewPostgres(dbpool, logger)
		deps.Scanner = scan.New(cfg.OriginalityAPIKey, repo, logger)
	} else {
		logger.Printf("scanner disabled (db or ORIGINALITY_API_KEY missing)")
	}

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, deps)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
