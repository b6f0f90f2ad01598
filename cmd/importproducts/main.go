package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"sme-storefront/internal/catalog"
	"sme-storefront/internal/config"
	"sme-storefront/internal/importer"
	"sme-storefront/internal/medusa"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[import] ", log.LstdFlags)

	if cfg.MedusaAdminEmail == "" || cfg.MedusaAdminPassword == "" {
		logger.Fatal("MEDUSA_ADMIN_EMAIL and MEDUSA_ADMIN_PASSWORD are required")
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	ctx := context.Background()
	admin := medusa.NewAdmin(cfg.MedusaBackendURL)
	if err := admin.Login(ctx, cfg.MedusaAdminEmail, cfg.MedusaAdminPassword); err != nil {
		logger.Fatalf("admin login: %v", err)
	}

	imp := importer.New(admin, logger)

	start := time.Now()
	count, err := imp.Run(ctx, cat.All())
	if err != nil {
		logger.Printf("import finished with errors: %v", err)
	}

	fmt.Printf("Imported %d/%d products in %s\n", count, len(cat.All()), time.Since(start).Truncate(time.Millisecond))
	if err != nil {
		os.Exit(1)
	}
}
