package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"sme-storefront/internal/catalog"
	"sme-storefront/internal/config"
)

// migrateimages uploads every catalog image to Cloudinary and writes a
// mapping from the original path to the hosted public ID.
func main() {
	var (
		srcBase string
		outPath string
		dryRun  bool
	)
	flag.StringVar(&srcBase, "src", "https://soulminerseden.com", "Base URL or directory the image paths resolve against")
	flag.StringVar(&outPath, "out", "image-url-mapping.json", "Where to write the path-to-public-ID mapping")
	flag.BoolVar(&dryRun, "dry-run", false, "List uploads without performing them")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[images] ", log.LstdFlags)

	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		logger.Fatal("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		logger.Fatalf("init cloudinary: %v", err)
	}

	ctx := context.Background()
	mapping := map[string]string{}
	uploaded, failed := 0, 0

	for _, p := range cat.All() {
		images := append([]string{p.Images.Primary}, p.Images.Gallery...)
		for _, img := range images {
			if img == "" {
				continue
			}

			publicID := publicIDFor(img)
			source := srcBase + img

			if dryRun {
				fmt.Printf("would upload %s -> %s\n", source, publicID)
				mapping[img] = publicID
				continue
			}

			res, err := cld.Upload.Upload(ctx, source, uploader.UploadParams{
				PublicID: publicID,
				Folder:   cfg.CloudinaryFolder,
			})
			if err != nil {
				logger.Printf("upload %s: %v", source, err)
				failed++
				continue
			}
			mapping[img] = res.PublicID
			uploaded++
			fmt.Printf("uploaded %s -> %s\n", img, res.PublicID)
		}
	}

	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		logger.Fatalf("encode mapping: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		logger.Fatalf("write %s: %v", outPath, err)
	}

	fmt.Printf("Done: %d uploaded, %d failed, mapping written to %s\n", uploaded, failed, outPath)
	if failed > 0 {
		os.Exit(1)
	}
}

// publicIDFor derives a stable public ID from an image path, e.g.
// "/images/products/humus-compost.jpg" -> "products/humus-compost".
func publicIDFor(imagePath string) string {
	trimmed := strings.TrimPrefix(imagePath, "/images/")
	trimmed = strings.TrimPrefix(trimmed, "/")
	ext := path.Ext(trimmed)
	return strings.TrimSuffix(trimmed, ext)
}
