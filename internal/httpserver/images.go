package httpserver

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"sme-storefront/internal/catalog"
	"sme-storefront/internal/cloudinary"
)

type imageSet struct {
	Hero      string `json:"hero"`
	Thumbnail string `json:"thumbnail"`
	Gallery   string `json:"gallery"`
	Srcset    string `json:"srcset"`
	Sizes     string `json:"sizes"`
}

// productImagesHandler resolves a product's image paths to hosted,
// transformation-ready URLs.
func productImagesHandler(c *catalog.Catalog, images *cloudinary.Builder) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		product := c.BySlug(ctx.Param("slug"))
		if product == nil {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}

		primary := imagePublicID(product.Images.Primary)
		srcset, sizes := images.ResponsiveSet(primary, 800, 1)

		out := gin.H{
			"primary": imageSet{
				Hero:      images.ProductHero(primary),
				Thumbnail: images.ProductThumbnail(primary),
				Gallery:   images.ProductGallery(primary),
				Srcset:    srcset,
				Sizes:     sizes,
			},
		}

		gallery := make([]string, 0, len(product.Images.Gallery))
		for _, img := range product.Images.Gallery {
			gallery = append(gallery, images.ProductGallery(imagePublicID(img)))
		}
		out["gallery"] = gallery

		ctx.JSON(http.StatusOK, out)
	}
}

// imagePublicID maps a catalog image path onto its hosted public ID,
// mirroring the upload tooling's naming.
func imagePublicID(imagePath string) string {
	trimmed := strings.TrimPrefix(imagePath, "/images/")
	trimmed = strings.TrimPrefix(trimmed, "/")
	return strings.TrimSuffix(trimmed, path.Ext(trimmed))
}
