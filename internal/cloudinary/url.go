// Package cloudinary builds delivery URLs for the image CDN. Uploads are
// handled by the migration tooling; this package only derives transformed
// URLs from public ids.
package cloudinary

import (
	"fmt"
	"net/url"
	"strings"
)

// TransformOptions mirror the CDN's URL transformation parameters. Zero
// values are omitted from the generated URL.
type TransformOptions struct {
	Width      int
	Height     int
	Crop       string // fill, fit, scale, pad, crop, thumb
	Gravity    string // auto, center, face, faces
	Quality    string // "auto" or a number
	Format     string // auto, webp, avif, jpg, png
	DPR        string // "auto" or a number
	Effect     string
	Blur       int
	Brightness int
	Contrast   int
	Saturation int
}

// Builder derives delivery URLs for one cloud and folder.
type Builder struct {
	cloudName string
	folder    string
}

func NewBuilder(cloudName, folder string) *Builder {
	return &Builder{cloudName: cloudName, folder: folder}
}

// URL returns the transformed delivery URL for a public id. Public ids
// already carrying the folder prefix are not prefixed again.
func (b *Builder) URL(publicID string, opts TransformOptions) string {
	if opts.Crop == "" {
		opts.Crop = "fill"
	}
	if opts.Gravity == "" {
		opts.Gravity = "auto"
	}
	if opts.Quality == "" {
		opts.Quality = "auto"
	}
	if opts.Format == "" {
		opts.Format = "auto"
	}
	if opts.DPR == "" {
		opts.DPR = "auto"
	}

	var transformations []string

	if opts.Width > 0 || opts.Height > 0 {
		dims := []string{"c_" + opts.Crop}
		if opts.Width > 0 {
			dims = append(dims, fmt.Sprintf("w_%d", opts.Width))
		}
		if opts.Height > 0 {
			dims = append(dims, fmt.Sprintf("h_%d", opts.Height))
		}
		dims = append(dims, "g_"+opts.Gravity)
		transformations = append(transformations, strings.Join(dims, ","))
	}

	delivery := []string{
		"q_" + opts.Quality,
		"f_" + opts.Format,
		"dpr_" + opts.DPR,
	}
	transformations = append(transformations, strings.Join(delivery, ","))

	if opts.Effect != "" {
		transformations = append(transformations, "e_"+opts.Effect)
	}
	if opts.Blur > 0 {
		transformations = append(transformations, fmt.Sprintf("e_blur:%d", opts.Blur))
	}
	if opts.Brightness != 0 {
		transformations = append(transformations, fmt.Sprintf("e_brightness:%d", opts.Brightness))
	}
	if opts.Contrast != 0 {
		transformations = append(transformations, fmt.Sprintf("e_contrast:%d", opts.Contrast))
	}
	if opts.Saturation != 0 {
		transformations = append(transformations, fmt.Sprintf("e_saturation:%d", opts.Saturation))
	}

	fullID := publicID
	if b.folder != "" && !strings.HasPrefix(publicID, b.folder) {
		fullID = b.folder + "/" + publicID
	}

	segments := strings.Split(fullID, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s/%s",
		b.cloudName, strings.Join(transformations, "/"), strings.Join(segments, "/"))
}

// ResponsiveSet returns a srcset covering the standard breakpoints up to
// twice the base width, plus a matching sizes attribute.
func (b *Builder) ResponsiveSet(publicID string, baseWidth int, aspectRatio float64) (srcset, sizes string) {
	if baseWidth <= 0 {
		baseWidth = 800
	}
	if aspectRatio <= 0 {
		aspectRatio = 1
	}

	breakpoints := []int{400, 800, 1200, 1600, 2400}
	var entries []string
	for _, width := range breakpoints {
		if width > baseWidth*2 {
			continue
		}
		height := int(float64(width)*aspectRatio + 0.5)
		u := b.URL(publicID, TransformOptions{Width: width, Height: height})
		entries = append(entries, fmt.Sprintf("%s %dw", u, width))
	}

	srcset = strings.Join(entries, ", ")
	sizes = fmt.Sprintf("(max-width: 640px) 100vw, (max-width: 1024px) 50vw, %dpx", baseWidth)
	return srcset, sizes
}

// Display presets used across product and content pages.

func (b *Builder) ProductHero(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 800, Height: 800})
}

func (b *Builder) ProductThumbnail(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 300, Height: 300})
}

func (b *Builder) ProductGallery(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 600, Height: 600})
}

func (b *Builder) HeroImage(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 1920, Height: 800})
}

func (b *Builder) CategoryCard(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 600, Height: 400})
}

func (b *Builder) BlogFeatured(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 1200, Height: 630})
}

func (b *Builder) BlogThumbnail(publicID string) string {
	return b.URL(publicID, TransformOptions{Width: 400, Height: 250})
}
