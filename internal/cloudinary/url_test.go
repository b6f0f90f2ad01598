package cloudinary

import (
	"strings"
	"testing"
)

func TestURLWithDimensions(t *testing.T) {
	b := NewBuilder("demo-cloud", "eden")
	got := b.URL("products/compost.jpg", TransformOptions{Width: 800, Height: 600})

	if !strings.HasPrefix(got, "https://res.cloudinary.com/demo-cloud/image/upload/") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	for _, part := range []string{"c_fill", "w_800", "h_600", "g_auto", "q_auto", "f_auto", "dpr_auto"} {
		if !strings.Contains(got, part) {
			t.Fatalf("missing %q in %q", part, got)
		}
	}
	if !strings.HasSuffix(got, "/eden/products/compost.jpg") {
		t.Fatalf("folder not prefixed: %q", got)
	}
}

func TestURLDoesNotDoubleFolder(t *testing.T) {
	b := NewBuilder("demo-cloud", "eden")
	got := b.URL("eden/products/compost.jpg", TransformOptions{})
	if strings.Contains(got, "eden/eden") {
		t.Fatalf("folder applied twice: %q", got)
	}
}

func TestURLEscapesSegments(t *testing.T) {
	b := NewBuilder("demo-cloud", "Soul Miner's")
	got := b.URL("products/compost pile.jpg", TransformOptions{})
	if strings.Contains(got, " ") {
		t.Fatalf("unescaped spaces in %q", got)
	}
}

func TestURLEffects(t *testing.T) {
	b := NewBuilder("demo-cloud", "")
	got := b.URL("hero.jpg", TransformOptions{Blur: 200, Brightness: 10})
	if !strings.Contains(got, "e_blur:200") || !strings.Contains(got, "e_brightness:10") {
		t.Fatalf("effects missing in %q", got)
	}
}

func TestResponsiveSet(t *testing.T) {
	b := NewBuilder("demo-cloud", "eden")
	srcset, sizes := b.ResponsiveSet("hero.jpg", 800, 0.75)

	entries := strings.Split(srcset, ", ")
	if len(entries) != 3 { // 400, 800, 1200 <= 1600
		t.Fatalf("expected 3 srcset entries, got %d: %q", len(entries), srcset)
	}
	if !strings.HasSuffix(entries[0], " 400w") {
		t.Fatalf("unexpected first entry %q", entries[0])
	}
	if !strings.Contains(entries[0], "h_300") {
		t.Fatalf("aspect ratio not applied: %q", entries[0])
	}
	if !strings.Contains(sizes, "800px") {
		t.Fatalf("unexpected sizes %q", sizes)
	}
}

func TestPresets(t *testing.T) {
	b := NewBuilder("demo-cloud", "eden")
	if got := b.ProductThumbnail("p.jpg"); !strings.Contains(got, "w_300,h_300") {
		t.Fatalf("unexpected thumbnail URL %q", got)
	}
	if got := b.BlogFeatured("p.jpg"); !strings.Contains(got, "w_1200,h_630") {
		t.Fatalf("unexpected featured URL %q", got)
	}
}
