package seed

import (
	"strings"

	"github.com/lmercier/maisoncafe/internal/domain"
)

// FixImagePath rewrites image references inherited from older data dumps.
// Paths that went through the removed asset pipeline ("attached_assets"
// directories or dev-server "/@fs/" mounts) are reduced to the bare file
// name, served from the public root.
func FixImagePath(p string) string {
	if p == "" {
		return p
	}
	if strings.Contains(p, "attached_assets") || strings.Contains(p, "/@fs/") {
		parts := strings.Split(p, "/")
		return "/" + parts[len(parts)-1]
	}
	return p
}

// NormalizeProduct applies FixImagePath to every image reference of p.
// Idempotent, so it is safe to run on every startup.
func NormalizeProduct(p domain.Product) domain.Product {
	p.Image = FixImagePath(p.Image)
	if len(p.Images) > 0 {
		imgs := make([]string, len(p.Images))
		for i, img := range p.Images {
			imgs[i] = FixImagePath(img)
		}
		p.Images = imgs
	}
	return p
}

// NormalizeProducts maps NormalizeProduct over a stored catalog and
// reports whether anything actually changed.
func NormalizeProducts(list []domain.Product) ([]domain.Product, bool) {
	changed := false
	out := make([]domain.Product, len(list))
	for i, p := range list {
		n := NormalizeProduct(p)
		if n.Image != p.Image || !equalStrings(n.Images, p.Images) {
			changed = true
		}
		out[i] = n
	}
	return out, changed
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
