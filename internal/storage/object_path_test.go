package storage

import (
	"strings"
	"testing"
)

func TestSanitizePathSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"products", "products"},
		{"Products", "products"},
		{"  product images ", "productimages"},
		{"../../etc/passwd", "etcpasswd"},
		{"img_2024-01", "img_2024-01"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizePathSegment(tt.in); got != tt.want {
			t.Errorf("sanitizePathSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"png", "png"},
		{".PNG", "png"},
		{"  .jpeg ", "jpeg"},
		{"", "bin"},
	}
	for _, tt := range tests {
		if got := normalizeExtension(tt.in); got != tt.want {
			t.Errorf("normalizeExtension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildObjectPath(t *testing.T) {
	key := buildObjectPath("products", "labial rojo", "webp")
	if !strings.HasPrefix(key, "products/") {
		t.Errorf("key = %q, want products/ prefix", key)
	}
	if !strings.HasSuffix(key, "/labial-rojo.webp") {
		t.Errorf("key = %q, want labial-rojo.webp name", key)
	}

	// No base name falls back to a timestamp.
	key = buildObjectPath("", "", "")
	if !strings.HasPrefix(key, "misc/") || !strings.HasSuffix(key, ".bin") {
		t.Errorf("key = %q, want misc/ prefix and .bin suffix", key)
	}
}

func TestJoinPrefix(t *testing.T) {
	if got := joinPrefix("uploads/", "/a/b.png"); got != "uploads/a/b.png" {
		t.Errorf("joinPrefix = %q", got)
	}
	if got := joinPrefix("", "a/b.png"); got != "a/b.png" {
		t.Errorf("joinPrefix without prefix = %q", got)
	}
}
