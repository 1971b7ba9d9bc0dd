package api

import (
	"testing"
)

func TestAllowedExtension(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	jpegMagic := []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}

	tests := []struct {
		name     string
		declared string
		filename string
		data     []byte
		wantExt  string
		wantOK   bool
	}{
		{"declared png", "image/png", "photo.png", pngMagic, "png", true},
		{"declared with charset", "image/jpeg; charset=binary", "photo.jpg", jpegMagic, "jpg", true},
		{"sniffed jpeg without declaration", "", "photo", jpegMagic, "jpg", true},
		{"svg by extension", "", "icon.svg", []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"></svg>"), "svg", true},
		{"pdf rejected", "application/pdf", "doc.pdf", []byte("%PDF-1.4"), "", false},
		{"executable rejected", "", "tool.exe", []byte{0x4d, 0x5a, 0x90, 0x00}, "", false},
		{"html rejected despite svg name", "", "page.svg", []byte("<html><body></body></html>"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, ok := allowedExtension(tt.declared, tt.filename, tt.data)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ext != tt.wantExt {
				t.Errorf("ext = %q, want %q", ext, tt.wantExt)
			}
		})
	}
}

func TestPublicURL(t *testing.T) {
	h := &HTTPHandler{storagePublicBase: "/files"}

	tests := []struct {
		in   string
		want string
	}{
		{"products/2026/08/29/a.png", "/files/products/2026/08/29/a.png"},
		{"/products/a.png", "/files/products/a.png"},
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := h.publicURL(tt.in); got != tt.want {
			t.Errorf("publicURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalisePublicBase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/files"},
		{"files", "/files"},
		{"/uploads/", "/uploads"},
		{"https://cdn.example.com/", "https://cdn.example.com"},
	}
	for _, tt := range tests {
		if got := normalisePublicBase(tt.in); got != tt.want {
			t.Errorf("normalisePublicBase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
