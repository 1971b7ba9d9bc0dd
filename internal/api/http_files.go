package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tiendax/internal/storage"
)

// maxUploadBytes caps product image uploads at 5 MiB.
const maxUploadBytes = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/webp":    "webp",
	"image/gif":     "gif",
	"image/svg+xml": "svg",
}

func (h *HTTPHandler) publicURL(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	base := h.storagePublicBase
	if base == "" {
		base = "/files"
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), strings.TrimLeft(trimmed, "/"))
}

// UploadImage stores a product image and returns its public URL.
func (h *HTTPHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		ErrorResponse(c, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, "file exceeds the 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		logrus.WithError(err).Error("failed to read uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	if len(data) > maxUploadBytes {
		ErrorResponse(c, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, "file exceeds the 5MB limit")
		return
	}
	if len(data) == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "file is empty")
		return
	}

	ext, ok := allowedExtension(fileHeader.Header.Get("Content-Type"), fileHeader.Filename, data)
	if !ok {
		BadRequest(c, ErrCodeFileType, "only jpeg, png, webp, gif and svg images are accepted")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	baseName := strings.TrimSuffix(filepath.Base(fileHeader.Filename), filepath.Ext(fileHeader.Filename))
	key, err := h.storage.Save(ctx, data, storage.SaveOptions{
		Category:  "products",
		Extension: ext,
		BaseName:  baseName,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to store upload")
		InternalError(c, "failed to store upload")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"path": key,
		"url":  h.publicURL(key),
	})
}

// allowedExtension validates the upload against the image allow-list. The
// declared Content-Type is checked first, then the sniffed content. SVG is
// text so sniffing reports it as xml; the extension decides in that case.
func allowedExtension(declared, filename string, data []byte) (string, bool) {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if idx := strings.Index(declared, ";"); idx >= 0 {
		declared = declared[:idx]
	}
	if ext, ok := allowedImageTypes[declared]; ok {
		return ext, true
	}

	sniffed := http.DetectContentType(data)
	if idx := strings.Index(sniffed, ";"); idx >= 0 {
		sniffed = sniffed[:idx]
	}
	if ext, ok := allowedImageTypes[sniffed]; ok {
		return ext, true
	}

	if strings.EqualFold(filepath.Ext(filename), ".svg") &&
		(strings.HasPrefix(sniffed, "text/xml") || strings.HasPrefix(sniffed, "text/plain")) {
		return "svg", true
	}
	return "", false
}
