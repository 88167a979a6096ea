package handlers

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/unrolled/render"
)

const maxUploadBytes = 10 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores catalog images on local disk under random names and
// serves them back through the static /uploads route.
type UploadHandler struct {
	render    *render.Render
	uploadDir string
}

func NewUploadHandler(r *render.Render, uploadDir string) *UploadHandler {
	return &UploadHandler{render: r, uploadDir: uploadDir}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(h.render, w, http.StatusBadRequest, "Invalid upload")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(h.render, w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		respondError(h.render, w, http.StatusBadRequest, "Unsupported image type")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Printf("Upload: failed to create upload dir %s: %v", h.uploadDir, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		log.Printf("Upload: failed to create file %s: %v", name, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("Upload: failed to write file %s: %v", name, err)
		respondError(h.render, w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, map[string]string{"url": "/uploads/" + name})
}
