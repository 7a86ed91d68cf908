package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/types"
)

// maxUploadSize caps a single uploaded file at 10 MiB.
const maxUploadSize = 10 << 20

type UploadHandler struct {
	ingestService *service.IngestService
}

func NewUploadHandler(ingestService *service.IngestService) *UploadHandler {
	return &UploadHandler{
		ingestService: ingestService,
	}
}

// HandleUpload accepts one or more PDF files under the "files" form field,
// writes them into the document directory and runs a synchronous full
// ingestion. Non-PDF files and empty upload sets are rejected before
// anything is written.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		h.sendError(c, http.StatusBadRequest, "No files uploaded")
		return
	}

	for _, file := range files {
		if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
			h.sendError(c, http.StatusBadRequest, "Only PDF files are supported")
			return
		}
		if file.Size > maxUploadSize {
			h.sendError(c, http.StatusBadRequest, "File too large")
			return
		}
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		name := sanitizeFilename(filepath.Base(file.Filename))
		dst := filepath.Join(h.ingestService.DocumentDir(), name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			h.sendError(c, http.StatusInternalServerError, "Failed to save file: "+err.Error())
			return
		}
		names = append(names, name)
	}

	if _, err := h.ingestService.Ingest(c.Request.Context()); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Ingestion failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, types.UploadResponse{
		Message: "Documents uploaded and indexed successfully",
		Files:   names,
	})
}

func (h *UploadHandler) sendError(c *gin.Context, status int, message string) {
	c.JSON(status, types.DataResponse{
		Status:  "error",
		Message: message,
	})
}

// sanitizeFilename replaces characters outside a conservative allowlist so
// uploaded names are safe as file names.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}
