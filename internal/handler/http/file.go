package http

import (
	"log/slog"
	"net/http"

	"github.com/presensia/timetrack-backend-go/internal/handler/http/response"
	"github.com/presensia/timetrack-backend-go/internal/service/file"
)

type FileHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
}

type fileHandlerImpl struct {
	fileService file.FileService
}

func NewFileHandler(fileService file.FileService) FileHandler {
	return &fileHandlerImpl{
		fileService: fileService,
	}
}

// Upload implements FileHandler. It accepts a multipart form with a single
// 'file' field and responds with the stored file's public URL.
func (h *fileHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Upload file parse error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "A 'file' field is required", nil)
		return
	}
	defer f.Close()

	url, err := h.fileService.Upload(r.Context(), f, header.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("File uploaded", "filename", header.Filename)
	response.Created(w, "File uploaded", map[string]string{"url": url})
}
