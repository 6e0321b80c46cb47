package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presensia/timetrack-backend-go/internal/domain/logbook"
	"github.com/presensia/timetrack-backend-go/internal/handler/http/response"
)

type LogbookHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type logbookHandlerImpl struct {
	logbookService logbook.LogbookService
}

func NewLogbookHandler(logbookService logbook.LogbookService) LogbookHandler {
	return &logbookHandlerImpl{
		logbookService: logbookService,
	}
}

// parseSaveEntryForm reads a logbook entry from a multipart form: a JSON
// 'data' field plus an optional 'file' attachment.
func parseSaveEntryForm(r *http.Request) (logbook.SaveEntryRequest, error) {
	var req logbook.SaveEntryRequest

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return req, err
	}

	dataJSON := r.FormValue("data")
	if dataJSON != "" {
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			return req, err
		}
	}

	file, fileHeader, err := r.FormFile("file")
	if err == nil {
		req.File = file
		req.FileHeader = fileHeader
	} else if err != http.ErrMissingFile {
		return req, err
	}

	return req, nil
}

// List implements LogbookHandler.
func (h *logbookHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := logbook.ListEntriesFilter{
		Month: queryInt(r, "month"),
		Year:  queryInt(r, "year"),
	}

	result, err := h.logbookService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements LogbookHandler.
func (h *logbookHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseSaveEntryForm(r)
	if err != nil {
		slog.Error("Create logbook entry parse error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.File != nil {
		defer req.File.Close()
	}

	result, err := h.logbookService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Logbook entry created", "entry_id", result.ID)
	response.Created(w, "Logbook entry created", result)
}

// Update implements LogbookHandler.
func (h *logbookHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req, err := parseSaveEntryForm(r)
	if err != nil {
		slog.Error("Update logbook entry parse error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.File != nil {
		defer req.File.Close()
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.logbookService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logbook entry updated", result)
}

// Confirm implements LogbookHandler.
func (h *logbookHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req logbook.ConfirmEntryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Confirm logbook entry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.logbookService.SetConfirmed(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logbook entry confirmation updated", result)
}

// Delete implements LogbookHandler.
func (h *logbookHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.logbookService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logbook entry deleted", nil)
}
