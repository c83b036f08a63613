package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"numcheck/internal/verification/batchfile"
	"numcheck/internal/verification/models"
	dErrors "numcheck/pkg/domain-errors"
	"numcheck/pkg/platform/httputil"
	"numcheck/pkg/requestcontext"
)

// DateLayout renders result timestamps as DD-MM-YYYY HH:mm:ss.
const DateLayout = "02-01-2006 15:04:05"

// Service defines the verification operations used by the handler.
type Service interface {
	VerifyBatch(ctx context.Context, numbers []string) (*models.BatchResult, error)
	ListResults(ctx context.Context) ([]models.Record, error)
	DeleteResults(ctx context.Context, ids []int64) (int64, error)
}

// Config holds the upload and display settings of the handler.
type Config struct {
	UploadDir      string
	MaxUploadBytes int64
	Location       *time.Location
}

// Handler serves batch upload, result review and deletion.
type Handler struct {
	verification Service
	logger       *slog.Logger
	cfg          Config
}

// New creates a verification Handler.
func New(svc Service, logger *slog.Logger, cfg Config) *Handler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Handler{verification: svc, logger: logger, cfg: cfg}
}

// Register registers the verification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/upload", h.handleUpload)
	r.Get("/view", h.handleView)
	r.Post("/delete", h.handleDelete)
}

// ResultItem is one row of an upload response.
type ResultItem struct {
	Number  string `json:"number"`
	Status  string `json:"status"`
	Outcome string `json:"outcome"`
	Address string `json:"address"`
}

// UploadResponse is returned after a batch has been processed.
type UploadResponse struct {
	Success bool           `json:"success"`
	Data    []ResultItem   `json:"data"`
	Summary models.Summary `json:"summary"`
}

// RecordItem is one persisted result as shown for review.
type RecordItem struct {
	ID      int64  `json:"id"`
	Number  string `json:"number"`
	Status  string `json:"status"`
	Outcome string `json:"outcome"`
	Address string `json:"address"`
	Date    string `json:"date"`
}

// ViewResponse lists persisted results, most recent first.
type ViewResponse struct {
	Success bool         `json:"success"`
	Data    []RecordItem `json:"data"`
}

// DeleteRequest carries the identifiers to delete. Identifiers may be sent
// as numbers or numeric strings.
type DeleteRequest struct {
	IDs []RecordID `json:"ids"`
}

// RecordID accepts 12 and "12" alike.
type RecordID int64

func (id *RecordID) UnmarshalJSON(b []byte) error {
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*id = RecordID(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("record id must be a number or numeric string")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("record id %q is not numeric", s)
	}
	*id = RecordID(n)
	return nil
}

// DeleteResponse reports how many records were removed.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Deleted int64  `json:"deleted"`
	Message string `json:"message"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if h.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	}
	file, header, err := r.FormFile("file")
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "Uploaded file is too large."))
			return
		}
		h.logger.InfoContext(ctx, "upload without file", "request_id", requestID, "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "No file uploaded. Please upload a valid Excel file."))
		return
	}
	defer file.Close()

	path, err := h.spool(file)
	if path != "" {
		defer h.discard(ctx, path)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to store uploaded file",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store upload"))
		return
	}

	numbers, err := batchfile.ReadFile(path, header.Filename)
	if err != nil {
		h.logger.WarnContext(ctx, "unreadable batch file",
			"request_id", requestID,
			"file", header.Filename,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	out, err := h.verification.VerifyBatch(ctx, numbers)
	if err != nil {
		h.logger.WarnContext(ctx, "batch rejected",
			"request_id", requestID,
			"rows", len(numbers),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	items := make([]ResultItem, 0, len(out.Results))
	for _, res := range out.Results {
		items = append(items, ResultItem{
			Number:  res.RawNumber,
			Status:  res.Outcome.Label(),
			Outcome: string(res.Outcome),
			Address: res.Address,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, UploadResponse{Success: true, Data: items, Summary: out.Summary})
}

// spool copies the upload into the upload directory and returns its path.
func (h *Handler) spool(src io.Reader) (string, error) {
	dst, err := os.CreateTemp(h.cfg.UploadDir, "batch-*")
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return dst.Name(), fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return dst.Name(), fmt.Errorf("close upload file: %w", err)
	}
	return dst.Name(), nil
}

func (h *Handler) discard(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		h.logger.ErrorContext(ctx, "failed to delete uploaded file", "path", path, "error", err)
	}
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, err := h.verification.ListResults(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list results",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	items := make([]RecordItem, 0, len(records))
	for _, rec := range records {
		items = append(items, RecordItem{
			ID:      rec.ID,
			Number:  rec.RawNumber,
			Status:  rec.Outcome.Label(),
			Outcome: string(rec.Outcome),
			Address: rec.Address,
			Date:    rec.CheckedAt.In(h.cfg.Location).Format(DateLayout),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, ViewResponse{Success: true, Data: items})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[DeleteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	ids := make([]int64, 0, len(req.IDs))
	for _, id := range req.IDs {
		ids = append(ids, int64(id))
	}

	deleted, err := h.verification.DeleteResults(ctx, ids)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeBadRequest) {
			h.logger.ErrorContext(ctx, "failed to delete results",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{
		Success: true,
		Deleted: deleted,
		Message: fmt.Sprintf("%d row(s) deleted.", deleted),
	})
}
