package spreadsheet

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/frahmantamala/parc-info/internal/transport"
)

const (
	defaultMaxUpload = 10 << 20
	xlsxMediaType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ServiceAPI interface {
	Export(ctx context.Context, kind Kind) (*Sheet, error)
	Import(ctx context.Context, kind Kind, r io.Reader) (int, error)
}

type Handler struct {
	*transport.BaseHandler
	Service   ServiceAPI
	maxUpload int64
	now       func() time.Time
}

// NewHandler caps uploads at maxUpload bytes, 10 MiB when zero.
func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		maxUpload:   maxUpload,
		now:         time.Now,
	}
}

type ImportResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
}

// Export serves GET /api/settings/export/{type} as an xlsx attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	kind, verr := ParseKind(h.PathParam(r, "type"))
	if verr != nil {
		h.WriteAppError(w, verr)
		return
	}

	sheet, err := h.Service.Export(r.Context(), kind)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if _, err := sheet.WriteTo(&buf); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("%s-export-%s.xlsx", kind, h.now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxMediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("Handler: failed to write export", "type", kind, "error", err)
	}
}

// Import serves POST /api/settings/import with a multipart `file` and `type`.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil && !stderrors.Is(err, http.ErrNotMultipart) {
		h.WriteAppError(w, ErrInvalidFile(err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.WriteAppError(w, ErrMissingFile)
		return
	}
	defer file.Close()

	kind, verr := ParseKind(r.FormValue("type"))
	if verr != nil {
		h.WriteAppError(w, verr)
		return
	}

	imported, err := h.Service.Import(r.Context(), kind, file)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ImportResponse{Message: "Import réussi", Imported: imported})
}
