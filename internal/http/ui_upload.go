package httpx

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/service"
	"github.com/Rushil0704/auth-client-1/internal/sessioncache"
	"github.com/Rushil0704/auth-client-1/internal/upload"
)

const (
	uploadFileField   = "image"
	uploadPanelTmpl   = "upload-panel"
	uploadStatusTmpl  = "upload-status"
	msgUploadDisabled = "Image upload is not configured."
	defaultUploadMax  = 10 << 20
)

//nolint:gochecknoglobals // static page metadata
var imageUploadMeta = PageMeta{Title: "Image Upload", PageTitle: "Image upload", CurrentPage: PageImageUpload}

func (h *UIHandlers) uploadsEnabled() bool {
	return h.Uploads.Objects != nil && h.Uploads.Transient != nil
}

// uploadFlow returns the session's upload flow, creating it on first use.
func (h *UIHandlers) uploadFlow(r *http.Request) *upload.Flow {
	sid := SessionIDFromContext(r.Context())
	build := func() *upload.Flow {
		cfg := h.Uploads.Config
		if cfg.Metrics == nil {
			cfg.Metrics = h.Metrics
		}
		if cfg.Logger == nil {
			cfg.Logger = h.logger()
		}
		return upload.NewFlow(sid, upload.Options{
			Objects:   h.Uploads.Objects,
			Transient: h.Uploads.Transient,
			Config:    cfg,
		})
	}
	if h.Live == nil {
		return build()
	}
	return sessioncache.GetOrCreate(h.Live, sid, registryUpload, build)
}

// requireUploads answers 503 with a toast when object storage is not wired.
func (h *UIHandlers) requireUploads(w http.ResponseWriter) bool {
	if h.uploadsEnabled() {
		return true
	}
	triggerToast(w, msgUploadDisabled, service.FlashError)
	w.WriteHeader(http.StatusServiceUnavailable)
	return false
}

// ImageUploadPage renders the upload screen. GET /image-upload.
func (h *UIHandlers) ImageUploadPage(w http.ResponseWriter, r *http.Request) {
	b := NewTemplateData(r, imageUploadMeta).With("UploadEnabled", h.uploadsEnabled())
	if h.uploadsEnabled() {
		b.With("Upload", h.uploadFlow(r).State())
	} else {
		b.With("Upload", upload.State{Status: msgUploadDisabled})
	}
	h.renderDashboardPage(w, r, b.Build())
}

// UploadSelect stores the chosen file. POST /image-upload/select (multipart).
func (h *UIHandlers) UploadSelect(w http.ResponseWriter, r *http.Request) {
	if !h.requireUploads(w) {
		return
	}
	limit := h.Uploads.Config.MaxBytes
	if limit <= 0 {
		limit = defaultUploadMax
	}
	// Leave room for the multipart envelope around the file.
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(limit); err != nil {
		h.renderUploadPanel(w, r, apperrors.ValidationField("file", "File is too large or malformed."))
		return
	}
	file, header, err := r.FormFile(uploadFileField)
	if err != nil {
		h.renderUploadPanel(w, r, apperrors.ValidationField("file", upload.StatusNoFile))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.renderUploadPanel(w, r, apperrors.ValidationField("file", "Could not read the file."))
		return
	}

	_, err = h.uploadFlow(r).Select(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		h.logger().WarnContext(r.Context(), "upload select failed", "file", header.Filename, "error", err)
	}
	h.renderUploadPanel(w, r, err)
}

// UploadCrop records the crop region. POST /image-upload/crop with JSON
// {x, y, width, height} or the same names as form fields.
func (h *UIHandlers) UploadCrop(w http.ResponseWriter, r *http.Request) {
	if !h.requireUploads(w) {
		return
	}
	var region upload.Region
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if !DecodeJSON(w, r, &region) {
			return
		}
	} else {
		var ok bool
		if region, ok = regionFromForm(r); !ok {
			http.Error(w, "invalid crop region", http.StatusBadRequest)
			return
		}
	}
	h.uploadFlow(r).SetCrop(region)
	w.WriteHeader(http.StatusNoContent)
}

func regionFromForm(r *http.Request) (upload.Region, bool) {
	if err := r.ParseForm(); err != nil {
		return upload.Region{}, false
	}
	vals := make([]int, 0, 4)
	for _, k := range []string{"x", "y", "width", "height"} {
		v, err := strconv.ParseFloat(r.PostForm.Get(k), 64)
		if err != nil {
			return upload.Region{}, false
		}
		vals = append(vals, int(v))
	}
	return upload.Region{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, true
}

// UploadStart runs the upload in the background and returns the polling status fragment.
// POST /image-upload/start.
func (h *UIHandlers) UploadStart(w http.ResponseWriter, r *http.Request) {
	if !h.requireUploads(w) {
		return
	}
	h.uploadFlow(r).Start()
	h.renderUploadStatus(w, r)
}

// UploadStatus is polled while an upload runs. GET /image-upload/status.
func (h *UIHandlers) UploadStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireUploads(w) {
		return
	}
	h.renderUploadStatus(w, r)
}

// UploadPreview serves the selected image. GET /image-upload/preview/{id}.
func (h *UIHandlers) UploadPreview(w http.ResponseWriter, r *http.Request) {
	if !h.uploadsEnabled() {
		http.NotFound(w, r)
		return
	}
	data, ct, err := h.uploadFlow(r).Preview(r.Context(), r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		h.logger().DebugContext(r.Context(), "preview write failed", "error", err)
	}
}

// UploadClear drops the selection and its preview. POST /image-upload/clear.
func (h *UIHandlers) UploadClear(w http.ResponseWriter, r *http.Request) {
	if !h.requireUploads(w) {
		return
	}
	h.uploadFlow(r).Clear(r.Context())
	h.renderUploadPanel(w, r, nil)
}

// renderUploadPanel re-renders the whole upload panel with an optional error.
func (h *UIHandlers) renderUploadPanel(w http.ResponseWriter, r *http.Request, err error) {
	data := map[string]any{
		"Upload":        h.uploadFlow(r).State(),
		"UploadEnabled": true,
		"CSRFToken":     GetCSRFToken(r),
		"Errors":        map[string]string{},
	}
	if err != nil {
		var fieldErrors map[string]string
		msg := processError(err, &fieldErrors)
		if fieldErrors != nil {
			data["Errors"] = fieldErrors
		}
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || apperrors.GetField(err) == "" {
			triggerToast(w, msg, service.FlashError)
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if execErr := h.T.Execute(w, uploadPanelTmpl, data); execErr != nil {
		h.logAndRenderTemplateError(w, r, execErr, "upload panel render")
	}
}

func (h *UIHandlers) renderUploadStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := map[string]any{"Upload": h.uploadFlow(r).State()}
	if err := h.T.Execute(w, uploadStatusTmpl, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "upload status render")
	}
}
