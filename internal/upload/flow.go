// Package upload implements the image upload screen: select a file, choose a
// crop region, crop on the server, transfer to object storage with progress,
// then hand back a time-limited read URL.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/observability/metrics"
	"github.com/Rushil0704/auth-client-1/internal/ports"
)

// Status texts shown under the upload controls.
const (
	StatusNoFile       = "No file chosen"
	StatusCropping     = "Cropping image..."
	StatusCropFailed   = "Cropping failed."
	StatusUploading    = "Uploading cropped image..."
	StatusUploadFailed = "Upload failed."
	StatusDone         = "Upload successful!"
)

// DefaultSignedURLTTL is the lifetime of the read URL handed back after upload.
const DefaultSignedURLTTL = time.Hour

// Phase is the upload state.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseSelected
	PhaseCropping
	PhaseUploading
	PhaseDone
	// PhaseFailed ends a run that could not crop or transfer. The selection
	// and crop are kept; only an explicit Start tries again.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSelected:
		return "selected"
	case PhaseCropping:
		return "cropping"
	case PhaseUploading:
		return "uploading"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "empty"
	}
}

// State is a snapshot of the flow for rendering.
type State struct {
	Phase       Phase
	FileName    string
	ContentType string
	Size        image.Point
	Crop        Region
	Progress    int
	Status      string
	SignedURL   string
	PreviewID   string
}

// Busy reports whether an upload is running.
func (s State) Busy() bool { return s.Phase == PhaseCropping || s.Phase == PhaseUploading }

// Config holds the tunables of a Flow.
type Config struct {
	SignedURLTTL time.Duration
	MaxBytes     int64
	PreviewTTL   time.Duration
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// Options groups dependencies for NewFlow.
type Options struct {
	Objects   ports.ObjectStore    // Required
	Transient ports.TransientStore // Required
	Config    Config
}

// Flow is the upload state of one browser session.
type Flow struct {
	sid       string
	objects   ports.ObjectStore
	transient ports.TransientStore
	cfg       Config
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state State
	// run identifies the current upload. Start, Select and Clear advance it;
	// a run whose number is no longer current leaves the state alone.
	run     uint64
	stopRun context.CancelFunc
}

// NewFlow constructs an empty Flow bound to a session id.
func NewFlow(sid string, opts Options) *Flow {
	if opts.Objects == nil {
		panic("ObjectStore is required")
	}
	if opts.Transient == nil {
		panic("TransientStore is required")
	}
	cfg := opts.Config
	if cfg.SignedURLTTL <= 0 {
		cfg.SignedURLTTL = DefaultSignedURLTTL
	}
	if cfg.PreviewTTL <= 0 {
		cfg.PreviewTTL = time.Hour
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Flow{
		sid:       sid,
		objects:   opts.Objects,
		transient: opts.Transient,
		cfg:       cfg,
		logger:    logger.With("component", "upload"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func previewKey(id string) string { return "upload:preview:" + id }

// State returns the current snapshot.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Select stores a newly chosen file and releases the previous preview.
// Any earlier crop region, status and signed URL are discarded. Selecting
// while an upload runs is refused.
func (f *Flow) Select(ctx context.Context, fileName, contentType string, data []byte) (State, error) {
	if f.cfg.MaxBytes > 0 && int64(len(data)) > f.cfg.MaxBytes {
		return f.State(), apperrors.ValidationField("file", fmt.Sprintf("File exceeds %d bytes.", f.cfg.MaxBytes))
	}
	format, size, err := Sniff(data)
	if err != nil {
		return f.State(), apperrors.ValidationField("file", "Choose a PNG, JPEG or GIF image.")
	}
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/" + format
	}
	if f.State().Busy() {
		return f.State(), errUploadRunning()
	}

	id := uuid.NewString()
	if err := f.transient.Put(ctx, f.sid, previewKey(id), data, f.cfg.PreviewTTL); err != nil {
		return f.State(), fmt.Errorf("store preview: %w", err)
	}

	f.mu.Lock()
	if f.state.Busy() {
		f.mu.Unlock()
		f.release(ctx, id)
		return f.State(), errUploadRunning()
	}
	f.abandonLocked()
	previous := f.state.PreviewID
	f.state = State{
		Phase:       PhaseSelected,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		PreviewID:   id,
	}
	s := f.state
	f.mu.Unlock()

	f.release(ctx, previous)
	return s, nil
}

func errUploadRunning() error { return apperrors.Conflict("An upload is already in progress.") }

// SetCrop records the crop region chosen in the browser. It applies to a
// selection that is not uploading, including one whose last run failed.
func (f *Flow) SetCrop(region Region) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Phase == PhaseSelected || f.state.Phase == PhaseFailed {
		f.state.Crop = region
	}
	return f.state
}

// Preview returns the raw bytes of the selected image if id is current.
func (f *Flow) Preview(ctx context.Context, id string) ([]byte, string, error) {
	f.mu.Lock()
	current, ct := f.state.PreviewID, f.state.ContentType
	f.mu.Unlock()
	if id == "" || id != current {
		return nil, "", apperrors.NotFound("preview not found")
	}
	data, err := f.transient.Get(ctx, f.sid, previewKey(id))
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrCodeNotFound, "preview not found")
	}
	return data, ct, nil
}

// Clear returns to Empty from any state, cancels a running upload and
// releases the preview. A cancelled upload never writes its result.
func (f *Flow) Clear(ctx context.Context) State {
	f.mu.Lock()
	f.abandonLocked()
	previous := f.state.PreviewID
	f.state = State{}
	f.mu.Unlock()
	f.release(ctx, previous)
	return State{}
}

// Start checks the preconditions and runs the upload in the background.
// It returns false while another upload runs, and sets the "No file chosen"
// status when no file or no completed crop region is present.
func (f *Flow) Start() bool {
	run, sel, runCtx, ok := f.begin(f.ctx)
	if !ok {
		return false
	}
	go func() {
		_, _ = f.transfer(runCtx, run, sel)
	}()
	return true
}

// Upload is Start run synchronously.
func (f *Flow) Upload(ctx context.Context) (State, error) {
	run, sel, runCtx, ok := f.begin(ctx)
	if !ok {
		return f.State(), nil
	}
	return f.transfer(runCtx, run, sel)
}

// begin moves a ready flow to Cropping under the lock, so a second Start
// sees it busy, and opens a new run.
func (f *Flow) begin(parent context.Context) (uint64, State, context.Context, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Busy() {
		return 0, f.state, nil, false
	}
	if f.state.PreviewID == "" || !f.state.Crop.Complete() {
		f.state.Status = StatusNoFile
		return 0, f.state, nil, false
	}
	f.abandonLocked()
	runCtx, stop := context.WithCancel(parent)
	f.stopRun = stop
	f.state.Phase = PhaseCropping
	f.state.Status = StatusCropping
	f.state.Progress = 0
	f.state.SignedURL = ""
	return f.run, f.state, runCtx, true
}

// abandonLocked retires the current run and cancels its context.
func (f *Flow) abandonLocked() {
	f.run++
	if f.stopRun != nil {
		f.stopRun()
		f.stopRun = nil
	}
}

// transfer crops the selection, stores it under its original file name and
// obtains a signed read URL.
func (f *Flow) transfer(ctx context.Context, run uint64, sel State) (State, error) {
	defer f.finish(run)

	raw, err := f.transient.Get(ctx, f.sid, previewKey(sel.PreviewID))
	if err == nil {
		raw, err = Crop(raw, sel.Crop)
	}
	if err != nil {
		return f.fail(ctx, run, sel, StatusCropFailed, err)
	}

	if !f.update(run, func(s *State) {
		s.Phase = PhaseUploading
		s.Status = StatusUploading
	}) {
		return f.State(), nil
	}

	total := int64(len(raw))
	progress := func(sent int64) {
		pct := 100
		if total > 0 {
			pct = int(sent * 100 / total)
		}
		f.update(run, func(s *State) {
			if pct > s.Progress {
				s.Progress = min(pct, 100)
				s.Status = fmt.Sprintf("Uploading... %d%%", s.Progress)
			}
		})
	}

	err = f.objects.Put(ctx, sel.FileName, sel.ContentType, bytes.NewReader(raw), total, progress)
	var url string
	if err == nil {
		url, err = f.objects.PresignGet(ctx, sel.FileName, f.cfg.SignedURLTTL)
	}
	if err != nil {
		return f.fail(ctx, run, sel, StatusUploadFailed, err)
	}

	current := f.update(run, func(s *State) {
		s.Phase = PhaseDone
		s.Status = StatusDone
		s.Progress = 100
		s.SignedURL = url
		s.PreviewID = ""
	})
	f.release(ctx, sel.PreviewID)
	if !current {
		f.logger.DebugContext(ctx, "upload finished after the selection changed", "key", sel.FileName)
		return f.State(), nil
	}
	f.cfg.Metrics.ObserveUpload(nil)
	f.logger.InfoContext(ctx, "image uploaded", "key", sel.FileName, "bytes", total)
	return f.State(), nil
}

// finish releases the run's context once it has ended.
func (f *Flow) finish(run uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.run == run && f.stopRun != nil {
		f.stopRun()
		f.stopRun = nil
	}
}

// Close cancels a background upload. Registered as the registry's eviction hook.
func (f *Flow) Close() {
	f.cancel()
}

func (f *Flow) fail(ctx context.Context, run uint64, sel State, status string, err error) (State, error) {
	if !f.update(run, func(s *State) {
		s.Phase = PhaseFailed
		s.Status = status
	}) {
		return f.State(), nil
	}
	if status == StatusUploadFailed {
		f.cfg.Metrics.ObserveUpload(err)
	}
	f.logger.WarnContext(ctx, "upload failed", "key", sel.FileName, "status", status, "error", err)
	return f.State(), apperrors.WithMessage(err, status)
}

// update applies fn if run is still the current upload and reports whether it did.
func (f *Flow) update(run uint64, fn func(*State)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.run != run {
		return false
	}
	fn(&f.state)
	return true
}

func (f *Flow) release(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := f.transient.Delete(ctx, f.sid, previewKey(id)); err != nil {
		f.logger.DebugContext(ctx, "release preview failed", "error", err)
	}
}
