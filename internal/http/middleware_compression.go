package httpx

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// CompressionConfig configures Compression. Level outside 1..9 means
// gzip.DefaultCompression; responses shorter than MinSize go out as-is.
type CompressionConfig struct {
	Level   int
	MinSize int
	Logger  *slog.Logger
}

var compressibleTypes = map[string]bool{
	"text/html":              true,
	"text/css":               true,
	"text/plain":             true,
	"text/javascript":        true,
	"application/javascript": true,
	"application/json":       true,
	"image/svg+xml":          true,
}

// gzipPools holds one writer pool per compression level.
var gzipPools sync.Map

func gzipPool(level int) *sync.Pool {
	if p, ok := gzipPools.Load(level); ok {
		return p.(*sync.Pool)
	}
	p, _ := gzipPools.LoadOrStore(level, &sync.Pool{New: func() any {
		zw, err := gzip.NewWriterLevel(io.Discard, level)
		if err != nil {
			return gzip.NewWriter(io.Discard)
		}
		return zw
	}})
	return p.(*sync.Pool)
}

// Compression gzips text responses for clients that accept it. HEAD
// requests, websocket upgrades, bodiless statuses, pre-encoded bodies and
// binary content types pass through untouched.
func Compression(cfg CompressionConfig) func(http.Handler) http.Handler {
	if cfg.Level < gzip.BestSpeed || cfg.Level > gzip.BestCompression {
		cfg.Level = gzip.DefaultCompression
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	pool := gzipPool(cfg.Level)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || isWebSocketUpgrade(r) || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Accept-Encoding")

			cw := &compressWriter{ResponseWriter: w, pool: pool, minSize: cfg.MinSize}
			next.ServeHTTP(cw, r)
			if err := cw.finish(); err != nil {
				cfg.Logger.ErrorContext(r.Context(), "gzip response failed", "path", r.URL.Path, "error", err)
			}
		})
	}
}

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// acceptsGzip reports whether Accept-Encoding lists gzip with a non-zero weight.
func acceptsGzip(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			continue
		}
		_, q, found := strings.Cut(strings.ReplaceAll(params, " ", ""), "q=")
		if !found {
			return true
		}
		weight, err := strconv.ParseFloat(q, 64)
		return err == nil && weight > 0
	}
	return false
}

func compressible(contentType string) bool {
	if contentType == "" {
		return true
	}
	media, _, err := mime.ParseMediaType(contentType)
	return err == nil && compressibleTypes[strings.ToLower(media)]
}

type compressState int

const (
	stateUndecided compressState = iota
	statePending                 // eligible, buffering until minSize
	stateGzip
	statePlain
)

// compressWriter decides per response whether to gzip. The status line is
// held back while buffering so a short body can still go out uncompressed.
type compressWriter struct {
	http.ResponseWriter
	pool    *sync.Pool
	minSize int

	state  compressState
	status int
	buf    []byte
	zw     *gzip.Writer
}

func (w *compressWriter) WriteHeader(status int) {
	if w.state != stateUndecided {
		return
	}
	w.status = status
	h := w.Header()
	switch {
	case status < http.StatusOK, status == http.StatusNoContent, status == http.StatusNotModified,
		h.Get("Content-Encoding") != "", !compressible(h.Get("Content-Type")):
		w.state = statePlain
		w.ResponseWriter.WriteHeader(status)
	case w.minSize > 0:
		w.state = statePending
	default:
		w.startGzip()
	}
}

func (w *compressWriter) startGzip() {
	w.state = stateGzip
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	w.zw = w.pool.Get().(*gzip.Writer)
	w.zw.Reset(w.ResponseWriter)
	w.ResponseWriter.WriteHeader(w.status)
}

func (w *compressWriter) Write(b []byte) (int, error) {
	if w.state == stateUndecided {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	switch w.state {
	case statePending:
		w.buf = append(w.buf, b...)
		if len(w.buf) < w.minSize {
			return len(b), nil
		}
		w.startGzip()
		if err := w.drain(); err != nil {
			return 0, err
		}
		return len(b), nil
	case stateGzip:
		return w.zw.Write(b)
	default:
		return w.ResponseWriter.Write(b)
	}
}

func (w *compressWriter) drain() error {
	if len(w.buf) == 0 {
		return nil
	}
	_, err := w.zw.Write(w.buf)
	w.buf = nil
	return err
}

// finish flushes whatever the handler left behind and returns the gzip
// writer to its pool.
func (w *compressWriter) finish() error {
	switch w.state {
	case statePending:
		w.state = statePlain
		w.ResponseWriter.WriteHeader(w.status)
		_, err := w.ResponseWriter.Write(w.buf)
		w.buf = nil
		return err
	case stateGzip:
		err := w.zw.Close()
		w.zw.Reset(io.Discard)
		w.pool.Put(w.zw)
		w.zw = nil
		return err
	}
	return nil
}

func (w *compressWriter) Flush() {
	if w.state == statePending {
		w.startGzip()
	}
	if w.state == stateGzip {
		if err := w.drain(); err == nil {
			_ = w.zw.Flush()
		}
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *compressWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("compression: hijack not supported")
	}
	w.state = statePlain
	return hj.Hijack()
}
