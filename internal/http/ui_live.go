package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	domainauth "github.com/Rushil0704/auth-client-1/internal/domain/auth"
	apperrors "github.com/Rushil0704/auth-client-1/internal/errors"
	"github.com/Rushil0704/auth-client-1/internal/http/ui/viewmodel"
	"github.com/Rushil0704/auth-client-1/internal/listing"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = (livePongWait * 9) / 10
	liveMaxMessage = 4096
	liveSendBuffer = 16
)

// liveMessage is what the htmx websocket extension sends: the form values of
// the triggering element plus a HEADERS object.
type liveMessage struct {
	Action  string            `json:"action"`
	Search  string            `json:"search"`
	Role    string            `json:"role"`
	Page    json.Number       `json:"page"`
	ID      string            `json:"id"`
	Headers map[string]string `json:"HEADERS"`
}

// action returns the explicit action or falls back to the triggering input's name.
func (m liveMessage) action() string {
	if a := strings.TrimSpace(m.Action); a != "" {
		return a
	}
	return m.Headers["HX-Trigger-Name"]
}

// liveBinding is a list controller seen through the websocket: inputs go in,
// rendered fragments come out.
type liveBinding struct {
	handle    func(ctx context.Context, msg liveMessage) (viewmodel.Toast, error)
	subscribe func(push func([]byte)) func()
	render    func() ([]byte, error)
}

// bindLive adapts a list screen's controller for one websocket connection.
func bindLive[T any](h *UIHandlers, r *http.Request, screen ListScreen[T]) liveBinding {
	ctrl := screen.controller(h, SessionIDFromContext(r.Context()))
	viewer := viewerOf(r)
	csrf := GetCSRFToken(r)

	renderSnap := func(snap listing.Snapshot[T]) ([]byte, error) {
		var buf bytes.Buffer
		err := h.T.Execute(&buf, screen.tableTemplate(), map[string]any{
			"List":      screen.view(snap, viewer),
			"CSRFToken": csrf,
			"OOB":       true,
		})
		return buf.Bytes(), err
	}

	return liveBinding{
		handle: func(ctx context.Context, msg liveMessage) (viewmodel.Toast, error) {
			return dispatchLive(ctx, ctrl, screen, viewer, msg)
		},
		subscribe: func(push func([]byte)) func() {
			return ctrl.Subscribe(func(snap listing.Snapshot[T]) {
				out, err := renderSnap(snap)
				if err != nil {
					h.logger().Error("live table render failed", "resource", screen.Resource, "error", err)
					return
				}
				push(out)
			})
		},
		render: func() ([]byte, error) { return renderSnap(ctrl.Snapshot()) },
	}
}

// dispatchLive routes one websocket message to the controller.
func dispatchLive[T any](
	ctx context.Context,
	ctrl *listing.Controller[T],
	screen ListScreen[T],
	viewer domainauth.Identity,
	msg liveMessage,
) (viewmodel.Toast, error) {
	switch msg.action() {
	case "search":
		ctrl.SetSearch(msg.Search)
	case "role", "filter":
		ctrl.SetFilter(msg.Role)
	case "page":
		p, err := strconv.Atoi(msg.Page.String())
		if err != nil {
			return viewmodel.Toast{}, nil
		}
		ctrl.GoToPage(ctx, p)
	case "refresh":
		ctrl.Refetch(ctx)
	case string(ListActionRequest):
		return applyDeleteAction(ctx, ctrl, screen, viewer, ListActionRequest, msg.ID)
	case string(ListActionConfirm):
		return applyDeleteAction(ctx, ctrl, screen, viewer, ListActionConfirm, "")
	case string(ListActionCancel):
		return applyDeleteAction(ctx, ctrl, screen, viewer, ListActionCancel, "")
	}
	return viewmodel.Toast{}, nil
}

// liveUpgrader only accepts same-origin connections.
//
//nolint:gochecknoglobals // stateless upgrader configuration
var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     sameOrigin,
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// LiveTable upgrades to a websocket that drives a list screen. GET /ws/{resource}.
// Inputs are applied to the session's controller (search and filter are
// debounced there); every state change is pushed back as an out-of-band
// table fragment.
func (h *UIHandlers) LiveTable(w http.ResponseWriter, r *http.Request) {
	var binding liveBinding
	switch r.PathValue("resource") {
	case ResourceUsers:
		binding = bindLive(h, r, h.usersScreen())
	case ResourceCategories:
		binding = bindLive(h, r, h.categoriesScreen())
	default:
		h.NotFound(w, r)
		return
	}

	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger().WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	h.Metrics.LiveConnected(1)
	defer h.Metrics.LiveConnected(-1)

	c := &liveConn{
		h:       h,
		conn:    conn,
		send:    make(chan []byte, liveSendBuffer),
		binding: binding,
	}
	c.serve(r)
}

// liveConn pumps one websocket: a reader applying inputs and a writer
// draining rendered fragments.
type liveConn struct {
	h       *UIHandlers
	conn    *websocket.Conn
	send    chan []byte
	binding liveBinding
}

func (c *liveConn) serve(r *http.Request) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	unsubscribe := c.binding.subscribe(func(frag []byte) {
		c.enqueue(ctx, frag)
	})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.writePump(ctx)
	}()

	if initial, err := c.binding.render(); err == nil {
		c.enqueue(ctx, initial)
	}

	c.readPump(ctx, r)
	cancel()
	<-done
}

func (c *liveConn) enqueue(ctx context.Context, frag []byte) {
	select {
	case c.send <- frag:
	case <-ctx.Done():
	}
}

func (c *liveConn) readPump(ctx context.Context, r *http.Request) {
	logger := c.h.logger()
	c.conn.SetReadLimit(liveMaxMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(livePongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WarnContext(ctx, "live connection closed", "error", err)
			}
			return
		}

		var msg liveMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.DebugContext(ctx, "ignoring malformed live message", "error", err)
			continue
		}

		toast, err := c.binding.handle(ctx, msg)
		if apperrors.IsUnauthorized(err) {
			c.h.sessionExpired(discardWriter{}, r)
			c.enqueue(ctx, []byte(`<div id="live-redirect" hx-swap-oob="true" hx-get="/login?focus=email" hx-trigger="load" hx-target="body" hx-push-url="true"></div>`))
			return
		}
		if toast.Message != "" {
			c.pushToast(ctx, toast)
		}
	}
}

func (c *liveConn) pushToast(ctx context.Context, toast viewmodel.Toast) {
	var buf bytes.Buffer
	if err := c.h.T.Execute(&buf, "toasts-oob", map[string]any{"Toasts": []viewmodel.Toast{toast}}); err != nil {
		c.h.logger().ErrorContext(ctx, "live toast render failed", "error", err)
		return
	}
	c.enqueue(ctx, buf.Bytes())
}

func (c *liveConn) writePump(ctx context.Context) {
	ticker := time.NewTicker(livePingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.drain()
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(liveWriteWait))
			return
		case frag := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frag); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					c.h.logger().DebugContext(ctx, "live write failed", "error", err)
				}
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// drain writes fragments still queued when the reader stops.
func (c *liveConn) drain() {
	for {
		select {
		case frag := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frag); err != nil {
				return
			}
		default:
			return
		}
	}
}

// discardWriter absorbs the redirect written by sessionExpired once the
// connection has been hijacked.
type discardWriter struct{}

func (discardWriter) Header() http.Header         { return http.Header{} }
func (discardWriter) Write(b []byte) (int, error) { return len(b), nil }
func (discardWriter) WriteHeader(int)             {}
