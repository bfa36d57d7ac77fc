package theme

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Dark, Parse("dark"))
	assert.Equal(t, Light, Parse("light"))
	assert.Equal(t, Light, Parse(""))
	assert.Equal(t, Light, Parse("purple"))
}

func TestToggle_PersistsAndNotifies(t *testing.T) {
	t.Parallel()
	s := NewStore("", false)
	var got []Theme
	s.Subscribe(func(th Theme) { got = append(got, th) })

	req := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
	rec := httptest.NewRecorder()
	assert.Equal(t, Dark, s.Toggle(rec, req))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "dark", cookies[0].Value)

	req2 := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
	req2.AddCookie(cookies[0])
	assert.Equal(t, Light, s.Toggle(httptest.NewRecorder(), req2))
	assert.Equal(t, []Theme{Dark, Light}, got)
}

func TestMiddleware_PutsThemeOnContext(t *testing.T) {
	t.Parallel()
	s := NewStore("", false)
	var seen Theme
	h := s.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "dark"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, Dark, seen)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, Light, seen)
}
