package sessionmw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/pkg/session"
)

func newManager() *session.Manager {
	return &session.Manager{Secret: []byte("middleware-test-secret-middleware"), TTL: time.Hour}
}

func serve(t *testing.T, m *session.Manager, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	e := echo.New()
	e.Use(Require(m))
	e.GET("/", func(c echo.Context) error {
		seen = ID(c)
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequire_MintsSessionWhenMissing(t *testing.T) {
	m := newManager()

	rec, sid := serve(t, m, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotEmpty(t, sid)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	parsed, err := m.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, sid, parsed)
}

func TestRequire_ReusesValidCookie(t *testing.T) {
	m := newManager()
	sid := session.NewID()
	signed, exp, err := m.Sign(sid, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(m.Cookie(signed, exp))

	rec, seen := serve(t, m, req)
	assert.Equal(t, sid, seen)
	assert.Empty(t, rec.Result().Cookies())
}

func TestRequire_ReplacesTamperedCookie(t *testing.T) {
	m := newManager()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "forged"})

	rec, seen := serve(t, m, req)
	assert.NotEmpty(t, seen)
	assert.Len(t, rec.Result().Cookies(), 1)
}
