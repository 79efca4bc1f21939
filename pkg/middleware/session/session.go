package sessionmw

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/session"
)

const contextKey = "session_id"

// Require gives every request a session id, minting a new signed cookie when
// the visitor has none or presents one that fails verification.
func Require(m *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := m.ReadCookie(c.Request()); ok {
				sid, err := m.Parse(raw)
				if err == nil {
					c.Set(contextKey, sid)
					return next(c)
				}
				logging.FromContext(c.Request().Context()).Debug("session_cookie_rejected", "error", err)
			}

			sid := session.NewID()
			signed, exp, err := m.Sign(sid, time.Now())
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "cannot start session")
			}
			c.SetCookie(m.Cookie(signed, exp))
			c.Set(contextKey, sid)
			return next(c)
		}
	}
}

func ID(c echo.Context) string {
	sid, _ := c.Get(contextKey).(string)
	return sid
}
