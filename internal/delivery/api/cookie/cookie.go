// Package cookie reads and writes the session cookie.
package cookie

import (
	"net/http"
	"strings"
	"time"

	"podium/config"
	"podium/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// Jar carries the session cookie attributes derived from configuration.
type Jar struct {
	name     string
	secure   bool
	sameSite http.SameSite
	now      func() time.Time
}

// NewJar creates a Jar from the session configuration.
// Cookies are marked Secure in production.
func NewJar(cfg *config.Config) *Jar {
	return &Jar{
		name:     cfg.Session.CookieName,
		secure:   cfg.IsProduction(),
		sameSite: parseSameSite(cfg.Session.SameSite),
		now:      time.Now,
	}
}

// Name returns the session cookie name.
func (j *Jar) Name() string {
	return j.name
}

// Read returns the session token sent by the client, or "" when absent.
func (j *Jar) Read(c echo.Context) string {
	cookie, err := c.Cookie(j.name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// Write sets the session cookie so that it expires together with the session.
func (j *Jar) Write(c echo.Context, session *entity.Session) {
	maxAge := int(session.ExpiresAt.Sub(j.now()).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	c.SetCookie(j.cookie(session.Token, maxAge, session.ExpiresAt))
}

// Clear instructs the client to drop the session cookie.
func (j *Jar) Clear(c echo.Context) {
	c.SetCookie(j.cookie("", -1, time.Unix(0, 0)))
}

func (j *Jar) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     j.name,
		Value:    value,
		Path:     "/",
		Expires:  expires.UTC(),
		MaxAge:   maxAge,
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: j.sameSite,
	}
}

func parseSameSite(raw string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
