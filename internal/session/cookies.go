package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieConfig describes the browser identity cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// DefaultCookieConfig returns the settings used when none are configured.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		Name:   "spendsmart_sid",
		MaxAge: 30 * 24 * time.Hour,
	}
}

// Cookies ensures every request has a browser identity. A missing or
// malformed cookie is replaced by a fresh random ID. The identity is put
// into the request context.
func Cookies(cfg CookieConfig) func(http.Handler) http.Handler {
	if cfg.Name == "" {
		cfg.Name = DefaultCookieConfig().Name
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(cfg.Name); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.Name,
					Value:    id,
					Path:     "/",
					MaxAge:   int(cfg.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}
