package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-checkout/internal/session"
	"github.com/angelmondragon/storefront-checkout/pkg/logger"
)

const sessionHeader = "X-Session-Id"

// SessionPolicy names the cookie carrying the browsing session id.
type SessionPolicy struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session resolves the browsing session id from the X-Session-Id header or the
// session cookie, issuing a fresh id when neither carries a valid one.
func Session(policy SessionPolicy, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(sessionHeader))
			if id == "" && policy.CookieName != "" {
				if cookie, err := r.Cookie(policy.CookieName); err == nil {
					id = strings.TrimSpace(cookie.Value)
				}
			}
			if !session.ValidID(id) {
				id = session.NewID()
			}

			w.Header().Set(sessionHeader, id)
			if policy.CookieName != "" {
				http.SetCookie(w, &http.Cookie{
					Name:     policy.CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(policy.TTL.Seconds()),
					HttpOnly: true,
					Secure:   policy.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), id)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
