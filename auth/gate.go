package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

type ctxKey string

const subjectKey ctxKey = "subject"

// NewContext returns a copy of ctx carrying the authenticated subject.
func NewContext(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromContext returns the email attached by RequireAuth.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok && s != ""
}

// RequireAuth only invokes next for requests whose token cookie verifies.
// Missing and invalid tokens get the same 401 response.
func RequireAuth(next http.Handler, tokens TokenVerifier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(CookieName)
		if err != nil || c.Value == "" {
			hlog.FromRequest(r).Debug().Msg("no session cookie")
			encodeError(ErrUnauthorized, w, r)
			return
		}

		subject, err := tokens.Verify(c.Value)
		if err != nil {
			hlog.FromRequest(r).Debug().Msg("session token rejected")
			encodeError(ErrUnauthorized, w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), subject)))
	})
}

// SessionCookie writes and clears the token cookie. Secure must be true
// everywhere except local development over plain HTTP.
type SessionCookie struct {
	Secure bool
}

func (sc SessionCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (sc SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
