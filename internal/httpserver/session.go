package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"
)

const (
	// sessionCookieName holds the signed session token. It carries no
	// Expires/MaxAge so it ends with the browser session.
	sessionCookieName = "guess_session"

	// sessionTokenHeader returns a freshly issued token to script clients,
	// which may send it back as "Authorization: Bearer <token>".
	sessionTokenHeader = "X-Session-Token"
)

// ctxSessionKey is the context key type for the bound session ID.
type ctxSessionKey struct{}

// withSession binds the request to a session ID taken from a valid token,
// issuing a new ID and cookie when there is none.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.parseSessionToken(bearerOrCookie(r))
		if !ok {
			id = genID()
			tok, err := s.signSessionToken(id)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("sign session token")
				http.Error(w, `{"error":"session_failed"}`, http.StatusInternalServerError)
				return
			}
			s.setSessionCookie(w, tok)
			w.Header().Set(sessionTokenHeader, tok)
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionIDFrom returns the session ID bound by withSession.
func sessionIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(ctxSessionKey{}).(string)
	return id
}

// signSessionToken creates an HS256 JWT whose subject is the session ID.
func (s *Server) signSessionToken(id string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  id,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})
	return t.SignedString(s.secret)
}

// parseSessionToken verifies tok and returns its session ID.
func (s *Server) parseSessionToken(tok string) (string, bool) {
	if tok == "" {
		return "", false
	}
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteStrictMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
	})
}

// bearerOrCookie extracts a token from the Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
