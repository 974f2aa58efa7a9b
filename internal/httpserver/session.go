// internal/httpserver/session.go
//
// Session cookie handling.
// The cookie carries an HS256 JWT whose "sid" claim names the player's
// round in the store. The token expires SweepGrace after the round ends,
// which is also when the sweeper forgets the round.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoSession = errors.New("no session")

// signSession creates the signed token for session id.
func (s *Server) signSession(id string, exp time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"exp": exp.Unix(),
		"iat": s.now().Unix(),
	})
	return t.SignedString([]byte(s.opts.SessionSecret))
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// sessionID extracts and verifies the session ID from the request cookie.
func (s *Server) sessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(s.opts.CookieName)
	if err != nil || strings.TrimSpace(c.Value) == "" {
		return "", errNoSession
	}
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return "", errNoSession
	}
	id, _ := claims["sid"].(string)
	if id == "" {
		return "", errNoSession
	}
	return id, nil
}
