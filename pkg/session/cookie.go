package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultCookieName = "sid"

type Claims struct {
	jwt.RegisteredClaims
}

// Manager issues and verifies the HS256-signed cookie that carries a
// visitor's session id. The session bag itself lives in a Store.
type Manager struct {
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Secure     bool
}

func (m *Manager) cookieName() string {
	if m.CookieName == "" {
		return DefaultCookieName
	}
	return m.CookieName
}

func NewID() string { return uuid.NewString() }

func (m *Manager) Sign(sessionID string, now time.Time) (string, time.Time, error) {
	exp := now.Add(m.TTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (m *Manager) Parse(tokenStr string) (string, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid {
		return "", errors.New("invalid session token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid session id")
	}
	return claims.Subject, nil
}

func (m *Manager) Cookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName(),
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) ReadCookie(r *http.Request) (string, bool) {
	ck, err := r.Cookie(m.cookieName())
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}
