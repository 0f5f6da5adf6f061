package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

const (
	// CookieName is the cookie the session token lives in.
	CookieName = "token"

	// SessionMaxAge is how long the session cookie is kept.
	SessionMaxAge = 30 * 24 * time.Hour
)

// Claims are the session token claims the front-end reads. The backend
// puts the user ID in one of sub, user_id or nameid.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	NameID string `json:"nameid,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Session is an authenticated caller.
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// SessionParser reads session tokens issued by the backend.
type SessionParser struct {
	secretKey []byte
	now       func() time.Time
}

// NewSessionParser creates a parser. With an empty secret, signatures are
// not checked and the backend stays the only authority on the token; the
// expiry is still enforced.
func NewSessionParser(secretKey string) *SessionParser {
	p := &SessionParser{now: time.Now}
	if secretKey != "" {
		p.secretKey = []byte(secretKey)
	}
	return p
}

// Parse validates tokenString and returns the session it describes.
func (p *SessionParser) Parse(tokenString string) (*Session, error) {
	claims := &Claims{}

	if p.secretKey != nil {
		token, err := jwt.ParseWithClaims(
			tokenString,
			claims,
			func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return p.secretKey, nil
			},
			jwt.WithTimeFunc(p.now),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		if !token.Valid {
			return nil, ErrInvalidToken
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		if claims.ExpiresAt != nil && !p.now().Before(claims.ExpiresAt.Time) {
			return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
		}
	}

	s := &Session{
		Token:  tokenString,
		UserID: firstNonEmpty(claims.Subject, claims.UserID, claims.NameID),
		Email:  claims.Email,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// TokenFromHeader extracts the session token from a Bearer Authorization
// header, falling back to the session cookie.
func TokenFromHeader(h http.Header) (string, error) {
	if authHeader := h.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", ErrInvalidToken
		}
		return parts[1], nil
	}

	r := &http.Request{Header: h}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", ErrMissingToken
}

// SessionCookie stores token for SessionMaxAge. secure should be set
// outside development.
func SessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionMaxAge / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
