// Package middleware provides request logging, sessions, rate limiting and tracing for the HTTP layer.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"scribe/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "scribe-api"
	tokenAudience = "scribe-client"
	sessionTTL    = 14 * 24 * time.Hour
)

// ErrInvalidSession is returned for any token that fails verification.
var ErrInvalidSession = errors.New("invalid or expired session")

// SessionManager issues and verifies the JWT that identifies a logged-in user.
// The token is accepted from an "Authorization: Bearer" header or the session cookie.
type SessionManager struct {
	secret     []byte
	cookieName string
	secure     bool
	ttl        time.Duration
	now        func() time.Time
}

// NewSessionManager creates a SessionManager from configuration.
func NewSessionManager(cfg *config.Config) *SessionManager {
	cookie := cfg.SessionCookie
	if cookie == "" {
		cookie = "scribe_session"
	}
	return &SessionManager{
		secret:     []byte(cfg.JWTSecret),
		cookieName: cookie,
		secure:     cfg.IsProduction(),
		ttl:        sessionTTL,
		now:        time.Now,
	}
}

// Issue signs a session token for the user.
func (m *SessionManager) Issue(userID uint, username string) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("JWT secret not configured")
	}

	now := m.now()
	exp := now.Add(m.ttl)
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse verifies a token and returns the user ID in its subject claim.
func (m *SessionManager) Parse(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return m.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidSession
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, ErrInvalidSession
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrInvalidSession
	}
	return uint(userID), nil
}

// SetCookie stores the session token on the response.
func (m *SessionManager) SetCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *SessionManager) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (m *SessionManager) tokenFrom(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies(m.cookieName)
}

// Authenticate resolves the session if one is present and stores the user ID
// in c.Locals("userID"). Anonymous requests pass through untouched.
func (m *SessionManager) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := m.tokenFrom(c)
		if token == "" {
			return c.Next()
		}
		userID, err := m.Parse(token)
		if err != nil {
			return c.Next()
		}
		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user, if any.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok && userID != 0
}

// LoginRequired redirects anonymous requests to loginURL with a "next"
// parameter pointing back at the original URL.
func LoginRequired(loginURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentUserID(c); ok {
			return c.Next()
		}
		return c.Redirect(LoginRedirectURL(loginURL, c.OriginalURL()), fiber.StatusFound)
	}
}

// LoginRedirectURL builds "<loginURL>?next=<next>", leaving "/" unescaped.
func LoginRedirectURL(loginURL, next string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
	sep := "?"
	if strings.Contains(loginURL, "?") {
		sep = "&"
	}
	return loginURL + sep + "next=" + escaped
}

// SafeNext returns next when it is a local absolute path, otherwise fallback.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return fallback
	}
	return next
}
