package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/terraincognita07/kira/internal/models"
)

const sessionIssuer = "kira"

var errNoSession = errors.New("no valid session")

type sessionClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// sessionCookie builds the auth cookie. A zero expiry makes it a browser
// session cookie.
func (handler *Handler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     authCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

func (handler *Handler) startSession(c *fiber.Ctx, user *models.User, rememberMe bool) error {
	ttl := defaultAuthTokenTTL
	if rememberMe {
		ttl = rememberAuthTokenTTL
	}
	issuedAt := handler.now()
	token, err := handler.signSession(user.ID, issuedAt, issuedAt.Add(ttl))
	if err != nil {
		return err
	}

	var expires time.Time
	if rememberMe {
		expires = issuedAt.Add(ttl)
	}
	c.Cookie(handler.sessionCookie(token, expires))
	return nil
}

func (handler *Handler) endSession(c *fiber.Ctx) {
	c.Cookie(handler.sessionCookie("", handler.now().Add(-time.Hour)))
}

func (handler *Handler) signSession(userID uint, issuedAt time.Time, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}

// sessionUser resolves the cookie to a stored user. Any token problem is
// reported as errNoSession.
func (handler *Handler) sessionUser(c *fiber.Ctx) (*models.User, error) {
	raw := strings.TrimSpace(c.Cookies(authCookieName))
	if raw == "" {
		return nil, errNoSession
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(handler.now),
	)
	var claims sessionClaims
	if _, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return handler.secretKey, nil
	}); err != nil {
		return nil, errNoSession
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
