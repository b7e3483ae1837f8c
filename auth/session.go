package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Areeb006/FAJR/models"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

// SessionLifetime matches the storefront's fixed 7-day session policy.
const SessionLifetime = 7 * 24 * time.Hour

var jwtSecret []byte

// Init injects the session-signing secret at startup. The secret is explicit
// configuration, not process-generated state, so sessions survive restarts.
func Init(secret string) {
	jwtSecret = []byte(secret)
}

// Secret exposes the injected key for token validation in middleware.
func Secret() []byte {
	return jwtSecret
}

// IssueToken signs a session token carrying user id, email, and display name.
func IssueToken(user *models.User) (string, error) {
	if len(jwtSecret) == 0 {
		return "", errors.New("session secret not configured")
	}
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"email":     user.Email,
		"user_name": user.FullName(),
		"exp":       time.Now().Add(SessionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// SetSession issues a token for the user and attaches it as the session
// cookie.
func SetSession(c *gin.Context, user *models.User) error {
	token, err := IssueToken(user)
	if err != nil {
		return err
	}
	c.SetCookie(SessionCookie, token, int(SessionLifetime.Seconds()), "/", "", false, true)
	return nil
}

// ClearSession invalidates the session cookie.
func ClearSession(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
