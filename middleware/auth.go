package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Areeb006/FAJR/auth"
)

// sessionToken pulls the token from the session cookie, falling back to the
// Authorization header for API clients.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(auth.SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

// ParseSession validates a session token and returns its claims.
func ParseSession(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return auth.Secret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired session")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// RequireSession rejects unauthenticated requests and stashes the caller's
// identity in the context.
func RequireSession(c *gin.Context) {
	tokenString := sessionToken(c)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		c.Abort()
		return
	}

	claims, err := ParseSession(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		c.Abort()
		return
	}

	// Numeric claims come back as float64 from the JSON decoder.
	userID, ok := claims["user_id"].(float64)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		c.Abort()
		return
	}

	c.Set("user_id", uint(userID))
	c.Set("user_email", claims["email"])
	c.Set("user_name", claims["user_name"])
	c.Next()
}

// UserID returns the authenticated caller's id set by RequireSession.
func UserID(c *gin.Context) uint {
	id, _ := c.Get("user_id")
	uid, _ := id.(uint)
	return uid
}
