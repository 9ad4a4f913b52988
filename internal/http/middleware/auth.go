package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer  = "tripdiary"
	subjectKey   = "auth_subject"
	bearerPrefix = "Bearer "
)

var ErrMissingToken = errors.New("missing bearer token")

// IssueToken signs an HS256 token for subject valid for ttl.
func IssueToken(secret, subject string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies raw against secret and returns its subject.
func ParseToken(secret, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// BearerAuth requires a valid token when secret is set. An empty secret
// leaves the routes open.
func BearerAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, ErrMissingToken)
			return
		}
		subject, err := ParseToken(secret, strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		c.Set(subjectKey, subject)
		c.Next()
	}
}

// GetSubject returns the authenticated subject, if any.
func GetSubject(c *gin.Context) string {
	return c.GetString(subjectKey)
}

func abortUnauthorized(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message":    "Unauthorized",
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}
