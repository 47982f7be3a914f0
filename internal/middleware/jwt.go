package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"forms_portal/internal/models"
)

var secret []byte

// InitJWT sets the token signing secret. Must be called before any token
// is issued or verified.
func InitJWT(s []byte) {
	secret = s
}

const tokenTTL = 7 * 24 * time.Hour

const identityKey = "identity"

var errInvalidToken = errors.New("invalid or expired token")

// Claims is the signed token payload. BankID is present only for agents.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	BankID *uint  `json:"bank_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed credential for the given identity fields.
func GenerateToken(userID uint, role string, bankID *uint) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		BankID: bankID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies a credential and returns the identity it carries.
func ParseToken(tokenStr string) (models.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, errInvalidToken
	}
	return models.Identity{
		UserID: claims.UserID,
		Role:   claims.Role,
		BankID: claims.BankID,
	}, nil
}

// CurrentIdentity returns the identity attached by RequireAuth.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	ident, ok := v.(models.Identity)
	return ident, ok
}

// RequireAuth ensures a valid bearer token is present and attaches the
// decoded identity to the request context. A missing header is 401; a
// present but unverifiable token is 403.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing or invalid Authorization header"})
			return
		}

		ident, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireRoles ensures the token is valid and the caller's role is in the
// allow-list.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// First ensure basic auth
		req := RequireAuth()
		req(c)
		if c.IsAborted() {
			return
		}

		// Missing identity here means the gates ran out of order
		ident, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}

		for _, role := range roles {
			if ident.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Insufficient permissions"})
	}
}
