package models

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"voicebank/pkg/config"
	"voicebank/pkg/errors"
	"voicebank/pkg/response"
)

const claimsKey = "claims"

// Claims is the decoded principal carried by every bearer token.
// Expiry is the only revocation mechanism; logout is client-side token
// discard.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

func signToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.GlobalConfig.SessionSecret))
}

// IssueUserToken signs a 7-day (configurable) user token.
func IssueUserToken(u *User) (string, error) {
	days := config.GlobalConfig.UserTokenDays
	return signToken(&Claims{
		UserID: u.ID,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(days) * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// IssueAdminToken signs a 24-hour (configurable) admin token.
func IssueAdminToken(a *AdminUser) (string, error) {
	hours := config.GlobalConfig.AdminTokenHrs
	return signToken(&Claims{
		UserID: a.ID,
		Admin:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(hours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// VerifyToken decodes and validates a signed token. Expiry is enforced
// solely here, never by a client-local timestamp.
func VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.GlobalConfig.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Forbidden("Invalid or expired token")
	}
	return claims, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthRequired rejects requests without a valid user or admin token.
// A missing credential is 401; a broken one is 403.
func AuthRequired(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		response.Error(c, errors.Unauthorized("Authentication required"))
		return
	}
	claims, err := VerifyToken(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Set(claimsKey, claims)
	c.Next()
}

// AdminRequired additionally requires the admin flag in the token.
func AdminRequired(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		response.Error(c, errors.Unauthorized("Authentication required"))
		return
	}
	claims, err := VerifyToken(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !claims.Admin {
		response.Error(c, errors.Forbidden("Admin access required"))
		return
	}
	c.Set(claimsKey, claims)
	c.Next()
}

// CurrentClaims returns the decoded principal set by the auth
// middleware.
func CurrentClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return &Claims{}
}
