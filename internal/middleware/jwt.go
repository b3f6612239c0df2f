package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"communityportal/internal/models/dto"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// RoleAdmin is the role claim required by the CMS routes.
const RoleAdmin = "admin"

func jwtKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateJWT signs a token the way the auth service does. It exists for
// local tooling and tests; production tokens are issued elsewhere.
func GenerateJWT(userID int64, email, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

func VerifyToken(token string) (*jwt.Token, error) {
	tokenVerify, err := jwt.Parse(token, func(newToken *jwt.Token) (any, error) {
		if _, isValid := newToken.Method.(*jwt.SigningMethodHMAC); !isValid {
			return nil, fmt.Errorf("unexpected signing method: %v", newToken.Header["alg"])
		}
		return jwtKey(), nil
	})
	if err != nil {
		return nil, errors.New("failed to verify token: " + err.Error())
	}
	return tokenVerify, nil
}

func DecodeTokenJWT(token string) (jwt.MapClaims, error) {
	tokenVerify, err := VerifyToken(token)
	if err != nil {
		return nil, errors.New("failed to decode token " + err.Error())
	}

	claims, isOk := tokenVerify.Claims.(jwt.MapClaims)
	if isOk && tokenVerify.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Auth requires a valid bearer token whose role claim is one of roles.
// With no roles any valid token passes.
func Auth(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, "JWT token not provided"))
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, "Invalid Authorization header format"))
			return
		}

		claims, err := DecodeTokenJWT(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewAuthErrorResponse(c, "Invalid token"))
			return
		}

		if len(allowed) > 0 {
			role, _ := claims["role"].(string)
			if !allowed[role] {
				c.AbortWithStatusJSON(http.StatusForbidden,
					dto.NewErrorResponse(c, http.StatusForbidden, "forbidden", "Insufficient role", nil))
				return
			}
		}

		c.Set("currentUser", claims)
		c.Next()
	}
}
