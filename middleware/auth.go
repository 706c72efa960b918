package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"applicant-review-api/config"
	"applicant-review-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	ReviewerID   int    `json:"reviewer_id"`
	ReviewerName string `json:"reviewer_name"`
	IsAdmin      bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenLifetime is how long an issued session token stays valid.
const TokenLifetime = 24 * time.Hour

// GenerateToken issues a signed session token for a reviewer.
func GenerateToken(reviewer models.Reviewer) (string, error) {
	claims := Claims{
		ReviewerID:   reviewer.ReviewerID,
		ReviewerName: reviewer.Name,
		IsAdmin:      reviewer.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// AuthMiddleware validates JWT token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Authorization header is required"})
			c.Abort()
			return
		}

		// Check Bearer prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid authorization header format"})
			c.Abort()
			return
		}

		// Parse token
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid token claims"})
			c.Abort()
			return
		}

		// Check if reviewer still exists
		var reviewer models.Reviewer
		if err := config.DB.Where("reviewer_id = ? AND site_name = ?", claims.ReviewerID, config.SiteName()).
			First(&reviewer).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Reviewer not found"})
			c.Abort()
			return
		}

		// Set reviewer info in context
		c.Set("reviewerID", claims.ReviewerID)
		c.Set("reviewerName", claims.ReviewerName)
		c.Set("isAdmin", claims.IsAdmin)

		c.Next()
	}
}

// RequireAdmin gates admin-only routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("isAdmin")
		if !exists || isAdmin != true {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
