package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/solestride/storefront-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		user := models.User{
			ID:           "user_" + generateRandomString(16),
			Email:        req.Email,
			PasswordHash: string(hash),
			Name:         req.Name,
		}
		user.Cart = models.Cart{UserID: user.ID}

		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered"})
			return
		}

		issueSession(c, user)
		c.JSON(http.StatusCreated, gin.H{"message": "Account created", "user": user})
	}
}

// POST /api/auth/login
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		issueSession(c, user)
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user})
	}
}

// POST /api/auth/refresh
func RefreshHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		refresh, err := c.Cookie("refreshToken")
		if err != nil || refresh == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing refresh token"})
			return
		}

		userID, err := UserIDFromToken(refresh)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
			return
		}

		var user models.User
		if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			return
		}

		issueSession(c, user)
		c.JSON(http.StatusOK, gin.H{"message": "Session refreshed"})
	}
}

// POST /api/auth/logout
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("token", "", -1, "/", "", false, true)
		c.SetCookie("refreshToken", "", -1, "/", "", false, true)
		c.SetCookie("logged", "", -1, "/", "", false, false)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// issueSession sets the auth cookies: httpOnly token/refreshToken plus a
// client-readable "logged" flag the frontend keys off.
func issueSession(c *gin.Context, user models.User) {
	access := signToken(user, accessTokenTTL)
	refresh := signToken(user, refreshTokenTTL)

	c.SetCookie("token", access, int(accessTokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie("refreshToken", refresh, int(refreshTokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie("logged", "1", int(refreshTokenTTL.Seconds()), "/", "", false, false)
}

func signToken(user models.User, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	return signed
}

// UserIDFromToken validates a signed token and returns its user_id claim.
func UserIDFromToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("missing user_id claim")
	}
	return userID, nil
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_user"
	}
	return hex.EncodeToString(bytes)
}
