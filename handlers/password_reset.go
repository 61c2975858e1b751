package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/YashChoudhary13/The-MEX/config"
	"github.com/YashChoudhary13/The-MEX/models"
	"github.com/YashChoudhary13/The-MEX/notification"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 24 * time.Hour

// resetTokenStore keeps password reset tokens in memory. Tokens do not
// survive a restart; the customer simply requests a new link.
type resetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]resetToken
}

type resetToken struct {
	email   string
	expires time.Time
}

func newResetTokenStore() *resetTokenStore {
	return &resetTokenStore{tokens: make(map[string]resetToken)}
}

func (s *resetTokenStore) generate(email string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = resetToken{email: email, expires: time.Now().Add(resetTokenTTL)}
	return token, nil
}

// validate returns the email a token was issued for, expiring it lazily.
func (s *resetTokenStore) validate(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.tokens[token]
	if !ok {
		return "", false
	}
	if time.Now().After(rt.expires) {
		delete(s.tokens, token)
		return "", false
	}
	return rt.email, true
}

func (s *resetTokenStore) clear(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

var passwordResetTokens = newResetTokenStore()

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset emails a reset link. The response is identical
// whether or not the email has an account, to prevent user enumeration.
func RequestPasswordReset(mailer notification.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PasswordResetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Valid email is required"})
			return
		}

		var user models.User
		if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err == nil {
			if token, err := passwordResetTokens.generate(user.Email); err == nil {
				scheme := "http"
				if c.Request.TLS != nil {
					scheme = "https"
				}
				resetURL := fmt.Sprintf("%s://%s/reset-password/%s", scheme, c.Request.Host, token)
				// Send failures are logged by the mailer; the response must
				// stay uniform either way.
				_ = mailer.Send(c.Request.Context(), notification.PasswordResetEmail(user.Email, resetURL))
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "If an account with this email exists, a password reset link has been sent.",
		})
	}
}

// ValidateResetToken lets the reset page check a token before showing the
// new-password form
func ValidateResetToken(c *gin.Context) {
	email, ok := passwordResetTokens.validate(c.Param("token"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token is valid", "email": email})
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// ResetPassword completes the flow: consumes the token and sets the new
// password
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token and password are required"})
		return
	}

	email, ok := passwordResetTokens.validate(req.Token)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}
	if err := config.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update password"})
		return
	}

	// One-shot token
	passwordResetTokens.clear(req.Token)

	c.JSON(http.StatusOK, gin.H{"message": "Password has been successfully reset"})
}
