package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/YashChoudhary13/The-MEX/models"
	"github.com/YashChoudhary13/The-MEX/notification"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// captureMailer records outbound email instead of sending it.
type captureMailer struct {
	sent []notification.Email
}

func (m *captureMailer) Send(ctx context.Context, msg notification.Email) error {
	m.sent = append(m.sent, msg)
	return nil
}

func TestResetTokenStoreLifecycle(t *testing.T) {
	store := newResetTokenStore()

	token, err := store.generate("diner@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}

	email, ok := store.validate(token)
	if !ok || email != "diner@example.com" {
		t.Fatalf("validate = (%q, %v), want (diner@example.com, true)", email, ok)
	}

	store.clear(token)
	if _, ok := store.validate(token); ok {
		t.Error("token still valid after clear")
	}

	// Expired tokens are rejected and removed lazily
	expired, err := store.generate("diner@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	store.mu.Lock()
	store.tokens[expired] = resetToken{email: "diner@example.com", expires: time.Now().Add(-time.Minute)}
	store.mu.Unlock()
	if _, ok := store.validate(expired); ok {
		t.Error("expired token accepted")
	}
	store.mu.Lock()
	_, stillThere := store.tokens[expired]
	store.mu.Unlock()
	if stillThere {
		t.Error("expired token not removed from store")
	}
}

func newResetRouter(mailer notification.Mailer) *gin.Engine {
	r := gin.New()
	r.POST("/api/password-reset/request", RequestPasswordReset(mailer))
	r.GET("/api/password-reset/validate/:token", ValidateResetToken)
	r.POST("/api/password-reset/reset", ResetPassword)
	return r
}

func TestPasswordResetFlow(t *testing.T) {
	db := setupTestDB(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	db.Create(&models.User{Username: "diner", Email: "diner@example.com", PasswordHash: string(hash), Role: models.RoleUser})

	mailer := &captureMailer{}
	r := newResetRouter(mailer)

	w := doJSON(t, r, http.MethodPost, "/api/password-reset/request", gin.H{"email": "diner@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("request status = %d, body %s", w.Code, w.Body.String())
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}

	// The reset link ends with the token
	msg := mailer.sent[0]
	if msg.To != "diner@example.com" {
		t.Errorf("email sent to %q", msg.To)
	}
	idx := strings.LastIndex(msg.Text, "/reset-password/")
	if idx < 0 {
		t.Fatalf("no reset link in email text: %q", msg.Text)
	}
	token := msg.Text[idx+len("/reset-password/"):]

	w = doJSON(t, r, http.MethodGet, "/api/password-reset/validate/"+token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("validate status = %d, body %s", w.Code, w.Body.String())
	}
	var validated struct {
		Email string `json:"email"`
	}
	decodeBody(t, w, &validated)
	if validated.Email != "diner@example.com" {
		t.Errorf("validated email = %q", validated.Email)
	}

	w = doJSON(t, r, http.MethodPost, "/api/password-reset/reset", gin.H{"token": token, "password": "newpassword"})
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d, body %s", w.Code, w.Body.String())
	}

	var user models.User
	db.Where("email = ?", "diner@example.com").First(&user)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")); err != nil {
		t.Errorf("new password does not verify: %v", err)
	}

	// Token is single use
	w = doJSON(t, r, http.MethodPost, "/api/password-reset/reset", gin.H{"token": token, "password": "anotherone"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("reused token status = %d, want 400", w.Code)
	}
}

func TestPasswordResetUnknownEmailUniformResponse(t *testing.T) {
	setupTestDB(t)
	mailer := &captureMailer{}
	r := newResetRouter(mailer)

	w := doJSON(t, r, http.MethodPost, "/api/password-reset/request", gin.H{"email": "nobody@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 regardless of account existence", w.Code)
	}
	if !strings.Contains(w.Body.String(), "If an account with this email exists") {
		t.Errorf("response leaks account existence: %s", w.Body.String())
	}
	if len(mailer.sent) != 0 {
		t.Errorf("sent %d emails for unknown address, want 0", len(mailer.sent))
	}
}
