package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Email is one outbound message.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends transactional email. Like SMS, delivery is best effort and
// failures stay inside the notification layer.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// SendGridMailer delivers email through the SendGrid REST API.
type SendGridMailer struct {
	apiKey string
	from   string
	client *http.Client
	logger *zap.Logger
}

// NewMailerFromEnv builds a mailer from SENDGRID_API_KEY. Without a key it
// returns a no-op mailer so account flows keep working with email disabled.
func NewMailerFromEnv(logger *zap.Logger) Mailer {
	key := os.Getenv("SENDGRID_API_KEY")
	if key == "" {
		logger.Warn("SendGrid API key not found, outbound email disabled")
		return &noopMailer{logger: logger}
	}
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "reset@themex.restaurant"
	}
	return &SendGridMailer{
		apiKey: key,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Email) error {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": msg.To}}},
		},
		"from":    map[string]string{"email": m.from},
		"subject": msg.Subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": msg.Text},
			{"type": "text/html", "value": msg.HTML},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.sendgrid.com/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Warn("email send failed", zap.String("to", msg.To), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, string(respBody))
		m.logger.Warn("email send failed", zap.String("to", msg.To), zap.Error(err))
		return err
	}

	m.logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

// PasswordResetEmail builds the customer-facing reset message.
func PasswordResetEmail(to, resetURL string) Email {
	return Email{
		To:      to,
		Subject: "Password Reset Request - The Mex",
		Text:    fmt.Sprintf("You requested a password reset. Please click the following link to reset your password: %s", resetURL),
		HTML: fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <div style="background-color: #FF5000; padding: 20px; text-align: center;">
          <h1 style="color: white; margin: 0;">The Mex</h1>
        </div>
        <div style="padding: 20px; border: 1px solid #ddd; border-top: none;">
          <h2>Password Reset Request</h2>
          <p>You recently requested to reset your password for your account at The Mex. Click the button below to reset it.</p>
          <p style="text-align: center; margin: 30px 0;">
            <a href="%s" style="background-color: #FF5000; color: white; padding: 12px 20px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Your Password</a>
          </p>
          <p>If you did not request a password reset, please ignore this email or contact support if you have concerns.</p>
          <p>This password reset link is only valid for the next 24 hours.</p>
        </div>
        <div style="background-color: #333; color: white; padding: 15px; text-align: center; font-size: 12px;">
          <p>&copy; %d The Mex. All rights reserved.</p>
        </div>
      </div>
    `, resetURL, time.Now().Year()),
	}
}

// noopMailer stands in when email is not configured.
type noopMailer struct {
	logger *zap.Logger
}

func (m *noopMailer) Send(ctx context.Context, msg Email) error {
	m.logger.Debug("email disabled, skipping send",
		zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
