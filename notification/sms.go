package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/YashChoudhary13/The-MEX/models"

	"go.uber.org/zap"
)

// Notifier sends a best-effort out-of-band message to the customer when
// their order changes status. Failures are for the caller to log, never to
// propagate.
type Notifier interface {
	Send(ctx context.Context, order *models.Order, status models.OrderStatus) error
}

// SMSNotifier delivers order status texts through the Twilio REST API.
type SMSNotifier struct {
	accountSID string
	authToken  string
	from       string
	client     *http.Client
	logger     *zap.Logger
}

// NewFromEnv builds an SMS notifier from TWILIO_* env vars. When credentials
// are missing it returns a no-op notifier so the rest of the pipeline keeps
// working with SMS disabled.
func NewFromEnv(logger *zap.Logger) Notifier {
	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_PHONE_NUMBER")
	if sid == "" || token == "" || from == "" {
		logger.Warn("Twilio credentials not found, SMS notifications disabled")
		return &noopNotifier{logger: logger}
	}
	return &SMSNotifier{
		accountSID: sid,
		authToken:  token,
		from:       from,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func (n *SMSNotifier) Send(ctx context.Context, order *models.Order, status models.OrderStatus) error {
	if order.CustomerPhone == "" {
		return fmt.Errorf("no phone number on order #%d", order.ID)
	}

	form := url.Values{}
	form.Set("To", formatPhoneNumber(order.CustomerPhone))
	form.Set("From", n.from)
	form.Set("Body", StatusMessage(order.ID, status))

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", n.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(n.accountSID, n.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio returned %d: %s", resp.StatusCode, string(body))
	}

	n.logger.Info("SMS notification sent",
		zap.Int("order_id", order.ID),
		zap.String("status", string(status)))
	return nil
}

// StatusMessage returns the customer-facing text for a status change.
func StatusMessage(orderID int, status models.OrderStatus) string {
	switch status {
	case models.StatusConfirmed:
		return fmt.Sprintf("The Mex: Your order #%d has been confirmed and will be prepared shortly.", orderID)
	case models.StatusPreparing:
		return fmt.Sprintf("The Mex: Good news! Your order #%d is now being prepared by our chefs.", orderID)
	case models.StatusReady:
		return fmt.Sprintf("The Mex: Your order #%d is now ready for pickup! Please come to the restaurant to collect your food.", orderID)
	case models.StatusDelivered:
		return fmt.Sprintf("The Mex: Your order #%d has been marked as delivered. Enjoy your meal and thank you for choosing us!", orderID)
	case models.StatusCancelled:
		return fmt.Sprintf("The Mex: We're sorry, but your order #%d has been cancelled. Please contact us for more information.", orderID)
	default:
		return fmt.Sprintf("The Mex: Your order #%d status has been updated to: %s.", orderID, status)
	}
}

// formatPhoneNumber normalizes a phone number to E.164, assuming US numbers
// when no country code is present.
func formatPhoneNumber(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()
	switch {
	case strings.HasPrefix(phone, "+"):
		return "+" + cleaned
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "1"):
		return "+" + cleaned
	case len(cleaned) == 10:
		return "+1" + cleaned
	default:
		return "+" + cleaned
	}
}

// noopNotifier stands in when SMS is not configured.
type noopNotifier struct {
	logger *zap.Logger
}

func (n *noopNotifier) Send(ctx context.Context, order *models.Order, status models.OrderStatus) error {
	n.logger.Debug("SMS disabled, skipping notification",
		zap.Int("order_id", order.ID),
		zap.String("status", string(status)))
	return nil
}
