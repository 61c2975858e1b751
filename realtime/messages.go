package realtime

import "strconv"

// Wire message types for the order tracking socket
const (
	MessageSubscribe             = "SUBSCRIBE_TO_ORDER"
	MessageSubscriptionConfirmed = "SUBSCRIPTION_CONFIRMED"
	MessageOrderUpdate           = "ORDER_UPDATE"
)

// clientMessage is any inbound frame. OrderID is left untyped because
// clients send it either as a number or a numeric string.
type clientMessage struct {
	Type    string      `json:"type"`
	OrderID interface{} `json:"orderId"`
}

type confirmationMessage struct {
	Type    string `json:"type"`
	OrderID int    `json:"orderId"`
}

type updateMessage struct {
	Type    string      `json:"type"`
	OrderID int         `json:"orderId"`
	Order   interface{} `json:"order"`
}

// parseOrderID normalizes the orderId field to a positive integer.
func parseOrderID(v interface{}) (int, bool) {
	switch id := v.(type) {
	case float64:
		if id > 0 && id == float64(int(id)) {
			return int(id), true
		}
	case string:
		if n, err := strconv.Atoi(id); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}
