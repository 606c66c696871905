package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationLeg identifies one of the two delayed messages attached to an
// order. The receipt leg is synchronous and carries no persisted flag.
type NotificationLeg string

const (
	LegConfirmation NotificationLeg = "confirmation"
	LegDelivery     NotificationLeg = "delivery"
)

type CartItem struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Observation string          `json:"observation,omitempty"`
}

// OrderPayload is the opaque document stored with each order. It is written
// once at creation and never mutated afterwards.
type OrderPayload struct {
	Items        []CartItem       `json:"items"`
	Payment      string           `json:"payment"`
	CashTendered *decimal.Decimal `json:"cash_tendered,omitempty"`
	PhoneDisplay string           `json:"phone_display"`
	Total        decimal.Decimal  `json:"total"`
}

type Order struct {
	ID               int64
	CustomerPhone    string
	Payload          OrderPayload
	ConfirmationSent bool
	DeliverySent     bool
	CreatedAt        time.Time
}

// HistoryEntry is the projection returned by order-history queries: unit
// prices are dropped, only the already-computed total survives.
type HistoryEntry struct {
	ID        int64           `json:"order_id"`
	CreatedAt time.Time       `json:"timestamp"`
	Total     decimal.Decimal `json:"total"`
	Items     []HistoryItem   `json:"items"`
}

type HistoryItem struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Observation string `json:"observation,omitempty"`
}

// Subtotal sums price x quantity over the cart.
func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// ValidateCart rejects empty carts and nonsense line items before anything
// touches storage.
func ValidateCart(items []CartItem) error {
	if len(items) == 0 {
		return ErrInvalidOrder
	}
	for _, it := range items {
		if it.Name == "" || it.Quantity <= 0 || it.Price.IsNegative() {
			return ErrInvalidOrder
		}
	}
	return nil
}
