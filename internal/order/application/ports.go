package application

import (
	"context"

	"github.com/brunohmiro/zapfood/internal/order/domain"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, c domain.Customer, payload domain.OrderPayload) (int64, error)
	FetchCustomer(ctx context.Context, phoneKey string) (domain.Customer, bool, error)
	FetchOrderHistory(ctx context.Context, phoneKey string, limit int) ([]domain.HistoryEntry, error)
}

// Messenger is the capability surface of the external messaging session used
// on the query path. Sends go through the Notifier.
type Messenger interface {
	IsRegistered(ctx context.Context, phone string) (bool, error)
}

// SessionGate reports the messaging session's readiness.
type SessionGate interface {
	State() domain.SessionState
}

// Notifier delivers the receipt synchronously and registers the delayed legs.
type Notifier interface {
	SendReceipt(ctx context.Context, phone, text string) error
	ScheduleFollowUps(orderID int64, phone, customerName string)
}
