// Package notify owns the three notification legs attached to every accepted
// order: the synchronous receipt plus two delayed follow-ups. Delayed legs
// live only in memory; a process restart before a timer fires drops that leg.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/brunohmiro/zapfood/internal/order/domain"
)

type Sender interface {
	SendText(ctx context.Context, phone, text string) error
}

// FlagStore records a successful delayed send on the order row.
type FlagStore interface {
	MarkNotified(ctx context.Context, orderID int64, leg domain.NotificationLeg) error
}

type Scheduler struct {
	log          *slog.Logger
	sender       Sender
	store        FlagStore
	confirmAfter time.Duration
	deliverAfter time.Duration
}

func NewScheduler(log *slog.Logger, sender Sender, store FlagStore, confirmAfter, deliverAfter time.Duration) *Scheduler {
	return &Scheduler{
		log:          log,
		sender:       sender,
		store:        store,
		confirmAfter: confirmAfter,
		deliverAfter: deliverAfter,
	}
}

// SendReceipt delivers the receipt leg on the caller's request path.
func (s *Scheduler) SendReceipt(ctx context.Context, phone, text string) error {
	return s.sender.SendText(ctx, phone, text)
}

// ScheduleFollowUps registers the confirmation and delivery legs. Each leg
// is an independent timer task: a failure or panic in one never reaches its
// sibling or the request that created the order. No retries, no cancellation.
func (s *Scheduler) ScheduleFollowUps(orderID int64, phone, customerName string) {
	s.schedule(orderID, phone, domain.LegConfirmation, s.confirmAfter, confirmationMessage(customerName))
	s.schedule(orderID, phone, domain.LegDelivery, s.deliverAfter, deliveryMessage(customerName))
}

func (s *Scheduler) schedule(orderID int64, phone string, leg domain.NotificationLeg, delay time.Duration, text string) {
	time.AfterFunc(delay, func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("notification task panicked", "order_id", orderID, "leg", leg, "panic", r)
			}
		}()

		// the originating request is long gone; this task owns its own context
		ctx := context.Background()
		if err := s.sender.SendText(ctx, phone, text); err != nil {
			s.log.Error("notification send failed", "order_id", orderID, "leg", leg, "err", err)
			return
		}
		if err := s.store.MarkNotified(ctx, orderID, leg); err != nil {
			s.log.Error("mark notified failed", "order_id", orderID, "leg", leg, "err", err)
			return
		}
		s.log.Info("notification sent", "order_id", orderID, "leg", leg)
	})
}
