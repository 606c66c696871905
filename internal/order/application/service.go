package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brunohmiro/zapfood/internal/order/domain"
	"github.com/brunohmiro/zapfood/internal/receipt"
)

const historyLimit = 20

type Service struct {
	log      *slog.Logger
	repo     OrderRepository
	gate     SessionGate
	msgr     Messenger
	notifier Notifier
	fee      decimal.Decimal
	loc      *time.Location
	now      func() time.Time
}

func NewService(log *slog.Logger, repo OrderRepository, gate SessionGate, msgr Messenger, notifier Notifier, fee decimal.Decimal, loc *time.Location) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		gate:     gate,
		msgr:     msgr,
		notifier: notifier,
		fee:      fee,
		loc:      loc,
		now:      time.Now,
	}
}

type CreateOrderInput struct {
	Name         string
	Phone        string
	Address      string
	Reference    string
	Items        []domain.CartItem
	Payment      string
	CashTendered *decimal.Decimal
}

// CreateOrder runs the full intake sequence: session gate, validation, phone
// normalization, transactional customer-upsert + order-insert, synchronous
// receipt and the two delayed legs. A receipt send failure does not fail the
// request: the order is already durable at that point.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (int64, error) {
	if s.gate.State() != domain.SessionReady {
		return 0, domain.ErrSessionUnavailable
	}
	if in.Name == "" || in.Address == "" || in.Payment == "" {
		return 0, domain.ErrInvalidOrder
	}
	if in.CashTendered != nil && in.CashTendered.IsNegative() {
		return 0, domain.ErrInvalidOrder
	}
	if err := domain.ValidateCart(in.Items); err != nil {
		return 0, err
	}
	phone, err := domain.NormalizePhone(in.Phone)
	if err != nil {
		return 0, err
	}

	payload := domain.OrderPayload{
		Items:        in.Items,
		Payment:      in.Payment,
		CashTendered: in.CashTendered,
		PhoneDisplay: phone.Display(),
		Total:        receipt.Total(in.Items, s.fee),
	}
	customer := domain.Customer{
		Phone:     phone.StoreKey(),
		Name:      in.Name,
		Address:   in.Address,
		Reference: in.Reference,
	}

	orderID, err := s.repo.CreateOrder(ctx, customer, payload)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	text := receipt.Render(receipt.Input{
		CustomerName: in.Name,
		PhoneDisplay: phone.Display(),
		Address:      in.Address,
		Reference:    in.Reference,
		Items:        in.Items,
		Payment:      in.Payment,
		CashTendered: in.CashTendered,
		DeliveryFee:  s.fee,
	}, s.now(), s.loc)

	if err := s.notifier.SendReceipt(ctx, phone.Canonical(), text); err != nil {
		s.log.Error("receipt send failed", "order_id", orderID, "err", err)
	}
	s.notifier.ScheduleFollowUps(orderID, phone.Canonical(), in.Name)

	s.log.Info("order created", "order_id", orderID, "customer", customer.Phone)
	return orderID, nil
}

// IdentifyCustomer resolves raw phone input to a stored customer, reporting
// whether this phone is new. The messaging-account check is best-effort and
// never fails the lookup.
func (s *Service) IdentifyCustomer(ctx context.Context, rawPhone string) (bool, domain.Customer, error) {
	phone, err := domain.NormalizePhone(rawPhone)
	if err != nil {
		return false, domain.Customer{}, err
	}

	if registered, err := s.msgr.IsRegistered(ctx, phone.Canonical()); err != nil {
		s.log.Warn("account check failed", "phone", phone.StoreKey(), "err", err)
	} else if !registered {
		s.log.Warn("phone has no messaging account", "phone", phone.StoreKey())
	}

	customer, found, err := s.repo.FetchCustomer(ctx, phone.StoreKey())
	if err != nil {
		return false, domain.Customer{}, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return !found, customer, nil
}

// OrderHistory returns the customer's most recent orders, newest first. An
// unknown phone yields an empty list, not an error.
func (s *Service) OrderHistory(ctx context.Context, rawPhone string) ([]domain.HistoryEntry, error) {
	phone, err := domain.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.FetchOrderHistory(ctx, phone.StoreKey(), historyLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return entries, nil
}
