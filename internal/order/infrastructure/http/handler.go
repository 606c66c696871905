package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/brunohmiro/zapfood/internal/order/application"
	"github.com/brunohmiro/zapfood/internal/order/domain"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in application.CreateOrderInput) (int64, error)
	IdentifyCustomer(ctx context.Context, rawPhone string) (bool, domain.Customer, error)
	OrderHistory(ctx context.Context, rawPhone string) ([]domain.HistoryEntry, error)
}

// IdempotencyStore dedupes client-retried submissions. A claimed key must be
// released again if the claimed request does not produce an order.
type IdempotencyStore interface {
	Key(route, clientKey string) string
	Seen(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type Handler struct {
	log     *slog.Logger
	service OrderService
	gate    application.SessionGate
	conns   func() int32
	idem    IdempotencyStore
	started time.Time
	tracer  trace.Tracer
}

// NewHandler builds the HTTP surface. idem may be nil, in which case
// duplicate-submission checks are disabled.
func NewHandler(log *slog.Logger, service OrderService, gate application.SessionGate, conns func() int32, idem IdempotencyStore) *Handler {
	return &Handler{
		log:     log,
		service: service,
		gate:    gate,
		conns:   conns,
		idem:    idem,
		started: time.Now(),
		tracer:  otel.Tracer("order-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/orders", h.createOrder)
	r.Get("/api/orders/history/{phone}", h.orderHistory)
	r.Get("/api/customers/{phone}", h.identifyCustomer)
	r.Get("/health", h.health)

	return r
}

type createOrderReq struct {
	Customer struct {
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		Reference string `json:"reference"`
	} `json:"customer"`
	Items        []domain.CartItem `json:"items"`
	Payment      string            `json:"payment"`
	CashTendered string            `json:"cash_tendered"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateOrder")
	defer span.End()

	// a key claimed here is released again on every non-created outcome, so
	// a failed request stays retriable with the same key
	var claimed string
	if key := r.Header.Get("Idempotency-Key"); h.idem != nil && key != "" {
		idemKey := h.idem.Key("orders", key)
		seen, err := h.idem.Seen(ctx, idemKey)
		switch {
		case err != nil:
			h.log.Error("idempotency check failed", "err", err)
		case seen:
			h.writeError(w, domain.ErrDuplicateRequest)
			return
		default:
			claimed = idemKey
		}
	}

	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.releaseClaim(ctx, claimed)
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	var tendered *decimal.Decimal
	if req.CashTendered != "" {
		d, err := domain.ParseAmount(req.CashTendered)
		if err != nil {
			h.releaseClaim(ctx, claimed)
			h.writeError(w, err)
			return
		}
		tendered = &d
	}

	orderID, err := h.service.CreateOrder(ctx, application.CreateOrderInput{
		Name:         req.Customer.Name,
		Phone:        req.Customer.Phone,
		Address:      req.Customer.Address,
		Reference:    req.Customer.Reference,
		Items:        req.Items,
		Payment:      req.Payment,
		CashTendered: tendered,
	})
	if err != nil {
		h.releaseClaim(ctx, claimed)
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]int64{"order_id": orderID})
}

func (h *Handler) identifyCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "IdentifyCustomer")
	defer span.End()

	isNew, customer, err := h.service.IdentifyCustomer(ctx, chi.URLParam(r, "phone"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"is_new":   isNew,
		"customer": customer,
	})
}

func (h *Handler) orderHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "OrderHistory")
	defer span.End()

	entries, err := h.service.OrderHistory(ctx, chi.URLParam(r, "phone"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"session_state":       h.gate.State(),
		"storage_connections": h.conns(),
		"uptime_seconds":      int64(time.Since(h.started).Seconds()),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response failed", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), domain.HTTPStatus(err))
}

func (h *Handler) releaseClaim(ctx context.Context, key string) {
	if h.idem == nil || key == "" {
		return
	}
	if err := h.idem.Release(ctx, key); err != nil {
		h.log.Error("idempotency release failed", "key", key, "err", err)
	}
}
