package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brunohmiro/zapfood/internal/order/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// CreateOrder upserts the customer and inserts the order in one transaction,
// so the FK is satisfied by construction. Returns the assigned order id.
func (r *Repository) CreateOrder(ctx context.Context, c domain.Customer, payload domain.OrderPayload) (int64, error) {
	doc, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO customers (phone, name, address, reference)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (phone) DO UPDATE SET name=$2, address=$3, reference=$4`,
		c.Phone, c.Name, c.Address, c.Reference)
	if err != nil {
		return 0, fmt.Errorf("upsert customer: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx, `INSERT INTO orders (customer_phone, payload)
			VALUES ($1,$2) RETURNING id`,
		c.Phone, doc).Scan(&id)
	if err != nil {
		// cannot happen given the upsert above, but the FK is the invariant
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: %v", domain.ErrCustomerMissing, err)
		}
		return 0, fmt.Errorf("insert order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// FetchCustomer returns the stored customer; an unknown phone is reported
// through the bool, not as an error.
func (r *Repository) FetchCustomer(ctx context.Context, phoneKey string) (domain.Customer, bool, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, `SELECT phone, name, address, reference, created_at
			FROM customers WHERE phone=$1`, phoneKey).
		Scan(&c.Phone, &c.Name, &c.Address, &c.Reference, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Customer{}, false, nil
	}
	if err != nil {
		return domain.Customer{}, false, fmt.Errorf("fetch customer: %w", err)
	}
	return c, true, nil
}

// FetchOrderHistory returns the newest orders first, each projected down to
// id, timestamp, total and the item lines without unit prices.
func (r *Repository) FetchOrderHistory(ctx context.Context, phoneKey string, limit int) ([]domain.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, payload, created_at
			FROM orders WHERE customer_phone=$1
			ORDER BY created_at DESC LIMIT $2`, phoneKey, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var (
			entry domain.HistoryEntry
			doc   []byte
		)
		if err := rows.Scan(&entry.ID, &doc, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		var payload domain.OrderPayload
		if err := json.Unmarshal(doc, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal payload for order %d: %w", entry.ID, err)
		}
		entry.Total = payload.Total
		for _, it := range payload.Items {
			entry.Items = append(entry.Items, domain.HistoryItem{
				Name:        it.Name,
				Quantity:    it.Quantity,
				Observation: it.Observation,
			})
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// MarkNotified flips the order's sent flag for one delayed leg. The flags
// only ever move false to true.
func (r *Repository) MarkNotified(ctx context.Context, orderID int64, leg domain.NotificationLeg) error {
	column := "confirmation_sent"
	if leg == domain.LegDelivery {
		column = "delivery_sent"
	}
	ct, err := r.pool.Exec(ctx, `UPDATE orders SET `+column+`=TRUE WHERE id=$1`, orderID)
	if err != nil {
		return fmt.Errorf("mark %s: %w", leg, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("mark %s: order %d not found", leg, orderID)
	}
	return nil
}

// ActiveConnections reports acquired pool connections for the health check.
func (r *Repository) ActiveConnections() int32 {
	return r.pool.Stat().AcquiredConns()
}

const fkViolationCode = "23503"

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == fkViolationCode
}
