package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/khangtran/keygate/internal/domain/errors"
	"github.com/khangtran/keygate/internal/domain/model"
	"github.com/khangtran/keygate/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage depends on. Tests substitute
// a pgxmock pool through it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Orders returns the order repository backed by this storage.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            package_id TEXT NOT NULL,
            amount BIGINT NOT NULL,
            status TEXT NOT NULL,
            key TEXT,
            created_at TIMESTAMPTZ NOT NULL,
            fulfilled_at TIMESTAMPTZ,
            gateway TEXT,
            transaction_date TEXT,
            reference_code TEXT,
            paid_amount BIGINT
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, package_id, amount, status, key, created_at, fulfilled_at, gateway, transaction_date, reference_code, paid_amount`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.PackageID, &o.Amount, &o.Status, &o.Key, &o.CreatedAt, &o.FulfilledAt, &o.Gateway, &o.TransactionDate, &o.ReferenceCode, &o.PaidAmount)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const query = `INSERT INTO orders (id, package_id, amount, status, created_at)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.pool.Exec(ctx, query, order.ID, order.PackageID, order.Amount, order.Status, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// FindPendingByIDAndAmount matches id, amount and pending status in one
// query, so the amount check never races the status check.
func (r *orderRepository) FindPendingByIDAndAmount(ctx context.Context, id string, amount int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 AND amount=$2 AND status=$3`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id, amount, model.OrderStatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// Claim performs the compare-and-set transition PENDING -> CLAIMED. The
// conditional update is atomic in PostgreSQL, so of any number of concurrent
// claims exactly one sees a row affected.
func (r *orderRepository) Claim(ctx context.Context, id string) error {
	const query = `UPDATE orders SET status=$2 WHERE id=$1 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, id, model.OrderStatusClaimed, model.OrderStatusPending)
	if err != nil {
		return fmt.Errorf("claim order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAlreadyClaimed
	}
	return nil
}

func (r *orderRepository) CommitFulfillment(ctx context.Context, id, key string, meta model.TransactionMeta) error {
	const query = `UPDATE orders
                   SET status=$2, key=$3, fulfilled_at=NOW(), gateway=$4, transaction_date=$5, reference_code=$6, paid_amount=$7
                   WHERE id=$1 AND status=$8`
	tag, err := r.storage.pool.Exec(ctx, query, id, model.OrderStatusFulfilled, key, meta.Gateway, meta.TransactionDate, meta.ReferenceCode, meta.Amount, model.OrderStatusClaimed)
	if err != nil {
		return fmt.Errorf("commit fulfillment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotClaimed
	}
	return nil
}

func (r *orderRepository) ReleaseClaim(ctx context.Context, id string) error {
	const query = `UPDATE orders SET status=$2 WHERE id=$1 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, id, model.OrderStatusPending, model.OrderStatusClaimed)
	if err != nil {
		return fmt.Errorf("release claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotClaimed
	}
	return nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.PackageID, &o.Amount, &o.Status, &o.Key, &o.CreatedAt, &o.FulfilledAt, &o.Gateway, &o.TransactionDate, &o.ReferenceCode, &o.PaidAmount); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `UPDATE orders SET status=$1 WHERE status=$2 AND created_at < $3`
	tag, err := r.storage.pool.Exec(ctx, query, model.OrderStatusExpired, model.OrderStatusPending, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire stale orders: %w", err)
	}
	return tag.RowsAffected(), nil
}
