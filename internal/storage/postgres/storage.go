package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/domain/repository"
)

const schemaTimeout = 10 * time.Second

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps orders and products as JSONB documents in PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger

	schemaMu    sync.Mutex
	schemaReady bool
}

type orderRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

// New creates storage and tries to prepare the schema. An unreachable
// database is logged, not returned: the schema is retried on first use.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}

	initCtx, cancel := context.WithTimeout(ctx, schemaTimeout)
	defer cancel()
	if err := storage.ensureSchema(initCtx); err != nil {
		logger.Error("document store unavailable", slog.String("backend", "postgres"), slog.String("error", err.Error()))
	} else {
		logger.Info("document store connected", slog.String("backend", "postgres"))
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close(context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// HealthCheck pings the database.
func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) ensureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaReady {
		return nil
	}
	if err := s.initSchema(ctx); err != nil {
		return err
	}
	s.schemaReady = true
	return nil
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            body JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id UUID PRIMARY KEY,
            body JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_products_created ON products(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// validID reports whether id can address a row. Anything else cannot exist.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	return err
}

// --- OrderRepository implementation ---

const orderColumns = `id::text, body, created_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		id        string
		body      []byte
		createdAt time.Time
	)
	if err := row.Scan(&id, &body, &createdAt); err != nil {
		return nil, err
	}
	return decodeOrder(id, body, createdAt)
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	body, err := encodeOrder(order)
	if err != nil {
		return nil, err
	}

	const query = `INSERT INTO orders (id, body) VALUES ($1, $2) RETURNING created_at`
	created := *order
	created.ID = uuid.NewString()
	if err := r.storage.pool.QueryRow(ctx, query, created.ID, body).Scan(&created.CreatedAt); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if !validID(id) {
		return nil, domainErrors.ErrNotFound
	}
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !validID(id) {
		return nil, domainErrors.ErrNotFound
	}
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	const query = `UPDATE orders SET body = jsonb_set(body, '{status}', to_jsonb($2::text))
                   WHERE id=$1
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		return nil, notFound(err)
	}
	return order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) (*model.Order, error) {
	if !validID(id) {
		return nil, domainErrors.ErrNotFound
	}
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	const query = `DELETE FROM orders WHERE id=$1 RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return order, nil
}

// --- ProductRepository implementation ---

const productColumns = `id::text, body, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		id        string
		body      []byte
		createdAt time.Time
	)
	if err := row.Scan(&id, &body, &createdAt); err != nil {
		return nil, err
	}
	return decodeProduct(id, body, createdAt)
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	body, err := encodeProduct(product)
	if err != nil {
		return nil, err
	}

	const query = `INSERT INTO products (id, body) VALUES ($1, $2) RETURNING created_at`
	created := *product
	created.ID = uuid.NewString()
	if created.Options == nil {
		created.Options = []string{}
	}
	if err := r.storage.pool.QueryRow(ctx, query, created.ID, body).Scan(&created.CreatedAt); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if !validID(id) {
		return nil, domainErrors.ErrNotFound
	}
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	const query = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	if !validID(id) {
		return nil, domainErrors.ErrNotFound
	}
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	fields, err := encodePatch(patch)
	if err != nil {
		return nil, err
	}

	const query = `UPDATE products SET body = body || $2::jsonb
                   WHERE id=$1
                   RETURNING ` + productColumns
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id, fields))
	if err != nil {
		return nil, notFound(err)
	}
	return product, nil
}

func (r *productRepository) ToggleAvailability(ctx context.Context, id string) (*model.Product, error) {
	if !validID(id) {
		return nil, domainErrors.ErrNotFound
	}
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	const query = `UPDATE products
                   SET body = jsonb_set(body, '{available}', to_jsonb(NOT COALESCE((body->>'available')::boolean, true)))
                   WHERE id=$1
                   RETURNING ` + productColumns
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) (*model.Product, error) {
	if !validID(id) {
		return nil, domainErrors.ErrNotFound
	}
	if err := r.storage.ensureSchema(ctx); err != nil {
		return nil, err
	}

	const query = `DELETE FROM products WHERE id=$1 RETURNING ` + productColumns
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return product, nil
}
