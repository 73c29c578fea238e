package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Store = (*PostgresStore)(nil)

// ddlUsers, ddlTransactions, ddlVoiceprints define the relational schema.
// Statements are idempotent (CREATE TABLE IF NOT EXISTS) and safe to run on
// every application start, matching the teacher's memory/postgres.Migrate
// idiom.
const ddlUsers = `
CREATE TABLE IF NOT EXISTS users (
    id                 TEXT        PRIMARY KEY,
    phone_number       TEXT        NOT NULL DEFAULT '',
    preferred_language TEXT        NOT NULL DEFAULT '',
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const ddlTransactions = `
CREATE TABLE IF NOT EXISTS transactions (
    id          TEXT        PRIMARY KEY,
    buyer_id    TEXT        NOT NULL REFERENCES users (id),
    seller_id   TEXT        NOT NULL REFERENCES users (id),
    commodity   TEXT        NOT NULL,
    amount_inr  NUMERIC     NOT NULL DEFAULT 0,
    status      TEXT        NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_transactions_buyer ON transactions (buyer_id);
CREATE INDEX IF NOT EXISTS idx_transactions_seller ON transactions (seller_id);
`

const ddlVoiceprints = `
CREATE TABLE IF NOT EXISTS voiceprints (
    user_id    TEXT        PRIMARY KEY REFERENCES users (id),
    template   BYTEA       NOT NULL,
    enrolled_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates or ensures all tables required by [PostgresStore] exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range []string{ddlUsers, ddlTransactions, ddlVoiceprints} {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("storage migrate: %w", err)
		}
	}
	return nil
}

// PostgresStore is a PostgreSQL-backed [Store]. All operations are safe for
// concurrent use.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a connection pool to dsn and runs [Migrate].
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases all connections held by the underlying pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) CreateUser(ctx context.Context, u User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, phone_number, preferred_language, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			phone_number = EXCLUDED.phone_number,
			preferred_language = EXCLUDED.preferred_language
	`, u.ID, u.PhoneNumber, u.PreferredLanguage, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("storage: create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (User, error) {
	var u User
	err := s.pool.QueryRow(ctx, `
		SELECT id, phone_number, preferred_language, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.PhoneNumber, &u.PreferredLanguage, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("storage: get user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) SaveTransaction(ctx context.Context, tx Transaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO transactions (id, buyer_id, seller_id, commodity, amount_inr, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
	`, tx.ID, tx.BuyerID, tx.SellerID, tx.Commodity, tx.AmountINR, string(tx.Status), tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("storage: save transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListTransactions(ctx context.Context, userID string) ([]Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, buyer_id, seller_id, commodity, amount_inr, status, created_at
		FROM transactions
		WHERE buyer_id = $1 OR seller_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("storage: list transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var tx Transaction
		var status string
		if err := rows.Scan(&tx.ID, &tx.BuyerID, &tx.SellerID, &tx.Commodity, &tx.AmountINR, &status, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: scan transaction: %w", err)
		}
		tx.Status = TransactionStatus(status)
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SaveVoiceprint(ctx context.Context, userID string, template Voiceprint) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO voiceprints (user_id, template, enrolled_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET template = EXCLUDED.template, enrolled_at = now()
	`, userID, []byte(template))
	if err != nil {
		return fmt.Errorf("storage: save voiceprint: %w", err)
	}
	return nil
}

// VerifyVoiceprint compares sample byte-for-byte against the enrolled
// template. The proprietary acoustic matching algorithm behind real voice
// biometrics is out of scope per spec.md §1; this exact-match comparison is
// a deliberately simple stand-in that exercises the same storage/retrieval
// contract a real matcher would sit behind.
func (s *PostgresStore) VerifyVoiceprint(ctx context.Context, userID string, sample Voiceprint) (bool, error) {
	var stored []byte
	err := s.pool.QueryRow(ctx, `
		SELECT template FROM voiceprints WHERE user_id = $1
	`, userID).Scan(&stored)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("storage: verify voiceprint: %w", err)
	}
	return bytes.Equal(stored, []byte(sample)), nil
}
