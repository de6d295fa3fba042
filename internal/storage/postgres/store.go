package postgres

// Package postgres provides a pgx-backed bank store with the same contract as
// the in-memory store: same operations, same error kinds and messages, and
// insertion-order listing (an update moves the record to the end).
//
// The schema lives in migrations/ and is embedded so Migrate can apply it on
// startup.

import (
    "context"
    "embed"
    "errors"
    "fmt"

    "github.com/google/uuid"
    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"

    "github.com/tinoosan/volley/internal/bank"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
    pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
    cfg, err := pgxpool.ParseConfig(dsn)
    if err != nil { return nil, err }
    pool, err := pgxpool.NewWithConfig(ctx, cfg)
    if err != nil { return nil, err }
    // Verify connection
    if err := pool.Ping(ctx); err != nil { pool.Close(); return nil, err }
    return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { if s.pool != nil { s.pool.Close() } }

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Migrate applies the embedded schema files in name order. Statements are
// idempotent so running it on every start is safe.
func (s *Store) Migrate(ctx context.Context) error {
    entries, err := migrations.ReadDir("migrations")
    if err != nil { return err }
    for _, e := range entries {
        b, err := migrations.ReadFile("migrations/" + e.Name())
        if err != nil { return err }
        if _, err := s.pool.Exec(ctx, string(b)); err != nil {
            return fmt.Errorf("apply %s: %w", e.Name(), err)
        }
    }
    return nil
}

// SeedDev inserts the given records, skipping account numbers that already
// exist, and reports how many rows were added.
func (s *Store) SeedDev(ctx context.Context, seed ...bank.Bank) (int, error) {
    tx, err := s.pool.Begin(ctx)
    if err != nil { return 0, err }
    defer func() { _ = tx.Rollback(ctx) }()
    n := 0
    for _, b := range seed {
        ct, err := tx.Exec(ctx, `
            insert into banks (id, account_number, trust, transaction_fee)
            values ($1,$2,$3,$4)
            on conflict (account_number) do nothing
        `, uuid.New(), b.AccountNumber, b.Trust, b.TransactionFee)
        if err != nil { return 0, err }
        n += int(ct.RowsAffected())
    }
    if err := tx.Commit(ctx); err != nil { return 0, err }
    return n, nil
}

// --- Reads ---

// ListBanks returns all records in insertion order.
func (s *Store) ListBanks(ctx context.Context) ([]bank.Bank, error) {
    rows, err := s.pool.Query(ctx, `
        select account_number, trust, transaction_fee
        from banks
        order by seq
    `)
    if err != nil { return nil, err }
    defer rows.Close()
    out := make([]bank.Bank, 0)
    for rows.Next() {
        var b bank.Bank
        if err := rows.Scan(&b.AccountNumber, &b.Trust, &b.TransactionFee); err != nil { return nil, err }
        out = append(out, b)
    }
    return out, rows.Err()
}

// GetBank fetches a single record by account number.
func (s *Store) GetBank(ctx context.Context, accountNumber string) (bank.Bank, error) {
    var b bank.Bank
    err := s.pool.QueryRow(ctx, `
        select account_number, trust, transaction_fee
        from banks
        where account_number = $1
    `, accountNumber).Scan(&b.AccountNumber, &b.Trust, &b.TransactionFee)
    if errors.Is(err, pgx.ErrNoRows) { return bank.Bank{}, bank.NotFound(accountNumber) }
    if err != nil { return bank.Bank{}, err }
    return b, nil
}

// --- Writes ---

// CreateBank inserts b unless its account number is taken.
func (s *Store) CreateBank(ctx context.Context, b bank.Bank) (bank.Bank, error) {
    ct, err := s.pool.Exec(ctx, `
        insert into banks (id, account_number, trust, transaction_fee)
        values ($1,$2,$3,$4)
        on conflict (account_number) do nothing
    `, uuid.New(), b.AccountNumber, b.Trust, b.TransactionFee)
    if err != nil { return bank.Bank{}, err }
    if ct.RowsAffected() == 0 { return bank.Bank{}, bank.Duplicate(b.AccountNumber) }
    return b, nil
}

// UpdateBank replaces the row keyed by b.AccountNumber in a single statement.
// Taking a fresh seq moves the record to the end of the list; the row lock
// serializes concurrent updates of the same record.
func (s *Store) UpdateBank(ctx context.Context, b bank.Bank) (bank.Bank, error) {
    ct, err := s.pool.Exec(ctx, `
        update banks
        set trust = $2, transaction_fee = $3, seq = nextval(pg_get_serial_sequence('banks', 'seq'))
        where account_number = $1
    `, b.AccountNumber, b.Trust, b.TransactionFee)
    if err != nil { return bank.Bank{}, err }
    if ct.RowsAffected() == 0 { return bank.Bank{}, bank.NotFound(b.AccountNumber) }
    return b, nil
}

// DeleteBank removes the record with the given account number.
func (s *Store) DeleteBank(ctx context.Context, accountNumber string) error {
    ct, err := s.pool.Exec(ctx, `delete from banks where account_number = $1`, accountNumber)
    if err != nil { return err }
    if ct.RowsAffected() == 0 { return bank.NotFound(accountNumber) }
    return nil
}
