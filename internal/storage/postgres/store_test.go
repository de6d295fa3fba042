package postgres

import (
	"context"
	"errors"
	"math"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/tinoosan/volley/internal/bank"
	"github.com/tinoosan/volley/internal/errs"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := s.pool.Exec(ctx, `truncate table banks`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return s
}

func TestStore_BankLifecycle(t *testing.T) {
	dsn := getTestDSN(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()

	if err := s.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}

	n, err := s.SeedDev(ctx, bank.DefaultSeed()...)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 seeded rows, got %d", n)
	}
	// second seed is a no-op
	if n, _ := s.SeedDev(ctx, bank.DefaultSeed()...); n != 0 {
		t.Fatalf("expected reseed to insert 0 rows, got %d", n)
	}

	list, err := s.ListBanks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].AccountNumber != "SW1234" {
		t.Fatalf("unexpected list: %+v", list)
	}

	got, err := s.GetBank(ctx, "SW1234")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Trust != 2.0 || got.TransactionFee != 1 {
		t.Fatalf("unexpected bank: %+v", got)
	}

	nb := bank.Bank{AccountNumber: "SW7865", Trust: 2.4, TransactionFee: 2}
	if _, err := s.CreateBank(ctx, nb); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateBank(ctx, nb); !errors.Is(err, errs.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	upd := bank.Bank{AccountNumber: "SW1234", Trust: 1.2, TransactionFee: 2}
	if _, err := s.UpdateBank(ctx, upd); err != nil {
		t.Fatalf("update: %v", err)
	}
	list, _ = s.ListBanks(ctx)
	if last := list[len(list)-1]; last != upd {
		t.Fatalf("expected updated bank last, got %+v", last)
	}
	if _, err := s.UpdateBank(ctx, bank.Bank{AccountNumber: "SW0000"}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}

	if err := s.DeleteBank(ctx, "SW1234"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetBank(ctx, "SW1234"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := s.DeleteBank(ctx, "SW1234"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestStore_ConcurrentUpdatesOfSameRecord(t *testing.T) {
	dsn := getTestDSN(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()
	if _, err := s.SeedDev(ctx, bank.DefaultSeed()...); err != nil {
		t.Fatalf("seed: %v", err)
	}

	const workers = 16
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.UpdateBank(ctx, bank.Bank{AccountNumber: "SW1234", Trust: float64(i), TransactionFee: i}); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("concurrent update failed: %v", err)
	}

	list, err := s.ListBanks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[2].AccountNumber != "SW1234" {
		t.Fatalf("expected updated record last and no duplicates, got %+v", list)
	}
}

func TestStore_LargeTransactionFee(t *testing.T) {
	dsn := getTestDSN(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()

	big := bank.Bank{AccountNumber: "SW4444", Trust: 1, TransactionFee: math.MaxInt32 + 1}
	if _, err := s.CreateBank(ctx, big); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.GetBank(ctx, big.AccountNumber)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != big {
		t.Fatalf("expected %+v, got %+v", big, got)
	}
}
