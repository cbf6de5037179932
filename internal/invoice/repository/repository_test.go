package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fairmog/tagihin/internal/clock"
	invoicedomain "github.com/fairmog/tagihin/internal/invoice/domain"
	"github.com/fairmog/tagihin/internal/invoice/number"
)

func setupRepo(t *testing.T) (invoicedomain.Repository, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	err = db.AutoMigrate(
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&invoicedomain.NumberRecord{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return New(), db, node
}

func TestReserveNumber(t *testing.T) {
	repo, db, node := setupRepo(t)
	ctx := context.Background()

	record := &invoicedomain.NumberRecord{
		ID:           node.Generate(),
		Kind:         invoicedomain.KindInvoice,
		BusinessCode: "TKU",
		DateKey:      "20260831",
		Suffix:       "AB12",
		Number:       "#INV-TKU-20260831-AB12",
	}
	if err := repo.ReserveNumber(ctx, db, record); err != nil {
		t.Fatalf("first reservation: %v", err)
	}

	// Same scope tuple again must surface as a collision, not a database
	// error, so the generator can retry with a fresh suffix.
	duplicate := &invoicedomain.NumberRecord{
		ID:           node.Generate(),
		Kind:         invoicedomain.KindInvoice,
		BusinessCode: "TKU",
		DateKey:      "20260831",
		Suffix:       "AB12",
		Number:       "#INV-TKU-20260831-AB12",
	}
	if err := repo.ReserveNumber(ctx, db, duplicate); !errors.Is(err, invoicedomain.ErrNumberTaken) {
		t.Fatalf("expected ErrNumberTaken, got %v", err)
	}
}

func TestReserveNumberDistinctScopes(t *testing.T) {
	repo, db, node := setupRepo(t)
	ctx := context.Background()

	scopes := []struct {
		kind    invoicedomain.Kind
		code    string
		dateKey string
	}{
		{invoicedomain.KindInvoice, "TKU", "20260831"},
		{invoicedomain.KindOrder, "TKU", "20260831"},
		{invoicedomain.KindInvoice, "BIZ", "20260831"},
		{invoicedomain.KindInvoice, "TKU", "20260901"},
	}
	for _, scope := range scopes {
		record := &invoicedomain.NumberRecord{
			ID:           node.Generate(),
			Kind:         scope.kind,
			BusinessCode: scope.code,
			DateKey:      scope.dateKey,
			Suffix:       "AB12",
			Number:       fmt.Sprintf("#%s-%s-%s-AB12", scope.kind, scope.code, scope.dateKey),
		}
		if err := repo.ReserveNumber(ctx, db, record); err != nil {
			t.Fatalf("reservation for %+v: %v", scope, err)
		}
	}
}

type dbReserver struct {
	db   *gorm.DB
	repo invoicedomain.Repository
}

func (r dbReserver) Reserve(ctx context.Context, record *invoicedomain.NumberRecord) error {
	return r.repo.ReserveNumber(ctx, r.db, record)
}

func TestReserveNumberConcurrentGenerators(t *testing.T) {
	repo, db, node := setupRepo(t)
	ctx := context.Background()

	// Shared-cache sqlite rejects overlapping writers, so cap the pool at a
	// single connection. The goroutines still race into Next concurrently;
	// only the final insert is serialized, same as a busy production table.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	fixed := clock.Fixed(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	gen := number.NewGenerator(node, fixed, 0, zap.NewNop())
	reserver := dbReserver{db: db, repo: repo}

	const workers = 8
	const perWorker = 5

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]struct{}{}
	)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				record, err := gen.Next(ctx, reserver, invoicedomain.KindInvoice, "TKU")
				if err != nil {
					errs[worker] = err
					return
				}
				mu.Lock()
				numbers[record.Number] = struct{}{}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	for worker, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", worker, err)
		}
	}
	if len(numbers) != workers*perWorker {
		t.Fatalf("expected %d distinct numbers, got %d", workers*perWorker, len(numbers))
	}

	count, err := repo.CountNumbersForDay(ctx, db, invoicedomain.KindInvoice, "TKU", "20260831")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != int64(workers*perWorker) {
		t.Fatalf("expected %d reservation rows, got %d", workers*perWorker, count)
	}
}

func TestInsertInvoiceAssignsItemPositions(t *testing.T) {
	repo, db, node := setupRepo(t)
	ctx := context.Background()

	invoice := &invoicedomain.Invoice{
		ID:           node.Generate(),
		BusinessID:   node.Generate(),
		Number:       "#INV-TKU-20260831-AB12",
		Kind:         invoicedomain.KindInvoice,
		BusinessCode: "TKU",
		DiscountType: "fixed",
		Items: []invoicedomain.InvoiceItem{
			{ID: node.Generate(), ProductName: "barang", Quantity: 2, UnitPrice: 50000, LineTotal: 100000},
			{ID: node.Generate(), ProductName: "lolly", Quantity: 3, UnitPrice: 30000, LineTotal: 90000},
		},
	}
	if err := repo.InsertInvoice(ctx, db, invoice); err != nil {
		t.Fatalf("insert: %v", err)
	}

	loaded, err := repo.FindByID(ctx, db, invoice.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loaded == nil {
		t.Fatalf("expected invoice found")
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded.Items))
	}
	for i, item := range loaded.Items {
		if item.Position != i {
			t.Fatalf("expected position %d, got %d", i, item.Position)
		}
		if item.InvoiceID != invoice.ID {
			t.Fatalf("expected item bound to invoice, got %v", item.InvoiceID)
		}
	}
}

func TestFindByIDMissing(t *testing.T) {
	repo, db, _ := setupRepo(t)

	loaded, err := repo.FindByID(context.Background(), db, 12345)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil for missing invoice, got %+v", loaded)
	}
}

func TestCountNumbersForDay(t *testing.T) {
	repo, db, node := setupRepo(t)
	ctx := context.Background()

	for _, suffix := range []string{"AAAA", "BBBB", "CCCC"} {
		record := &invoicedomain.NumberRecord{
			ID:           node.Generate(),
			Kind:         invoicedomain.KindInvoice,
			BusinessCode: "TKU",
			DateKey:      "20260831",
			Suffix:       suffix,
			Number:       "#INV-TKU-20260831-" + suffix,
		}
		if err := repo.ReserveNumber(ctx, db, record); err != nil {
			t.Fatalf("reserve %s: %v", suffix, err)
		}
	}

	count, err := repo.CountNumbersForDay(ctx, db, invoicedomain.KindInvoice, "TKU", "20260831")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3, got %d", count)
	}

	count, err = repo.CountNumbersForDay(ctx, db, invoicedomain.KindOrder, "TKU", "20260831")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 for other kind, got %d", count)
	}
}
