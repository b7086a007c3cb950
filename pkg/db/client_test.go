package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/angelmondragon/sportomic-backend/pkg/config"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
	"github.com/jackc/pgx/v5/pgconn"
)

func memoryConfig(t *testing.T) config.DBConfig {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return config.DBConfig{
		Driver:       config.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 2,
	}
}

func TestNew_SQLite(t *testing.T) {
	ctx := context.Background()
	client, err := New(ctx, memoryConfig(t), logger.Nop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer client.Close()

	if got := client.DB().Dialector.Name(); got != "sqlite" {
		t.Fatalf("expected sqlite dialector, got %s", got)
	}
	if err := client.Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	sqlDB, err := client.DB().DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 2 {
		t.Fatalf("expected pool bound 2, got %d", got)
	}
}

func TestNew_RequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestProvider_LazyOpenAndClose(t *testing.T) {
	ctx := context.Background()
	calls := 0
	p := NewProvider(memoryConfig(t), nil)
	p.open = func(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Client, error) {
		calls++
		return New(ctx, cfg, logg)
	}

	if calls != 0 {
		t.Fatalf("provider must not open eagerly")
	}
	if _, err := p.Conn(ctx); err != nil {
		t.Fatalf("Conn failed: %v", err)
	}
	if err := p.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single open, got %d", calls)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := p.Conn(ctx); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after Close, got %v", err)
	}
}

func TestProvider_RetriesAfterFailedOpen(t *testing.T) {
	ctx := context.Background()
	attempts := 0
	p := NewProvider(memoryConfig(t), nil)
	p.open = func(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Client, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("connection refused")
		}
		return New(ctx, cfg, logg)
	}
	defer p.Close()

	if _, err := p.Conn(ctx); err == nil {
		t.Fatal("expected first open to fail")
	}
	if _, err := p.Conn(ctx); err != nil {
		t.Fatalf("expected second open to succeed, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestProvider_CloseWithoutOpen(t *testing.T) {
	p := NewProvider(memoryConfig(t), nil)
	if err := p.Close(); err != nil {
		t.Fatalf("Close on unopened provider: %v", err)
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "canceled", err: fmt.Errorf("query: %w", context.Canceled), want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "bad conn", err: driver.ErrBadConn, want: true},
		{name: "closed provider", err: ErrClosed, want: true},
		{name: "net error", err: &net.OpError{Op: "dial", Err: timeoutErr{}}, want: true},
		{name: "pg connection class", err: &pgconn.PgError{Code: "08006"}, want: true},
		{name: "pg type error", err: &pgconn.PgError{Code: "22P02"}, want: false},
		{name: "constraint", err: errors.New("NOT NULL constraint failed: venues.id"), want: false},
	}

	for _, tt := range tests {
		if got := IsFatal(tt.err); got != tt.want {
			t.Fatalf("%s: expected %v got %v", tt.name, tt.want, got)
		}
	}
}
