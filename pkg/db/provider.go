package db

import (
	"context"
	"errors"
	"sync"

	"github.com/angelmondragon/sportomic-backend/pkg/config"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
	"gorm.io/gorm"
)

// ErrClosed is returned by a Provider after Close.
var ErrClosed = errors.New("db: provider closed")

// Conn hands out a context-bound handle to the shared pool.
type Conn interface {
	Conn(ctx context.Context) (*gorm.DB, error)
}

type openFunc func(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Client, error)

// Provider owns the process-wide pool. The pool is opened on first use; a
// failed open is not cached, so the next caller retries.
type Provider struct {
	cfg  config.DBConfig
	logg *logger.Logger
	open openFunc

	mu     sync.Mutex
	client *Client
	closed bool
}

func NewProvider(cfg config.DBConfig, logg *logger.Logger) *Provider {
	return &Provider{cfg: cfg, logg: logg, open: New}
}

// Client returns the pooled client, opening it if needed.
func (p *Provider) Client(ctx context.Context) (*Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if p.client != nil {
		return p.client, nil
	}

	client, err := p.open(ctx, p.cfg, p.logg)
	if err != nil {
		return nil, err
	}
	p.client = client
	return client, nil
}

func (p *Provider) Conn(ctx context.Context) (*gorm.DB, error) {
	client, err := p.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.DB().WithContext(ctx), nil
}

func (p *Provider) Ping(ctx context.Context) error {
	client, err := p.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx)
}

// Close tears the pool down. It is safe to call when nothing was opened.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

type staticConn struct {
	db *gorm.DB
}

// Static wraps an already-open connection, mostly for tests and tools.
func Static(conn *gorm.DB) Conn {
	return staticConn{db: conn}
}

func (s staticConn) Conn(ctx context.Context) (*gorm.DB, error) {
	return s.db.WithContext(ctx), nil
}
