// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pool is a connection pool with a fixed base size and bounded
// overflow, FIFO or LIFO checkout, borrow-time validation and
// checkin-time health checking. It wraps go-commons-pool, an
// Apache-commons-pool-style generic object pool, rather than
// hand-rolling the waiter queue and idle bookkeeping directly.
package pool

import (
	"context"
	"time"

	commonspool "github.com/jolestar/go-commons-pool"

	"github.com/Maxino22/neo4j-ex/neo4j/db"
	"github.com/Maxino22/neo4j-ex/neo4j/internal/bolt"
)

// Strategy picks the idle-set discipline.
type Strategy int

const (
	FIFO Strategy = iota
	LIFO
)

// Config maps onto go-commons-pool's ObjectPoolConfig: Size becomes
// MaxIdle, Size+MaxOverflow becomes MaxTotal, Strategy becomes LIFO,
// CheckoutTimeout is applied as a context deadline around BorrowObject.
type Config struct {
	Size            int
	MaxOverflow     int
	Strategy        Strategy
	CheckoutTimeout time.Duration
}

// Dialer creates one brand-new, already-authenticated connection. It is
// supplied by the driver, which is the only layer that knows the
// target address and credentials.
type Dialer func(ctx context.Context) (*bolt.Connection, error)

type connFactory struct {
	dial Dialer
}

func (f *connFactory) MakeObject(ctx context.Context) (*commonspool.PooledObject, error) {
	conn, err := f.dial(ctx)
	if err != nil {
		return nil, err
	}
	return commonspool.NewPooledObject(conn), nil
}

func (f *connFactory) DestroyObject(ctx context.Context, object *commonspool.PooledObject) error {
	conn := object.Object.(*bolt.Connection)
	return conn.Close()
}

// ValidateObject is go-commons-pool's borrow-time health check
// (TestOnBorrow below); a connection whose last operation left it
// outside READY is unhealthy and gets discarded and replaced rather
// than handed out.
func (f *connFactory) ValidateObject(ctx context.Context, object *commonspool.PooledObject) bool {
	conn := object.Object.(*bolt.Connection)
	return conn.State() == bolt.Ready
}

func (f *connFactory) ActivateObject(ctx context.Context, object *commonspool.PooledObject) error {
	return nil
}

func (f *connFactory) PassivateObject(ctx context.Context, object *commonspool.PooledObject) error {
	return nil
}

// Pool is a fixed-base-plus-overflow connection pool.
type Pool struct {
	inner           *commonspool.ObjectPool
	checkoutTimeout time.Duration
}

func New(ctx context.Context, cfg Config, dial Dialer) *Pool {
	pcfg := commonspool.NewDefaultPoolConfig()
	pcfg.MaxIdle = cfg.Size
	pcfg.MaxTotal = cfg.Size + cfg.MaxOverflow
	pcfg.LIFO = cfg.Strategy == LIFO
	pcfg.BlockWhenExhausted = true
	pcfg.TestOnBorrow = true

	return &Pool{
		inner:           commonspool.NewObjectPool(ctx, &connFactory{dial: dial}, pcfg),
		checkoutTimeout: cfg.CheckoutTimeout,
	}
}

// Checkout hands out an idle connection, or dials a new one if live
// connections are below N+K, or blocks up to the configured timeout.
// Waiters queue FIFO by construction: that fairness guarantee comes
// from go-commons-pool's own waiter list. The timeout is enforced via
// a context deadline since this version of go-commons-pool takes the
// wait bound from the caller's context rather than a pool-config field.
func (p *Pool) Checkout(ctx context.Context) (*bolt.Connection, error) {
	if p.checkoutTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.checkoutTimeout)
		defer cancel()
	}
	obj, err := p.inner.BorrowObject(ctx)
	if err != nil {
		return nil, db.WrapError(db.PoolExhausted, "checkout timed out or pool exhausted", err)
	}
	return obj.(*bolt.Connection), nil
}

// Checkin returns a healthy connection to the idle set; an unhealthy
// one (not READY) is closed and its slot freed.
func (p *Pool) Checkin(ctx context.Context, conn *bolt.Connection) error {
	if conn.State() != bolt.Ready {
		return p.inner.InvalidateObject(ctx, conn)
	}
	return p.inner.ReturnObject(ctx, conn)
}

// Execute acquires a connection, runs fn with it passed in explicitly
// rather than looked up from ambient state, and releases it. An error
// from fn discards the connection instead of returning it to the idle
// set, since its state after an error is not trusted.
func (p *Pool) Execute(ctx context.Context, fn func(*bolt.Connection) error) error {
	conn, err := p.Checkout(ctx)
	if err != nil {
		return err
	}
	if err := fn(conn); err != nil {
		_ = p.inner.InvalidateObject(ctx, conn)
		return err
	}
	return p.Checkin(ctx, conn)
}

// Close stops accepting checkouts and closes every idle connection;
// connections still checked out close as they're checked in.
func (p *Pool) Close(ctx context.Context) {
	p.inner.Close(ctx)
}

func (p *Pool) NumActive() int { return p.inner.GetNumActive() }
func (p *Pool) NumIdle() int   { return p.inner.GetNumIdle() }
