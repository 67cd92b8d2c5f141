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

// Package neo4j is the public surface of this Bolt client: a Driver
// that owns a connection pool, Sessions borrowed from it, and
// Transactions and streaming Cursors run through a Session.
package neo4j

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/Maxino22/neo4j-ex/neo4j/db"
	"github.com/Maxino22/neo4j-ex/neo4j/internal/bolt"
	"github.com/Maxino22/neo4j-ex/neo4j/internal/pool"
)

const defaultPort = "7687"

// Driver owns the connection pool for one server address. It is safe
// for concurrent use by multiple Sessions: the pool is the sole
// concurrency boundary.
type Driver struct {
	target string
	config *Config
	pool   *pool.Pool
}

// NewDriver parses uri (`bolt://host[:port]`, default port 7687; any
// other scheme is rejected) and starts a pool against it.
func NewDriver(uri string, opts ...Option) (*Driver, error) {
	target, err := parseBoltURI(uri)
	if err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	d := &Driver{target: target, config: cfg}
	d.pool = pool.New(context.Background(), pool.Config{
		Size:            cfg.PoolSize,
		MaxOverflow:     cfg.MaxOverflow,
		Strategy:        cfg.Strategy,
		CheckoutTimeout: cfg.ConnectionTimeout,
	}, d.dial)
	return d, nil
}

func parseBoltURI(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", db.WrapError(db.InvalidArgument, "malformed URI", err)
	}
	if u.Scheme != "bolt" {
		return "", db.NewError(db.InvalidArgument, fmt.Sprintf("unsupported scheme %q, only bolt:// is accepted", u.Scheme))
	}
	host := u.Hostname()
	if host == "" {
		return "", db.NewError(db.InvalidArgument, "URI has no host")
	}
	port := u.Port()
	if port == "" {
		port = defaultPort
	}
	return net.JoinHostPort(host, port), nil
}

// dial is the pool's Dialer: open a TCP socket, disable Nagle, and
// run the Bolt handshake/auth.
func (d *Driver) dial(ctx context.Context) (*bolt.Connection, error) {
	conn, err := net.DialTimeout("tcp", d.target, d.config.ConnectionTimeout)
	if err != nil {
		return nil, db.WrapError(db.ConnectionFailed, "dial "+d.target, err)
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}

	bc := bolt.New(conn, d.target, d.config.ConnectionTimeout, d.config.QueryTimeout, d.config.ConnectionTimeout, d.config.Logger, d.config.BoltLogger)
	if err := bc.Connect(d.config.UserAgent, map[string]interface{}(d.config.Auth)); err != nil {
		conn.Close()
		return nil, err
	}
	return bc, nil
}

// NewSession borrows no connection yet; a connection is checked out
// lazily on the session's first operation and returned on Close.
func (d *Driver) NewSession(opts ...SessionOption) *Session {
	cfg := sessionConfig{batchSize: int64(d.config.BatchSize)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{driver: d, config: cfg}
}

// Close shuts the pool down; outstanding connections close as sessions
// return them.
func (d *Driver) Close(ctx context.Context) {
	d.pool.Close(ctx)
}
