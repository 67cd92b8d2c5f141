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

package neo4j

import (
	"context"

	"github.com/Maxino22/neo4j-ex/neo4j/db"
	"github.com/Maxino22/neo4j-ex/neo4j/internal/bolt"
)

type sessionConfig struct {
	mode      bolt.AccessMode
	bookmarks []string
	batchSize int64
}

// SessionOption configures a Session at creation time.
type SessionOption func(*sessionConfig)

func WithAccessMode(mode bolt.AccessMode) SessionOption {
	return func(c *sessionConfig) { c.mode = mode }
}

func WithBookmarks(bookmarks ...string) SessionOption {
	return func(c *sessionConfig) { c.bookmarks = bookmarks }
}

type runOptions struct {
	mode      bolt.AccessMode
	timeoutMs int64
}

// RunOption configures a single Run, RunCursor or BeginTransaction
// call. WithTxTimeout (the transaction timeout in milliseconds) is the
// only option; the access mode comes from the session's WithAccessMode,
// and there is no per-call query timeout (reads are bounded by the
// driver's query timeout).
type RunOption func(*runOptions)

func WithTxTimeout(ms int64) RunOption {
	return func(o *runOptions) { o.timeoutMs = ms }
}

// Session borrows one Connection from the driver's pool for its
// lifetime. A Session is not safe for concurrent use: it enforces at
// most one in-flight RUN/PULL cycle, matching the connection
// underneath, which is strictly single-threaded.
type Session struct {
	driver *Driver
	config sessionConfig
	conn   *bolt.Connection
}

func (s *Session) ensureConn(ctx context.Context) error {
	if s.conn != nil {
		return nil
	}
	conn, err := s.driver.pool.Checkout(ctx)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

// Run executes an auto-commit query: RUN, then PULL(n=-1) consuming
// every RECORD through to the terminal SUCCESS/FAILURE.
func (s *Session) Run(ctx context.Context, cypher string, params map[string]interface{}, opts ...RunOption) (*Result, error) {
	if err := s.ensureConn(ctx); err != nil {
		return nil, err
	}
	ro := runOptions{mode: s.config.mode}
	for _, opt := range opts {
		opt(&ro)
	}

	fields, err := s.conn.Run(cypher, params, runMeta(ro))
	if err != nil {
		return nil, s.recoverAfterFailure(err)
	}

	var records []*db.Record
	pr, err := s.conn.Pull(bolt.PullOrDiscardAll, -1, func(r *db.Record) {
		records = append(records, r)
	})
	if err != nil {
		return nil, s.recoverAfterFailure(err)
	}
	return &Result{Keys: fields, Records: records, Summary: pr.Summary}, nil
}

func runMeta(ro runOptions) map[string]interface{} {
	meta := map[string]interface{}{"mode": ro.mode.String()}
	if ro.timeoutMs > 0 {
		meta["tx_timeout"] = ro.timeoutMs
	}
	return meta
}

// BeginTransaction sends BEGIN and returns a handle for an explicit
// transaction. The connection must be READY.
func (s *Session) BeginTransaction(ctx context.Context, opts ...RunOption) (*Transaction, error) {
	if err := s.ensureConn(ctx); err != nil {
		return nil, err
	}
	to := runOptions{mode: s.config.mode}
	for _, opt := range opts {
		opt(&to)
	}
	if err := s.conn.Begin(to.mode, to.timeoutMs, s.config.bookmarks); err != nil {
		return nil, s.recoverAfterFailure(err)
	}
	return &Transaction{session: s}, nil
}

// WithTransaction is a scoped-resource builder in place of
// exception-based try/finally semantics: fn's normal return commits,
// any error it returns triggers rollback, and a rollback failure is
// attached to but never replaces fn's error.
func (s *Session) WithTransaction(ctx context.Context, fn func(tx *Transaction) (interface{}, error), opts ...RunOption) (interface{}, error) {
	tx, err := s.BeginTransaction(ctx, opts...)
	if err != nil {
		return nil, err
	}
	result, fnErr := fn(tx)
	if fnErr != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return nil, &rollbackAfterError{original: fnErr, rollback: rbErr}
		}
		return nil, fnErr
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// recoverAfterFailure issues RESET when a query failure left the
// connection FAILED, then returns the original error unchanged.
func (s *Session) recoverAfterFailure(queryErr error) error {
	if s.conn != nil && s.conn.State() == bolt.Failed {
		_ = s.conn.Reset()
	}
	return queryErr
}

// Close returns the session's connection to the pool. A connection
// left in anything but READY is closed (GOODBYE, DEFUNCT) rather than
// reused, per the pool's checkin contract.
func (s *Session) Close(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	return s.driver.pool.Checkin(ctx, conn)
}

type rollbackAfterError struct {
	original error
	rollback error
}

func (e *rollbackAfterError) Error() string {
	return e.original.Error() + " (rollback also failed: " + e.rollback.Error() + ")"
}

func (e *rollbackAfterError) Unwrap() error { return e.original }
