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
)

// Cursor is a lazy, single-pass, non-restartable iterator over a
// query's records. It only ever uses server-side PULL continuation:
// a SKIP/LIMIT rewrite fallback is unsafe for writes and
// order-dependent queries, and every protocol version this driver
// speaks (5.1-5.4) supports PULL continuation, so it is not
// implemented.
type Cursor struct {
	session   *Session
	fields    []string
	batchSize int64

	buffer []*db.Record
	pos    int
	done   bool
	err    error
	summary db.Summary
}

// RunCursor runs cypher and returns a Cursor over its results instead
// of eagerly materializing every record, for queries expected to
// produce many rows.
func (s *Session) RunCursor(ctx context.Context, cypher string, params map[string]interface{}, opts ...RunOption) (*Cursor, error) {
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
	batchSize := s.config.batchSize
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &Cursor{session: s, fields: fields, batchSize: batchSize}, nil
}

// Next advances the cursor by one record, pulling a fresh batch from
// the server when the current one is exhausted. It returns
// (record, true, nil) on success, (nil, false, nil) when the stream is
// done, and (nil, false, err) on failure.
func (c *Cursor) Next(ctx context.Context) (*db.Record, bool, error) {
	if c.pos < len(c.buffer) {
		r := c.buffer[c.pos]
		c.pos++
		return r, true, nil
	}
	if c.done {
		return nil, false, c.err
	}

	c.buffer = c.buffer[:0]
	c.pos = 0
	pr, err := c.session.conn.Pull(c.batchSize, -1, func(r *db.Record) {
		c.buffer = append(c.buffer, r)
	})
	if err != nil {
		c.done = true
		c.err = c.session.recoverAfterFailure(err)
		return nil, false, c.err
	}
	if !pr.HasMore {
		c.summary = pr.Summary
		c.done = true
	}
	if len(c.buffer) == 0 {
		return nil, false, nil
	}
	r := c.buffer[0]
	c.pos = 1
	return r, true, nil
}

// Keys returns the field names declared by the RUN SUCCESS.
func (c *Cursor) Keys() []string { return c.fields }

// Summary is only meaningful once Next has returned done; it is the
// zero value until then.
func (c *Cursor) Summary() db.Summary { return c.summary }
