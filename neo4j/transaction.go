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
	"fmt"

	"github.com/Maxino22/neo4j-ex/neo4j/db"
	"github.com/Maxino22/neo4j-ex/neo4j/internal/bolt"
)

// Transaction is a Session whose connection is in TX_READY or
// TX_STREAMING. Run is identical to Session.Run except it asserts
// that state instead of READY.
type Transaction struct {
	session *Session
	closed  bool
}

func (tx *Transaction) Run(ctx context.Context, cypher string, params map[string]interface{}) (*Result, error) {
	conn := tx.session.conn
	if st := conn.State(); st != bolt.TxReady && st != bolt.TxStreaming {
		return nil, db.NewError(db.ProtocolError, fmt.Sprintf("transaction RUN is illegal in state %s", st))
	}
	fields, err := conn.Run(cypher, params, nil)
	if err != nil {
		return nil, tx.session.recoverAfterFailure(err)
	}
	var records []*db.Record
	pr, err := conn.Pull(bolt.PullOrDiscardAll, -1, func(r *db.Record) {
		records = append(records, r)
	})
	if err != nil {
		return nil, tx.session.recoverAfterFailure(err)
	}
	return &Result{Keys: fields, Records: records, Summary: pr.Summary}, nil
}

// Commit writes COMMIT and awaits SUCCESS, returning the connection to
// READY.
func (tx *Transaction) Commit(ctx context.Context) error {
	if tx.closed {
		return nil
	}
	tx.closed = true
	return tx.session.conn.Commit()
}

// Rollback writes ROLLBACK and awaits SUCCESS, returning the
// connection to READY. It is idempotent: rolling back an
// already-committed or already-rolled-back transaction is a no-op, so
// destroying an uncommitted transaction can safely trigger a rollback
// without risking a double ROLLBACK on the wire.
func (tx *Transaction) Rollback(ctx context.Context) error {
	if tx.closed {
		return nil
	}
	tx.closed = true
	return tx.session.conn.Rollback()
}
