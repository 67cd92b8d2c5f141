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

package bolt

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/Maxino22/neo4j-ex/neo4j/db"
	"github.com/Maxino22/neo4j-ex/neo4j/internal/packstream"
	"github.com/Maxino22/neo4j-ex/neo4j/log"
)

// AccessMode selects the "r"/"w" hint passed on BEGIN.
type AccessMode int

const (
	WriteMode AccessMode = iota
	ReadMode
)

func (m AccessMode) String() string {
	if m == ReadMode {
		return "r"
	}
	return "w"
}

// Connection is one Bolt link to a server: a TCP socket, the negotiated
// protocol version, the connection's place in the state machine, and
// the receive buffer that reading-with-buffering needs on hand, kept
// per connection rather than in a shared, process-wide table.
type Connection struct {
	conn         net.Conn
	serverName   string
	state        State
	version      protocolVersion
	recvBuf      []byte
	chunker      *chunker
	connTimeout  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       log.Logger
	boltLogger   log.BoltLogger
	serverAgent  string

	// fields is the RUN SUCCESS's declared column names, kept so Pull
	// can attach them to each Record without the caller having to pass
	// them back in.
	fields []string
}

// New wraps an already-dialed socket; Connect still must be called
// before any other operation.
func New(conn net.Conn, serverName string, connTimeout, readTimeout, writeTimeout time.Duration, logger log.Logger, boltLogger log.BoltLogger) *Connection {
	return &Connection{
		conn:         conn,
		serverName:   serverName,
		state:        Disconnected,
		chunker:      newChunker(),
		connTimeout:  connTimeout,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
		logger:       logger,
		boltLogger:   boltLogger,
	}
}

func (c *Connection) State() State { return c.state }

func (c *Connection) Version() (major, minor byte) { return c.version.major, c.version.minor }

// Connect performs the handshake and authenticates, leaving the
// connection READY or DEFUNCT.
func (c *Connection) Connect(userAgent string, auth map[string]interface{}) error {
	if c.state != Disconnected {
		return db.NewError(db.ProtocolError, "Connect called twice")
	}
	c.state = Negotiating

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.connTimeout)); err != nil {
		return c.fail(db.WrapError(db.ConnectionFailed, "set write deadline", err))
	}
	handshake := buildHandshake()
	if c.boltLogger != nil {
		c.boltLogger.LogClientMessage("", "<HANDSHAKE> %#x", handshake)
	}
	if _, err := c.conn.Write(handshake); err != nil {
		return c.fail(db.WrapError(db.ConnectionFailed, "write handshake", err))
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(c.connTimeout)); err != nil {
		return c.fail(db.WrapError(db.ConnectionFailed, "set read deadline", err))
	}
	reply := make([]byte, 4)
	if _, err := readFull(c.conn, reply); err != nil {
		return c.fail(db.WrapError(db.HandshakeFailed, "read handshake reply", err))
	}
	if c.boltLogger != nil {
		c.boltLogger.LogServerMessage("", "<HANDSHAKE> %#x", reply)
	}
	version, err := parseHandshakeResponse(reply)
	if err != nil {
		return c.fail(err)
	}
	c.version = version

	if err := c.authenticate(userAgent, auth); err != nil {
		return err
	}
	if c.logger != nil {
		c.logger.Infof("bolt", c.serverName, "Connected, server agent %q", c.serverAgent)
	}
	return nil
}

// authenticate tries the merged HELLO form first; if the server answers
// with a FAILURE that looks like it wants the split HELLO/LOGON
// sequence, it retries once with LOGON.
func (c *Connection) authenticate(userAgent string, auth map[string]interface{}) error {
	c.state = Authenticating

	merged := helloFields(userAgent)
	for k, v := range auth {
		merged[k] = v
	}
	if err := c.writeMessage(helloMessage(merged)); err != nil {
		return c.fail(err)
	}
	resp, err := c.readMessage()
	if err != nil {
		return c.fail(err)
	}
	switch r := resp.(type) {
	case *success:
		return c.finishAuthentication(r)
	case *failure:
		if looksLikeLogonRequired(r) {
			return c.authenticateSplit(userAgent, auth)
		}
		return c.fail(db.ServerError(db.AuthFailed, r.code, r.message))
	default:
		return c.fail(db.NewError(db.ProtocolError, "unexpected reply to HELLO"))
	}
}

func (c *Connection) authenticateSplit(userAgent string, auth map[string]interface{}) error {
	if err := c.writeMessage(helloMessage(helloFields(userAgent))); err != nil {
		return c.fail(err)
	}
	resp, err := c.readMessage()
	if err != nil {
		return c.fail(err)
	}
	if f, ok := resp.(*failure); ok {
		return c.fail(db.ServerError(db.AuthFailed, f.code, f.message))
	}
	if _, ok := resp.(*success); !ok {
		return c.fail(db.NewError(db.ProtocolError, "unexpected reply to HELLO"))
	}

	if err := c.writeMessage(logonMessage(auth)); err != nil {
		return c.fail(err)
	}
	resp, err = c.readMessage()
	if err != nil {
		return c.fail(err)
	}
	switch r := resp.(type) {
	case *success:
		return c.finishAuthentication(r)
	case *failure:
		return c.fail(db.ServerError(db.AuthFailed, r.code, r.message))
	default:
		return c.fail(db.NewError(db.ProtocolError, "unexpected reply to LOGON"))
	}
}

func (c *Connection) finishAuthentication(s *success) error {
	c.serverAgent, _ = s.meta["server"].(string)
	if hints, ok := s.meta["hints"].(map[string]interface{}); ok {
		if secs, ok := hints["connection.recv_timeout_seconds"].(int64); ok && secs > 0 {
			c.readTimeout = time.Duration(secs) * time.Second
		}
	}
	c.state = Ready
	return nil
}

// looksLikeLogonRequired is a heuristic over the server's FAILURE code
// for HELLO: servers new enough to require LOGON reject an auth-bearing
// HELLO with a request-shaped client error rather than a security one.
func looksLikeLogonRequired(f *failure) bool {
	return strings.Contains(f.code, "ClientError.Request")
}

func helloFields(userAgent string) map[string]interface{} {
	return map[string]interface{}{
		"user_agent": userAgent,
		"bolt_agent": map[string]interface{}{
			"product":  "neo4j-ex/1.0",
			"platform": "go",
			"language": "Go",
		},
	}
}

// Run sends RUN and reads its SUCCESS (returning the declared field
// names) or FAILURE. It is legal from READY or TX_READY.
func (c *Connection) Run(cypher string, params, meta map[string]interface{}) ([]string, error) {
	switch c.state {
	case Ready, TxReady:
	default:
		return nil, db.NewError(db.ProtocolError, fmt.Sprintf("RUN is illegal in state %s", c.state))
	}
	wasTx := c.state == TxReady

	if err := c.writeMessage(runMessage(cypher, params, meta)); err != nil {
		return nil, c.fail(err)
	}
	resp, err := c.readMessage()
	if err != nil {
		return nil, c.fail(err)
	}
	switch r := resp.(type) {
	case *success:
		fields := r.fields()
		c.fields = fields
		if wasTx {
			c.state = TxStreaming
		} else {
			c.state = Streaming
		}
		return fields, nil
	case *failure:
		c.state = Failed
		return nil, db.ServerError(db.QueryFailed, r.code, r.message)
	default:
		return nil, c.fail(db.NewError(db.ProtocolError, "unexpected reply to RUN"))
	}
}

// PullResult is what a single PULL round yields: every record seen
// (delivered through onRecord as it is decoded, not buffered here), the
// terminal summary once the stream ends, and whether the stream has
// more batches left under this qid.
type PullResult struct {
	Summary db.Summary
	HasMore bool
}

// Pull issues PULL{n, qid} and streams RECORDs to onRecord until a
// terminal SUCCESS or FAILURE, returning to READY/TX_READY only when
// has_more is false.
func (c *Connection) Pull(n, qid int64, onRecord func(*db.Record)) (PullResult, error) {
	return c.pullOrDiscard(pullMessage(n, qid), onRecord)
}

// Discard issues DISCARD{n, qid}, which behaves like Pull but never
// delivers records.
func (c *Connection) Discard(n, qid int64) (PullResult, error) {
	return c.pullOrDiscard(discardMessage(n, qid), nil)
}

func (c *Connection) pullOrDiscard(msg *packstream.Struct, onRecord func(*db.Record)) (PullResult, error) {
	switch c.state {
	case Streaming, TxStreaming, Failed:
	default:
		return PullResult{}, db.NewError(db.ProtocolError, fmt.Sprintf("PULL/DISCARD is illegal in state %s", c.state))
	}
	wasFailed := c.state == Failed
	wasTx := c.state == TxStreaming

	if err := c.writeMessage(msg); err != nil {
		return PullResult{}, c.fail(err)
	}

	for {
		resp, err := c.readMessage()
		if err != nil {
			return PullResult{}, c.fail(err)
		}
		switch r := resp.(type) {
		case *record:
			if wasFailed {
				continue // can't happen server-side, but never surface records from a FAILED exchange
			}
			if onRecord != nil {
				onRecord(&db.Record{Values: r.values, Keys: c.fields})
			}
		case *ignored:
			return PullResult{}, db.NewError(db.ProtocolError, "request ignored; connection is FAILED")
		case *success:
			hasMore := r.hasMore()
			if hasMore {
				if wasTx {
					c.state = TxStreaming
				} else {
					c.state = Streaming
				}
			} else {
				if wasTx {
					c.state = TxReady
				} else {
					c.state = Ready
				}
			}
			return PullResult{Summary: buildSummary(r.meta), HasMore: hasMore}, nil
		case *failure:
			c.state = Failed
			return PullResult{}, db.ServerError(db.QueryFailed, r.code, r.message)
		default:
			return PullResult{}, c.fail(db.NewError(db.ProtocolError, "unexpected reply to PULL/DISCARD"))
		}
	}
}

// Begin sends BEGIN and transitions READY → TX_READY.
func (c *Connection) Begin(mode AccessMode, txTimeoutMs int64, bookmarks []string) error {
	if c.state != Ready {
		return db.NewError(db.ProtocolError, fmt.Sprintf("BEGIN is illegal in state %s", c.state))
	}
	meta := map[string]interface{}{"mode": mode.String()}
	if txTimeoutMs > 0 {
		meta["tx_timeout"] = txTimeoutMs
	}
	if len(bookmarks) > 0 {
		meta["bookmarks"] = bookmarks
	}
	if err := c.writeMessage(beginMessage(meta)); err != nil {
		return c.fail(err)
	}
	return c.expectSimpleSuccess("BEGIN", TxReady)
}

// Commit sends COMMIT and transitions TX_READY → READY.
func (c *Connection) Commit() error {
	if c.state != TxReady {
		return db.NewError(db.ProtocolError, fmt.Sprintf("COMMIT is illegal in state %s", c.state))
	}
	if err := c.writeMessage(commitMessage()); err != nil {
		return c.fail(err)
	}
	return c.expectSimpleSuccess("COMMIT", Ready)
}

// Rollback sends ROLLBACK and transitions TX_READY -> READY. It is
// also legal from FAILED, so a rollback is attempted even after a
// query error.
func (c *Connection) Rollback() error {
	switch c.state {
	case TxReady, Failed:
	default:
		return db.NewError(db.ProtocolError, fmt.Sprintf("ROLLBACK is illegal in state %s", c.state))
	}
	if err := c.writeMessage(rollbackMessage()); err != nil {
		return c.fail(err)
	}
	return c.expectSimpleSuccess("ROLLBACK", Ready)
}

// Reset is the only recovery path out of FAILED; it also discards any
// unconsumed receive buffer.
func (c *Connection) Reset() error {
	if err := c.writeMessage(resetMessage()); err != nil {
		return c.fail(err)
	}
	err := c.expectSimpleSuccess("RESET", Ready)
	c.recvBuf = nil
	return err
}

func (c *Connection) expectSimpleSuccess(op string, onSuccess State) error {
	resp, err := c.readMessage()
	if err != nil {
		return c.fail(err)
	}
	switch r := resp.(type) {
	case *success:
		c.state = onSuccess
		return nil
	case *ignored:
		return db.NewError(db.ProtocolError, op+" ignored; connection is FAILED")
	case *failure:
		c.state = Failed
		return db.ServerError(db.QueryFailed, r.code, r.message)
	default:
		return c.fail(db.NewError(db.ProtocolError, "unexpected reply to "+op))
	}
}

// Close sends GOODBYE best-effort and tears down the socket. Every
// state transitions to DEFUNCT on close.
func (c *Connection) Close() error {
	if c.state != Defunct && c.state != Disconnected {
		_ = c.writeMessage(goodbyeMessage())
	}
	if c.logger != nil {
		c.logger.Debugf("bolt", c.serverName, "Closing connection")
	}
	c.state = Defunct
	return c.conn.Close()
}

func (c *Connection) fail(err error) error {
	if c.logger != nil {
		c.logger.Warnf("bolt", c.serverName, "%s", err)
	}
	c.state = Defunct
	return err
}

// ReAuth swaps the credentials on an already-authenticated, otherwise
// idle connection by sending LOGOFF followed by a fresh LOGON, so a
// pooled connection can change identity without a new TCP handshake.
func (c *Connection) ReAuth(auth map[string]interface{}) error {
	if c.state != Ready {
		return db.NewError(db.ProtocolError, fmt.Sprintf("LOGOFF is illegal in state %s", c.state))
	}
	if err := c.writeMessage(logoffMessage()); err != nil {
		return c.fail(err)
	}
	if err := c.expectSimpleSuccess("LOGOFF", Authenticating); err != nil {
		return err
	}
	if err := c.writeMessage(logonMessage(auth)); err != nil {
		return c.fail(err)
	}
	return c.expectSimpleSuccess("LOGON", Ready)
}

func (c *Connection) writeMessage(msg *packstream.Struct) error {
	c.chunker.beginMessage()
	packer := packstream.NewPacker(c.chunker, dehydrate)
	if err := packer.Pack(msg); err != nil {
		return db.WrapError(db.ProtocolError, "encode message", err)
	}
	c.chunker.endMessage()
	frame := c.chunker.bytes()

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return db.WrapError(db.ConnectionFailed, "set write deadline", err)
	}
	if _, err := c.conn.Write(frame); err != nil {
		return classifyIOError(err)
	}
	if c.boltLogger != nil {
		c.boltLogger.LogClientMessage("", "<MESSAGE> tag=%#x fields=%d", msg.Tag, len(msg.Fields))
	}
	return nil
}

// readMessage implements the mandatory buffering contract: it first
// tries to dechunk and decode a message purely from the
// already-buffered bytes, and only reads from the socket when that
// comes back NeedMore.
func (c *Connection) readMessage() (interface{}, error) {
	for {
		msg, rest, err := extractMessage(c.recvBuf)
		if err == packstream.ErrNeedMore {
			if err := c.fillBuffer(); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, db.WrapError(db.ProtocolError, "malformed chunk framing", err)
		}
		c.recvBuf = rest

		value, leftover, err := packstream.Decode(msg, hydrate)
		if err != nil {
			return nil, db.WrapError(db.ProtocolError, "malformed message", err)
		}
		if len(leftover) != 0 {
			return nil, db.NewError(db.ProtocolError, "trailing bytes after a decoded message")
		}
		if c.boltLogger != nil {
			c.boltLogger.LogServerMessage("", "<MESSAGE> %T", value)
		}
		return value, nil
	}
}

func (c *Connection) fillBuffer() error {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return db.WrapError(db.ConnectionFailed, "set read deadline", err)
	}
	tmp := make([]byte, 8192)
	n, err := c.conn.Read(tmp)
	if n > 0 {
		c.recvBuf = append(c.recvBuf, tmp[:n]...)
	}
	if err != nil {
		return classifyIOError(err)
	}
	return nil
}

func classifyIOError(err error) error {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return db.WrapError(db.Timeout, "transport read/write timed out", err)
	}
	return db.WrapError(db.ConnectionFailed, "transport read/write failed", err)
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
