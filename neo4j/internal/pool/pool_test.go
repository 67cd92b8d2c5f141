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

package pool

import (
	"bytes"
	"context"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxino22/neo4j-ex/neo4j/internal/bolt"
	"github.com/Maxino22/neo4j-ex/neo4j/internal/packstream"
	"github.com/Maxino22/neo4j-ex/neo4j/log"
)

// The helpers below speak just enough raw Bolt (handshake + a HELLO
// success reply) to get a real *bolt.Connection into the READY state
// without a live server, reusing packstream for the message body and a
// hand-rolled chunk header since the chunker itself is private to the
// bolt package.

func readFullT(t *testing.T, conn net.Conn, buf []byte) {
	t.Helper()
	n := 0
	for n < len(buf) {
		m, err := conn.Read(buf[n:])
		require.NoError(t, err)
		n += m
	}
}

func drainChunkedMessage(t *testing.T, conn net.Conn) {
	t.Helper()
	for {
		hdr := make([]byte, 2)
		readFullT(t, conn, hdr)
		size := binary.BigEndian.Uint16(hdr)
		if size == 0 {
			return
		}
		readFullT(t, conn, make([]byte, size))
	}
}

func successFrame(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, packstream.NewPacker(&buf, nil).PackStruct(
		packstream.StructTag(0x70), map[string]interface{}{"server": "Neo4j/5.23.0"},
	))
	payload := buf.Bytes()
	out := make([]byte, 2, 2+len(payload)+2)
	binary.BigEndian.PutUint16(out, uint16(len(payload)))
	out = append(out, payload...)
	out = append(out, 0x00, 0x00)
	return out
}

// fakeDialer returns a Dialer whose connections complete a real Bolt
// handshake and HELLO against an in-process net.Pipe peer, then drain
// and ignore anything sent afterwards (GOODBYE on close) so the
// connection never blocks waiting for a reader that has gone away.
func fakeDialer(t *testing.T) Dialer {
	return func(ctx context.Context) (*bolt.Connection, error) {
		client, server := net.Pipe()
		go func() {
			readFullT(t, server, make([]byte, 4+4*4))
			if _, err := server.Write([]byte{0x00, 0x00, 0x04, 0x05}); err != nil {
				return
			}
			drainChunkedMessage(t, server)
			if _, err := server.Write(successFrame(t)); err != nil {
				return
			}
			buf := make([]byte, 256)
			for {
				if _, err := server.Read(buf); err != nil {
					return
				}
			}
		}()

		c := bolt.New(client, "fake", time.Second, time.Second, time.Second, log.NewConsole(0), nil)
		if err := c.Connect("test-agent/1.0", map[string]interface{}{"scheme": "none"}); err != nil {
			return nil, err
		}
		return c, nil
	}
}

func TestCheckoutCheckinReturnsToIdle(t *testing.T) {
	ctx := context.Background()
	p := New(ctx, Config{Size: 2, MaxOverflow: 1, CheckoutTimeout: time.Second}, fakeDialer(t))
	defer p.Close(ctx)

	conn, err := p.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, bolt.Ready, conn.State())

	require.NoError(t, p.Checkin(ctx, conn))
	assert.Equal(t, 1, p.NumIdle())
	assert.Equal(t, 0, p.NumActive())
}

func TestCheckoutExhaustionTimesOut(t *testing.T) {
	ctx := context.Background()
	p := New(ctx, Config{Size: 1, MaxOverflow: 0, CheckoutTimeout: 100 * time.Millisecond}, fakeDialer(t))
	defer p.Close(ctx)

	first, err := p.Checkout(ctx)
	require.NoError(t, err)

	_, err = p.Checkout(ctx)
	assert.Error(t, err)

	require.NoError(t, p.Checkin(ctx, first))
}

func TestCheckinDiscardsUnhealthyConnection(t *testing.T) {
	ctx := context.Background()
	p := New(ctx, Config{Size: 2, MaxOverflow: 1, CheckoutTimeout: time.Second}, fakeDialer(t))
	defer p.Close(ctx)

	conn, err := p.Checkout(ctx)
	require.NoError(t, err)
	_ = conn.Close() // leaves it DEFUNCT rather than READY

	_ = p.Checkin(ctx, conn)
	assert.Equal(t, 0, p.NumIdle())
}

func TestExecuteDiscardsConnectionOnError(t *testing.T) {
	ctx := context.Background()
	p := New(ctx, Config{Size: 1, MaxOverflow: 1, CheckoutTimeout: time.Second}, fakeDialer(t))
	defer p.Close(ctx)

	boom := assert.AnError
	err := p.Execute(ctx, func(*bolt.Connection) error { return boom })
	assert.Equal(t, boom, err)
	assert.Equal(t, 0, p.NumIdle())
}

func TestExecuteReturnsConnectionOnSuccess(t *testing.T) {
	ctx := context.Background()
	p := New(ctx, Config{Size: 1, MaxOverflow: 1, CheckoutTimeout: time.Second}, fakeDialer(t))
	defer p.Close(ctx)

	var sawState bolt.State
	err := p.Execute(ctx, func(c *bolt.Connection) error {
		sawState = c.State()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, bolt.Ready, sawState)
	assert.Equal(t, 1, p.NumIdle())
}
