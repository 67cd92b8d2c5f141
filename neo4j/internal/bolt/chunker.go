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

import "encoding/binary"

// maxChunkSize is the largest payload a single chunk can carry; the
// two-byte size header can't express more.
const maxChunkSize = 0xffff

// chunker assembles one or more PackStream-encoded messages into the
// chunked wire frame: each chunk is a two-byte big-endian length
// followed by that many payload bytes, and a message ends with a
// zero-length chunk.
type chunker struct {
	chunks [][]byte
}

func newChunker() *chunker {
	return &chunker{chunks: make([][]byte, 0, 2)}
}

func (c *chunker) beginMessage() {
	c.openChunk()
}

func (c *chunker) openChunk() {
	chunk := make([]byte, 2, 0x100)
	c.chunks = append(c.chunks, chunk)
}

func (c *chunker) endMessage() {
	c.chunks = append(c.chunks, []byte{0x00, 0x00})
}

// Write appends p to the message being built, splitting across chunk
// boundaries as needed. It never fails.
func (c *chunker) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		last := len(c.chunks) - 1
		chunk := c.chunks[last]
		room := (maxChunkSize + 2) - len(chunk)
		if len(p) <= room {
			c.chunks[last] = append(chunk, p...)
			written += len(p)
			return written, nil
		}
		c.chunks[last] = append(chunk, p[:room]...)
		written += room
		p = p[room:]
		c.openChunk()
	}
	return written, nil
}

// bytes renders every pending chunk, with its length header filled in,
// as a single contiguous frame ready to hand to the transport. It then
// discards the pending chunks.
func (c *chunker) bytes() []byte {
	var out []byte
	for _, chunk := range c.chunks {
		size := uint16(len(chunk) - 2)
		binary.BigEndian.PutUint16(chunk, size)
		out = append(out, chunk...)
	}
	c.chunks = c.chunks[:0]
	return out
}
