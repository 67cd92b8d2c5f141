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
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/Maxino22/neo4j-ex/neo4j/internal/packstream"
)

// extractMessage pulls one complete, dechunked message out of the front
// of buf. It works entirely off a byte slice, rather than blocking on
// an io.Reader, so a connection can feed it whatever happened to
// arrive on the socket and retry once more has, the same contract
// packstream.Decode uses.
//
// On success it returns the message's payload (every chunk's bytes
// concatenated, frame markers stripped) and the unconsumed remainder of
// buf. If buf holds an incomplete frame, it returns packstream.ErrNeedMore
// and a nil message; nothing is consumed. A present-but-empty message
// (an immediate zero-length chunk) is a protocol error, not a valid
// no-op message.
func extractMessage(buf []byte) (msg []byte, rest []byte, err error) {
	pos := 0
	var payload []byte
	for {
		if len(buf)-pos < 2 {
			return nil, nil, packstream.ErrNeedMore
		}
		size := int(binary.BigEndian.Uint16(buf[pos : pos+2]))
		pos += 2
		if size == 0 {
			if payload == nil {
				return nil, nil, errors.New("bolt: empty chunked message")
			}
			return payload, buf[pos:], nil
		}
		if len(buf)-pos < size {
			return nil, nil, packstream.ErrNeedMore
		}
		payload = append(payload, buf[pos:pos+size]...)
		pos += size
	}
}
