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

import "github.com/Maxino22/neo4j-ex/neo4j/db"

// magic is the four bytes that open every Bolt handshake ("GoGoBolt").
var magic = [4]byte{0x60, 0x60, 0xb0, 0x17}

type protocolVersion struct {
	major, minor byte
}

// SupportedVersions lists the negotiable protocol versions in
// preference order, newest first.
var SupportedVersions = [4]protocolVersion{
	{major: 5, minor: 4},
	{major: 5, minor: 3},
	{major: 5, minor: 2},
	{major: 5, minor: 1},
}

// buildHandshake renders the magic plus four version proposals, each
// encoded `00 00 minor major`.
func buildHandshake() []byte {
	out := make([]byte, 0, 20)
	out = append(out, magic[:]...)
	for _, v := range SupportedVersions {
		out = append(out, 0x00, 0x00, v.minor, v.major)
	}
	return out
}

// parseHandshakeResponse interprets the server's 4-byte reply. It
// accepts both the standard `00 00 minor major` encoding and the
// historical `minor 00 00 major` one on receive, and rejects a
// version this client never offered even if well-formed.
func parseHandshakeResponse(buf []byte) (protocolVersion, error) {
	if len(buf) != 4 {
		return protocolVersion{}, db.NewError(db.HandshakeFailed, "malformed handshake reply: wrong length")
	}
	if buf[0] == 0 && buf[1] == 0 && buf[2] == 0 && buf[3] == 0 {
		return protocolVersion{}, db.NewError(db.HandshakeFailed, "server rejected every proposed Bolt version")
	}

	candidates := []protocolVersion{
		{major: buf[3], minor: buf[2]}, // 00 00 minor major
		{major: buf[3], minor: buf[0]}, // minor 00 00 major
	}
	for _, v := range candidates {
		for _, supported := range SupportedVersions {
			if v == supported {
				return v, nil
			}
		}
	}
	return protocolVersion{}, db.NewError(db.HandshakeFailed, "server agreed to an unsupported or malformed version")
}
