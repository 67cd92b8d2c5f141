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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHandshakeLayout(t *testing.T) {
	hs := buildHandshake()
	require.Len(t, hs, 20)
	assert.Equal(t, magic[:], hs[:4])

	for i, v := range SupportedVersions {
		off := 4 + i*4
		proposal := hs[off : off+4]
		assert.Equal(t, []byte{0x00, 0x00, v.minor, v.major}, proposal)
	}
}

func TestParseHandshakeResponseStandardEncoding(t *testing.T) {
	v := SupportedVersions[0]
	v, err := parseHandshakeResponse([]byte{0x00, 0x00, v.minor, v.major})
	require.NoError(t, err)
	assert.Equal(t, SupportedVersions[0], v)
}

func TestParseHandshakeResponseHistoricalEncoding(t *testing.T) {
	want := SupportedVersions[1]
	v, err := parseHandshakeResponse([]byte{want.minor, 0x00, 0x00, want.major})
	require.NoError(t, err)
	assert.Equal(t, want, v)
}

func TestParseHandshakeResponseRejectsEverythingRefused(t *testing.T) {
	_, err := parseHandshakeResponse([]byte{0x00, 0x00, 0x00, 0x00})
	assert.Error(t, err)
}

func TestParseHandshakeResponseRejectsWrongLength(t *testing.T) {
	_, err := parseHandshakeResponse([]byte{0x00, 0x00, 0x00})
	assert.Error(t, err)
}

func TestParseHandshakeResponseRejectsUnsupportedVersion(t *testing.T) {
	_, err := parseHandshakeResponse([]byte{0x00, 0x00, 0x00, 0x09})
	assert.Error(t, err)
}
