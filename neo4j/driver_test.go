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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoltURIDefaultsPort(t *testing.T) {
	target, err := parseBoltURI("bolt://dbhost")
	require.NoError(t, err)
	assert.Equal(t, "dbhost:7687", target)
}

func TestParseBoltURIExplicitPort(t *testing.T) {
	target, err := parseBoltURI("bolt://dbhost:7688")
	require.NoError(t, err)
	assert.Equal(t, "dbhost:7688", target)
}

func TestParseBoltURIRejectsOtherSchemes(t *testing.T) {
	_, err := parseBoltURI("neo4j://dbhost")
	assert.Error(t, err)

	_, err = parseBoltURI("http://dbhost")
	assert.Error(t, err)
}

func TestParseBoltURIRejectsMissingHost(t *testing.T) {
	_, err := parseBoltURI("bolt://")
	assert.Error(t, err)
}

func TestParseBoltURIRejectsMalformed(t *testing.T) {
	_, err := parseBoltURI("bolt://host:port:extra")
	assert.Error(t, err)
}

func TestNewDriverRejectsBadURI(t *testing.T) {
	d, err := NewDriver("not-a-uri://host")
	assert.Nil(t, d)
	assert.Error(t, err)
}

func TestNewDriverAppliesOptions(t *testing.T) {
	d, err := NewDriver("bolt://dbhost:7687", WithPoolSize(3), WithUserAgent("test-agent/1.0"))
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "dbhost:7687", d.target)
	assert.Equal(t, 3, d.config.PoolSize)
	assert.Equal(t, "test-agent/1.0", d.config.UserAgent)
}
