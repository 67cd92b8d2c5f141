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

	"github.com/Maxino22/neo4j-ex/neo4j/internal/packstream"
)

func TestClassifySuccess(t *testing.T) {
	v, err := classifyMessage(msgSuccess, []interface{}{map[string]interface{}{
		"fields": []interface{}{"a", "b"}, "has_more": true,
	}})
	require.NoError(t, err)
	s := v.(*success)
	assert.Equal(t, []string{"a", "b"}, s.fields())
	assert.True(t, s.hasMore())
}

func TestClassifyFailure(t *testing.T) {
	v, err := classifyMessage(msgFailure, []interface{}{map[string]interface{}{
		"code": "Neo.ClientError.Statement.SyntaxError", "message": "oops",
	}})
	require.NoError(t, err)
	f := v.(*failure)
	assert.Equal(t, "Neo.ClientError.Statement.SyntaxError", f.code)
	assert.Contains(t, f.Error(), "oops")
}

func TestClassifyIgnored(t *testing.T) {
	v, err := classifyMessage(msgIgnored, nil)
	require.NoError(t, err)
	_, ok := v.(*ignored)
	assert.True(t, ok)
}

func TestClassifyRecord(t *testing.T) {
	v, err := classifyMessage(msgRecord, []interface{}{[]interface{}{int64(1), "x"}})
	require.NoError(t, err)
	r := v.(*record)
	assert.Equal(t, []interface{}{int64(1), "x"}, r.values)
}

func TestClassifyUnknownTag(t *testing.T) {
	v, err := classifyMessage(packstream.StructTag(0xaa), []interface{}{int64(1)})
	require.NoError(t, err)
	u := v.(*unknown)
	assert.Equal(t, packstream.StructTag(0xaa), u.tag)
}

func TestClassifySuccessRejectsWrongFieldCount(t *testing.T) {
	_, err := classifyMessage(msgSuccess, nil)
	assert.Error(t, err)
}

func TestClassifyFailureRejectsNonMapMetadata(t *testing.T) {
	_, err := classifyMessage(msgFailure, []interface{}{"not a map"})
	assert.Error(t, err)
}
