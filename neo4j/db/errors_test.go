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

package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	pkgerrors "github.com/pkg/errors"
)

func TestErrorStringWithCode(t *testing.T) {
	e := ServerError(QueryFailed, "Neo.ClientError.Statement.SyntaxError", "bad query")
	assert.Equal(t, "QueryFailed: [Neo.ClientError.Statement.SyntaxError] bad query", e.Error())
}

func TestErrorStringWithoutCode(t *testing.T) {
	e := NewError(Timeout, "deadline exceeded")
	assert.Equal(t, "Timeout: deadline exceeded", e.Error())
}

func TestErrorStringKindOnly(t *testing.T) {
	e := NewError(ConnectionFailed, "")
	assert.Equal(t, "ConnectionFailed", e.Error())
}

func TestWrapErrorUnwrapsToRootCause(t *testing.T) {
	root := errors.New("connection refused")
	e := WrapError(ConnectionFailed, "dial failed", root)

	assert.NotNil(t, e.Cause())
	assert.Equal(t, root, pkgerrors.Cause(e))
}

func TestIsAuthenticationMatchesUnauthorizedOnly(t *testing.T) {
	unauthorized := ServerError(AuthFailed, "Neo.ClientError.Security.Unauthorized", "bad credentials")
	assert.True(t, unauthorized.IsAuthentication())

	forbidden := ServerError(AuthFailed, "Neo.ClientError.Security.Forbidden", "no access")
	assert.False(t, forbidden.IsAuthentication())
}

func TestIsTransientClassifiesByCodePrefix(t *testing.T) {
	e := ServerError(QueryFailed, "Neo.TransientError.Transaction.DeadlockDetected", "retry")
	assert.True(t, e.IsTransient())
	assert.False(t, e.IsClientError())
}

func TestIsClientErrorClassifiesByCodePrefix(t *testing.T) {
	e := ServerError(QueryFailed, "Neo.ClientError.Statement.SyntaxError", "bad")
	assert.True(t, e.IsClientError())
	assert.False(t, e.IsTransient())
}

func TestClassificationRejectsMalformedOrUnknownCode(t *testing.T) {
	noDot := ServerError(QueryFailed, "not-a-neo-code", "")
	assert.False(t, noDot.IsTransient())
	assert.False(t, noDot.IsClientError())

	wrongVendor := ServerError(QueryFailed, "Foo.ClientError.Statement.SyntaxError", "")
	assert.False(t, wrongVendor.IsClientError())

	databaseError := ServerError(QueryFailed, "Neo.DatabaseError.General.UnknownError", "")
	assert.False(t, databaseError.IsTransient())
	assert.False(t, databaseError.IsClientError())
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		ConnectionFailed: "ConnectionFailed",
		HandshakeFailed:  "HandshakeFailed",
		AuthFailed:       "AuthFailed",
		ProtocolError:    "ProtocolError",
		QueryFailed:      "QueryFailed",
		Timeout:          "Timeout",
		PoolExhausted:    "PoolExhausted",
		InvalidArgument:  "InvalidArgument",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
	assert.Equal(t, "Unknown", Kind(999).String())
}
