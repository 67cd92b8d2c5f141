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

// Package db holds types shared between the connection layer and the
// public driver surface: the error taxonomy, records and summaries.
package db

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind identifies which branch of the error taxonomy an error belongs
// to, so callers can switch on it without string matching.
type Kind int

const (
	ConnectionFailed Kind = iota
	HandshakeFailed
	AuthFailed
	ProtocolError
	QueryFailed
	Timeout
	PoolExhausted
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case ConnectionFailed:
		return "ConnectionFailed"
	case HandshakeFailed:
		return "HandshakeFailed"
	case AuthFailed:
		return "AuthFailed"
	case ProtocolError:
		return "ProtocolError"
	case QueryFailed:
		return "QueryFailed"
	case Timeout:
		return "Timeout"
	case PoolExhausted:
		return "PoolExhausted"
	case InvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// Error is the concrete type every error this driver returns to a caller
// is, or wraps. Code is set only for a server-reported failure
// (AuthFailed, QueryFailed), with Msg carrying the server's message;
// other kinds (ConnectionFailed, Timeout, ...) leave Code empty, carry a
// short Msg, and may wrap an underlying cause.
type Error struct {
	Kind  Kind
	Code  string
	Msg   string
	cause error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: [%s] %s", e.Kind, e.Code, e.Msg)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return e.Kind.String()
}

// Cause lets errors.Cause (github.com/pkg/errors) unwrap this error,
// grounded on Nexedi-neoppod's neonet.LinkError/ConnError pattern.
func (e *Error) Cause() error { return e.cause }

func (e *Error) Unwrap() error { return e.cause }

func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func WrapError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, cause: errors.Wrap(cause, msg)}
}

// ServerError builds an AuthFailed or QueryFailed error from a FAILURE
// message's {code, message} metadata and classifies it by the
// Neo.{classification}.X.Y code convention.
func ServerError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Msg: msg}
}

type serverErrCls int

const (
	clsUnknown serverErrCls = iota
	clsClientError
	clsTransientError
	clsDatabaseError
)

func (e *Error) classify() serverErrCls {
	parts := strings.Split(e.Code, ".")
	if len(parts) < 2 || parts[0] != "Neo" {
		return clsUnknown
	}
	switch parts[1] {
	case "ClientError":
		return clsClientError
	case "TransientError":
		return clsTransientError
	case "DatabaseError":
		return clsDatabaseError
	default:
		return clsUnknown
	}
}

// IsAuthentication reports whether this is the specific server code for a
// failed login, distinct from other ClientErrors.
func (e *Error) IsAuthentication() bool {
	return e.Code == "Neo.ClientError.Security.Unauthorized"
}

func (e *Error) IsTransient() bool {
	return e.classify() == clsTransientError
}

func (e *Error) IsClientError() bool {
	return e.classify() == clsClientError
}
