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

// Package log is the ambient logging stack for this driver: a small
// interface any caller can implement, plus a console-backed default.
package log

// Logger is consulted throughout the driver. name identifies the
// logging component ("pool", "session", ...) and id identifies the
// specific instance ("bolt-7@localhost:7687").
type Logger interface {
	Error(name, id string, err error)
	Errorf(name, id, msg string, args ...interface{})
	Warnf(name, id, msg string, args ...interface{})
	Infof(name, id, msg string, args ...interface{})
	Debugf(name, id, msg string, args ...interface{})
}

// BoltLogger is an optional sink for raw wire-level tracing, set
// per-driver through WithBoltLogger and handed to every connection the
// driver dials.
type BoltLogger interface {
	LogClientMessage(context, msg string, args ...interface{})
	LogServerMessage(context, msg string, args ...interface{})
}
