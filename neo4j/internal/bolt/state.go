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

// State is the connection's position in the protocol state machine.
// It is an exhaustive, closed set so a switch over every State can be
// checked for completeness; nothing outside this package constructs
// one.
type State int

const (
	Disconnected State = iota
	Negotiating
	Authenticating
	Ready
	Streaming
	TxReady
	TxStreaming
	Failed
	Defunct
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "DISCONNECTED"
	case Negotiating:
		return "NEGOTIATING"
	case Authenticating:
		return "AUTHENTICATING"
	case Ready:
		return "READY"
	case Streaming:
		return "STREAMING"
	case TxReady:
		return "TX_READY"
	case TxStreaming:
		return "TX_STREAMING"
	case Failed:
		return "FAILED"
	case Defunct:
		return "DEFUNCT"
	default:
		return "UNKNOWN"
	}
}
