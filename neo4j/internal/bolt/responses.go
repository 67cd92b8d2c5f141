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
	"fmt"

	"github.com/Maxino22/neo4j-ex/neo4j/internal/packstream"
)

// success, failure, ignored and record are the four terminal/non-terminal
// reply shapes the classifier produces for SUCCESS, FAILURE, IGNORED and
// RECORD respectively. Anything else decodes to *unknown so a server
// ahead of this client's understanding degrades instead of derailing the
// state machine.
type success struct {
	meta map[string]interface{}
}

func (s *success) hasMore() bool {
	v, _ := s.meta["has_more"].(bool)
	return v
}

func (s *success) fields() []string {
	raw, _ := s.meta["fields"].([]interface{})
	out := make([]string, len(raw))
	for i, f := range raw {
		out[i], _ = f.(string)
	}
	return out
}

// failure carries a server-reported error code/message. It implements
// error so it can travel directly through Go's error-returning APIs.
type failure struct {
	code    string
	message string
}

func (f *failure) Error() string {
	return fmt.Sprintf("server failure [%s]: %s", f.code, f.message)
}

type ignored struct{}

type record struct {
	values []interface{}
}

// unknown is what an unrecognized top-level message signature decodes to,
// mirroring how unrecognized graph-value signatures decode to a generic
// *packstream.Struct.
type unknown struct {
	tag    packstream.StructTag
	fields []interface{}
}

func classifyMessage(tag packstream.StructTag, fields []interface{}) (interface{}, error) {
	switch tag {
	case msgSuccess:
		if len(fields) != 1 {
			return nil, fmt.Errorf("SUCCESS must carry exactly one field, got %d", len(fields))
		}
		meta, ok := fields[0].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("SUCCESS metadata is not a map: %T", fields[0])
		}
		return &success{meta: meta}, nil
	case msgFailure:
		if len(fields) != 1 {
			return nil, fmt.Errorf("FAILURE must carry exactly one field, got %d", len(fields))
		}
		meta, ok := fields[0].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("FAILURE metadata is not a map: %T", fields[0])
		}
		code, _ := meta["code"].(string)
		msg, _ := meta["message"].(string)
		return &failure{code: code, message: msg}, nil
	case msgIgnored:
		return &ignored{}, nil
	case msgRecord:
		if len(fields) != 1 {
			return nil, fmt.Errorf("RECORD must carry exactly one field, got %d", len(fields))
		}
		values, ok := fields[0].([]interface{})
		if !ok {
			return nil, fmt.Errorf("RECORD values is not a list: %T", fields[0])
		}
		return &record{values: values}, nil
	default:
		return &unknown{tag: tag, fields: fields}, nil
	}
}
