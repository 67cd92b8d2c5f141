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

import "github.com/Maxino22/neo4j-ex/neo4j/internal/packstream"

// Message signatures.
const (
	msgHello     packstream.StructTag = 0x01
	msgLogon     packstream.StructTag = 0x6a
	msgLogoff    packstream.StructTag = 0x6b
	msgGoodbye   packstream.StructTag = 0x02
	msgReset     packstream.StructTag = 0x0f
	msgRun       packstream.StructTag = 0x10
	msgDiscard   packstream.StructTag = 0x2f
	msgPull      packstream.StructTag = 0x3f
	msgBegin     packstream.StructTag = 0x11
	msgCommit    packstream.StructTag = 0x12
	msgRollback  packstream.StructTag = 0x13
	msgRoute     packstream.StructTag = 0x66
	msgSuccess   packstream.StructTag = 0x70
	msgFailure   packstream.StructTag = 0x7f
	msgIgnored   packstream.StructTag = 0x7e
	msgRecord    packstream.StructTag = 0x71
)

// Graph/temporal/spatial structure signatures.
const (
	tagNode           packstream.StructTag = 0x4e
	tagRelationship   packstream.StructTag = 0x52
	tagPath           packstream.StructTag = 0x50
	tagPoint2D        packstream.StructTag = 0x58
	tagPoint3D        packstream.StructTag = 0x59
	tagDate           packstream.StructTag = 0x44
	tagTime           packstream.StructTag = 0x54
	tagLocalTime      packstream.StructTag = 0x74
	tagDateTime       packstream.StructTag = 0x46 // legacy local-offset naive UTC encoding
	tagDateTimeZoneID packstream.StructTag = 0x69
	tagDateTimeOffset packstream.StructTag = 0x49
	tagLocalDateTime  packstream.StructTag = 0x64
	tagDuration       packstream.StructTag = 0x45
)

// PullOrDiscardAll means "n = -1": pull/discard every remaining record.
const PullOrDiscardAll int64 = -1

// newMessage builds the Struct for a Bolt request message.
func newMessage(tag packstream.StructTag, fields ...interface{}) *packstream.Struct {
	return &packstream.Struct{Tag: tag, Fields: fields}
}

func helloMessage(meta map[string]interface{}) *packstream.Struct {
	return newMessage(msgHello, meta)
}

func logonMessage(auth map[string]interface{}) *packstream.Struct {
	return newMessage(msgLogon, auth)
}

func logoffMessage() *packstream.Struct {
	return newMessage(msgLogoff)
}

func goodbyeMessage() *packstream.Struct {
	return newMessage(msgGoodbye)
}

func resetMessage() *packstream.Struct {
	return newMessage(msgReset)
}

func runMessage(cypher string, params, meta map[string]interface{}) *packstream.Struct {
	if params == nil {
		params = map[string]interface{}{}
	}
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return newMessage(msgRun, cypher, params, meta)
}

// pullDiscardExtra builds the {n, qid?} extra map shared by PULL and
// DISCARD. qid < 0 omits the qid field, addressing "the most recently
// run query" as the protocol defines it.
func pullDiscardExtra(n int64, qid int64) map[string]interface{} {
	extra := map[string]interface{}{"n": n}
	if qid >= 0 {
		extra["qid"] = qid
	}
	return extra
}

func pullMessage(n int64, qid int64) *packstream.Struct {
	return newMessage(msgPull, pullDiscardExtra(n, qid))
}

func discardMessage(n int64, qid int64) *packstream.Struct {
	return newMessage(msgDiscard, pullDiscardExtra(n, qid))
}

func beginMessage(meta map[string]interface{}) *packstream.Struct {
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return newMessage(msgBegin, meta)
}

func commitMessage() *packstream.Struct {
	return newMessage(msgCommit)
}

func rollbackMessage() *packstream.Struct {
	return newMessage(msgRollback)
}
