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

// Counters reports the database-mutating effects of a query ("stats"
// in the SUCCESS metadata), represented as a plain struct since this
// driver has no separate wire-value/user-value hierarchy to justify
// an interface.
type Counters struct {
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
	PropertiesSet        int
	LabelsAdded          int
	LabelsRemoved        int
	IndexesAdded         int
	IndexesRemoved       int
	ConstraintsAdded     int
	ConstraintsRemoved   int
}

// Plan describes one node of the query planner's (unprofiled) plan tree,
// grounded on summary_plan.go.
type Plan struct {
	Operator    string
	Arguments   map[string]interface{}
	Identifiers []string
	Children    []Plan
}

// ProfiledPlan additionally carries the runtime statistics a profiled
// query produces alongside its plan, grounded on summary_profiled_plan.go.
type ProfiledPlan struct {
	Operator    string
	Arguments   map[string]interface{}
	Identifiers []string
	DbHits      int64
	Records     int64
	Children    []ProfiledPlan
}

// InputPosition locates a notification inside the submitted query text.
type InputPosition struct {
	Offset int
	Line   int
	Column int
}

// Notification is one planner-reported observation about the query,
// grounded on summary_notification.go.
type Notification struct {
	Code        string
	Title       string
	Description string
	Severity    string
	Position    *InputPosition
}

// Summary is the parsed form of the metadata carried on the terminal
// SUCCESS after a PULL.
type Summary struct {
	QueryType            string
	Counters             Counters
	Plan                 *Plan
	Profile              *ProfiledPlan
	Notifications        []Notification
	ResultAvailableAfter int64
	ResultConsumedAfter  int64
	Server               string
	Database             string
}
