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

import "github.com/Maxino22/neo4j-ex/neo4j/db"

// Record is one row of a Result: an ordered list of values aligned
// with Result.Keys.
type Record = db.Record

// Result is the outcome of Session.Run: every field name the query
// declared, every record it produced, and the summary from the
// terminal SUCCESS.
type Result struct {
	Keys    []string
	Records []*Record
	Summary db.Summary
}
