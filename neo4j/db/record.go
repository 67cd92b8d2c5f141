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

// Record is one row of a query result: an ordered list of values aligned
// with the owning Result's field names.
type Record struct {
	Values []interface{}
	Keys   []string
}

// Get looks a value up by 0-based index.
func (r *Record) Get(index int) (interface{}, bool) {
	if index < 0 || index >= len(r.Values) {
		return nil, false
	}
	return r.Values[index], true
}

// GetByName looks a value up by field name, scanning Keys for the first
// match. Field names are not guaranteed unique by the protocol; this
// returns the first one, matching how Cypher's RETURN columns behave in
// practice.
func (r *Record) GetByName(name string) (interface{}, bool) {
	for i, k := range r.Keys {
		if k == name {
			return r.Values[i], true
		}
	}
	return nil, false
}
