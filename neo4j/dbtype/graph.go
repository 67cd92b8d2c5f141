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

// Package dbtype holds the Go representations of Bolt's graph, spatial and
// temporal value types. They are ordinary constructors of the same value
// space every other PackStream value lives in: there is no separate
// "wire value" vs "user value" hierarchy.
package dbtype

// Node is a labeled, property-carrying graph vertex (signature 0x4E).
type Node struct {
	Id         int64
	ElementId  string
	Labels     []string
	Props      map[string]interface{}
}

// Relationship is a typed, directed, property-carrying graph edge
// (signature 0x52).
type Relationship struct {
	Id        int64
	ElementId string
	StartId   int64
	EndId     int64
	Type      string
	Props     map[string]interface{}
}

// RelNode is the unbound-relationship shape PackStream uses inside a Path
// (the two endpoint ids are implied by the surrounding Path, not carried
// on the relationship itself).
type RelNode struct {
	Id        int64
	ElementId string
	Type      string
	Props     map[string]interface{}
}

// Path is an alternating walk of nodes and relationships (signature
// 0x50). Indexes holds rel-index/node-offset pairs as carried on the
// wire: the first of each pair picks a relationship (positive is 1-based
// into RelNodes traversed forward, negative is 1-based traversed
// backward), the second moves to the next node relative to the current
// position in Nodes.
type Path struct {
	Nodes    []Node
	RelNodes []RelNode
	Indexes  []int
}

// Relationships reconstructs the Path's sequence of fully-bound
// relationships (endpoints filled in from the surrounding nodes), in
// traversal order.
func (p Path) Relationships() []Relationship {
	if len(p.Indexes) == 0 {
		return nil
	}
	rels := make([]Relationship, 0, len(p.Indexes)/2)
	prevNode := p.Nodes[0]
	nodeIdx := 0
	for i := 0; i < len(p.Indexes); i += 2 {
		relIdx := p.Indexes[i]
		nextNodeOffset := p.Indexes[i+1]
		nodeIdx += nextNodeOffset
		nextNode := p.Nodes[nodeIdx]

		var rn RelNode
		var startId, endId int64
		if relIdx > 0 {
			rn = p.RelNodes[relIdx-1]
			startId, endId = prevNode.Id, nextNode.Id
		} else {
			rn = p.RelNodes[-relIdx-1]
			startId, endId = nextNode.Id, prevNode.Id
		}
		rels = append(rels, Relationship{
			Id: rn.Id, ElementId: rn.ElementId, Type: rn.Type, Props: rn.Props,
			StartId: startId, EndId: endId,
		})
		prevNode = nextNode
	}
	return rels
}
