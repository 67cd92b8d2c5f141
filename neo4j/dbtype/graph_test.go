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

package dbtype

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Path", func() {
	Context("with no relationships", func() {
		It("returns nil rather than an empty slice", func() {
			p := Path{Nodes: []Node{{Id: 1}}}
			Expect(p.Relationships()).To(BeNil())
		})
	})

	Context("walked entirely forward", func() {
		It("reconstructs every relationship in order with bound endpoints", func() {
			p := Path{
				Nodes: []Node{{Id: 1}, {Id: 2}, {Id: 3}},
				RelNodes: []RelNode{
					{Id: 10, Type: "KNOWS"},
					{Id: 11, Type: "LIKES"},
				},
				Indexes: []int{1, 1, 2, 1},
			}
			rels := p.Relationships()
			Expect(rels).To(HaveLen(2))
			Expect(rels[0]).To(Equal(Relationship{Id: 10, Type: "KNOWS", StartId: 1, EndId: 2}))
			Expect(rels[1]).To(Equal(Relationship{Id: 11, Type: "LIKES", StartId: 2, EndId: 3}))
		})
	})

	Context("with a backward hop", func() {
		It("swaps start and end for the reversed relationship", func() {
			p := Path{
				Nodes:    []Node{{Id: 1}, {Id: 2}},
				RelNodes: []RelNode{{Id: 10, Type: "KNOWS"}},
				Indexes:  []int{-1, 1},
			}
			rels := p.Relationships()
			Expect(rels).To(HaveLen(1))
			Expect(rels[0].StartId).To(Equal(int64(2)))
			Expect(rels[0].EndId).To(Equal(int64(1)))
		})
	})

	Context("revisiting an earlier node", func() {
		It("resolves the node offset relative to the current position, not absolute index", func() {
			// 1 -KNOWS-> 2 -LIKES-> 1 (a cycle back to the start node).
			p := Path{
				Nodes:    []Node{{Id: 1}, {Id: 2}},
				RelNodes: []RelNode{{Id: 10, Type: "KNOWS"}, {Id: 11, Type: "LIKES"}},
				Indexes:  []int{1, 1, 2, -1},
			}
			rels := p.Relationships()
			Expect(rels).To(HaveLen(2))
			Expect(rels[1].StartId).To(Equal(int64(2)))
			Expect(rels[1].EndId).To(Equal(int64(1)))
		})
	})
})

var _ = Describe("temporal accessors", func() {
	It("Date.Time round-trips the underlying time.Time", func() {
		now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		d := Date(now)
		Expect(d.Time()).To(Equal(now))
	})

	It("DateTime.Time preserves the zone it was constructed with", func() {
		loc := time.FixedZone("Offset", -18000)
		ts := time.Date(2024, 6, 15, 9, 0, 0, 0, loc)
		dt := DateTime(ts)
		Expect(dt.Time().Equal(ts)).To(BeTrue())
		_, offset := dt.Time().Zone()
		Expect(offset).To(Equal(-18000))
	})
})

var _ = Describe("Duration", func() {
	It("keeps months, days, seconds and nanos as independent signed fields", func() {
		d := Duration{Months: -2, Days: 10, Seconds: -3600, Nanos: 500}
		Expect(d.Months).To(Equal(int64(-2)))
		Expect(d.Seconds).To(Equal(int64(-3600)))
	})
})
