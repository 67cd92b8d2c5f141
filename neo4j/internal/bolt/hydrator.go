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
	"time"

	"github.com/Maxino22/neo4j-ex/neo4j/dbtype"
	"github.com/Maxino22/neo4j-ex/neo4j/internal/packstream"
)

// hydrate is the single packstream.StructHydrator this driver hands to
// Decode. It dispatches on the structure's signature, first to the
// top-level message classifier and then to the graph/spatial/temporal
// value constructors, collapsed into one function since this client
// has no per-field accumulation interface to satisfy.
func hydrate(tag packstream.StructTag, fields []interface{}) (interface{}, error) {
	switch tag {
	case msgSuccess, msgFailure, msgIgnored, msgRecord:
		return classifyMessage(tag, fields)
	case tagNode:
		return hydrateNode(fields)
	case tagRelationship:
		return hydrateRelationship(fields)
	case tagUnboundRelationship:
		return hydrateUnboundRel(fields)
	case tagPath:
		return hydratePath(fields)
	case tagPoint2D:
		return hydratePoint2D(fields)
	case tagPoint3D:
		return hydratePoint3D(fields)
	case tagDate:
		return hydrateDate(fields)
	case tagTime:
		return hydrateTime(fields)
	case tagLocalTime:
		return hydrateLocalTime(fields)
	case tagLocalDateTime:
		return hydrateLocalDateTime(fields)
	case tagDateTimeOffset, tagDateTime:
		return hydrateDateTimeOffset(fields)
	case tagDateTimeZoneID:
		return hydrateDateTimeZoneID(fields)
	case tagDuration:
		return hydrateDuration(fields)
	default:
		// Unrecognized structure; degrade to the generic form rather than
		// failing the whole decode.
		return &packstream.Struct{Tag: tag, Fields: fields}, nil
	}
}

func wrongFieldCount(what string, want, got int) error {
	return fmt.Errorf("%s: expected %d fields, got %d", what, want, got)
}

// tagUnboundRelationship is the wire shape of a relationship nested
// inside a Path, hydrated by hydrateUnboundRel below. It is registered under its own
// signature (0x72, "r") the same way tagRelationship is for bound ones.
const tagUnboundRelationship packstream.StructTag = 0x72

func hydrateNode(f []interface{}) (interface{}, error) {
	if len(f) < 3 {
		return nil, wrongFieldCount("Node", 4, len(f))
	}
	id, _ := f[0].(int64)
	rawLabels, _ := f[1].([]interface{})
	// An empty label list or property map hydrates to nil, so a value
	// built without any round-trips equal.
	var labels []string
	if len(rawLabels) > 0 {
		labels = make([]string, len(rawLabels))
		for i, l := range rawLabels {
			labels[i], _ = l.(string)
		}
	}
	props, _ := f[2].(map[string]interface{})
	if len(props) == 0 {
		props = nil
	}
	var elementId string
	if len(f) > 3 {
		elementId, _ = f[3].(string)
	}
	return dbtype.Node{Id: id, ElementId: elementId, Labels: labels, Props: props}, nil
}

func hydrateRelationship(f []interface{}) (interface{}, error) {
	if len(f) < 5 {
		return nil, wrongFieldCount("Relationship", 6, len(f))
	}
	id, _ := f[0].(int64)
	startId, _ := f[1].(int64)
	endId, _ := f[2].(int64)
	relType, _ := f[3].(string)
	props, _ := f[4].(map[string]interface{})
	if len(props) == 0 {
		props = nil
	}
	var elementId string
	if len(f) > 5 {
		elementId, _ = f[5].(string)
	}
	return dbtype.Relationship{
		Id: id, ElementId: elementId, StartId: startId, EndId: endId,
		Type: relType, Props: props,
	}, nil
}

func hydrateUnboundRel(f []interface{}) (interface{}, error) {
	if len(f) < 3 {
		return nil, wrongFieldCount("UnboundRelationship", 4, len(f))
	}
	id, _ := f[0].(int64)
	relType, _ := f[1].(string)
	props, _ := f[2].(map[string]interface{})
	if len(props) == 0 {
		props = nil
	}
	var elementId string
	if len(f) > 3 {
		elementId, _ = f[3].(string)
	}
	return dbtype.RelNode{Id: id, ElementId: elementId, Type: relType, Props: props}, nil
}

func hydratePath(f []interface{}) (interface{}, error) {
	if len(f) != 3 {
		return nil, wrongFieldCount("Path", 3, len(f))
	}
	rawNodes, _ := f[0].([]interface{})
	rawRels, _ := f[1].([]interface{})
	rawIdx, _ := f[2].([]interface{})

	nodes := make([]dbtype.Node, len(rawNodes))
	for i, n := range rawNodes {
		node, ok := n.(dbtype.Node)
		if !ok {
			return nil, fmt.Errorf("Path: element %d of node list is not a Node: %T", i, n)
		}
		nodes[i] = node
	}
	relNodes := make([]dbtype.RelNode, len(rawRels))
	for i, r := range rawRels {
		rn, ok := r.(dbtype.RelNode)
		if !ok {
			return nil, fmt.Errorf("Path: element %d of relationship list is not an UnboundRelationship: %T", i, r)
		}
		relNodes[i] = rn
	}
	indexes := make([]int, len(rawIdx))
	for i, x := range rawIdx {
		n, _ := x.(int64)
		indexes[i] = int(n)
	}
	return dbtype.Path{Nodes: nodes, RelNodes: relNodes, Indexes: indexes}, nil
}

func hydratePoint2D(f []interface{}) (interface{}, error) {
	if len(f) != 3 {
		return nil, wrongFieldCount("Point2D", 3, len(f))
	}
	srid, _ := f[0].(int64)
	x, _ := f[1].(float64)
	y, _ := f[2].(float64)
	return dbtype.Point2D{SpatialRefId: uint32(srid), X: x, Y: y}, nil
}

func hydratePoint3D(f []interface{}) (interface{}, error) {
	if len(f) != 4 {
		return nil, wrongFieldCount("Point3D", 4, len(f))
	}
	srid, _ := f[0].(int64)
	x, _ := f[1].(float64)
	y, _ := f[2].(float64)
	z, _ := f[3].(float64)
	return dbtype.Point3D{SpatialRefId: uint32(srid), X: x, Y: y, Z: z}, nil
}

func hydrateDate(f []interface{}) (interface{}, error) {
	if len(f) != 1 {
		return nil, wrongFieldCount("Date", 1, len(f))
	}
	days, _ := f[0].(int64)
	t := time.Unix(days*86400, 0).UTC()
	return dbtype.Date(t), nil
}

func hydrateLocalTime(f []interface{}) (interface{}, error) {
	if len(f) != 1 {
		return nil, wrongFieldCount("LocalTime", 1, len(f))
	}
	ns, _ := f[0].(int64)
	t := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(ns))
	return dbtype.LocalTime(t), nil
}

func hydrateTime(f []interface{}) (interface{}, error) {
	if len(f) != 2 {
		return nil, wrongFieldCount("Time", 2, len(f))
	}
	ns, _ := f[0].(int64)
	offset, _ := f[1].(int64)
	loc := time.FixedZone("Offset", int(offset))
	t := time.Date(0, 1, 1, 0, 0, 0, 0, loc).Add(time.Duration(ns))
	return dbtype.Time(t), nil
}

func hydrateLocalDateTime(f []interface{}) (interface{}, error) {
	if len(f) != 2 {
		return nil, wrongFieldCount("LocalDateTime", 2, len(f))
	}
	seconds, _ := f[0].(int64)
	ns, _ := f[1].(int64)
	t := time.Unix(seconds, ns).UTC()
	return dbtype.LocalDateTime(t), nil
}

func hydrateDateTimeOffset(f []interface{}) (interface{}, error) {
	if len(f) != 3 {
		return nil, wrongFieldCount("DateTime (offset)", 3, len(f))
	}
	seconds, _ := f[0].(int64)
	ns, _ := f[1].(int64)
	offset, _ := f[2].(int64)
	loc := time.FixedZone("Offset", int(offset))
	t := time.Unix(seconds, ns).In(loc)
	return dbtype.DateTime(t), nil
}

func hydrateDateTimeZoneID(f []interface{}) (interface{}, error) {
	if len(f) != 3 {
		return nil, wrongFieldCount("DateTime (zone id)", 3, len(f))
	}
	seconds, _ := f[0].(int64)
	ns, _ := f[1].(int64)
	zone, _ := f[2].(string)
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("DateTime: unknown zone %q: %w", zone, err)
	}
	t := time.Unix(seconds, ns).In(loc)
	return dbtype.DateTime(t), nil
}

func hydrateDuration(f []interface{}) (interface{}, error) {
	if len(f) != 4 {
		return nil, wrongFieldCount("Duration", 4, len(f))
	}
	months, _ := f[0].(int64)
	days, _ := f[1].(int64)
	seconds, _ := f[2].(int64)
	nanos, _ := f[3].(int64)
	return dbtype.Duration{Months: months, Days: days, Seconds: seconds, Nanos: nanos}, nil
}
