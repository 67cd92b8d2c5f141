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

// dehydrate is the packstream.Dehydrate this driver hands to Packer. It
// only needs to cover the value types a client ever sends as a query
// parameter: graph values travel server-to-client only, but are included
// for completeness and for echoing values back in tests.
func dehydrate(x interface{}) (*packstream.Struct, error) {
	switch v := x.(type) {
	case dbtype.Point2D:
		return newMessage(tagPoint2D, int64(v.SpatialRefId), v.X, v.Y), nil
	case dbtype.Point3D:
		return newMessage(tagPoint3D, int64(v.SpatialRefId), v.X, v.Y, v.Z), nil
	case dbtype.Date:
		t := v.Time()
		days := t.Unix() / 86400
		return newMessage(tagDate, days), nil
	case dbtype.LocalTime:
		t := v.Time()
		return newMessage(tagLocalTime, nanosOfDay(t)), nil
	case dbtype.Time:
		t := v.Time()
		_, offset := t.Zone()
		return newMessage(tagTime, nanosOfDay(t), int64(offset)), nil
	case dbtype.LocalDateTime:
		t := v.Time()
		_, offset := t.Zone()
		return newMessage(tagLocalDateTime, t.Unix()+int64(offset), int64(t.Nanosecond())), nil
	case dbtype.DateTime:
		t := v.Time()
		zone, offset := t.Zone()
		if zone == "Offset" {
			return newMessage(tagDateTimeOffset, t.Unix(), int64(t.Nanosecond()), int64(offset)), nil
		}
		return newMessage(tagDateTimeZoneID, t.Unix(), int64(t.Nanosecond()), t.Location().String()), nil
	case dbtype.Duration:
		return newMessage(tagDuration, v.Months, v.Days, v.Seconds, v.Nanos), nil
	case dbtype.Node:
		return newMessage(tagNode, v.Id, toInterfaceSlice(v.Labels), v.Props, v.ElementId), nil
	case dbtype.RelNode:
		return newMessage(tagUnboundRelationship, v.Id, v.Type, v.Props, v.ElementId), nil
	case dbtype.Relationship:
		return newMessage(tagRelationship, v.Id, v.StartId, v.EndId, v.Type, v.Props, v.ElementId), nil
	case dbtype.Path:
		return newMessage(tagPath, pathNodeFields(v), pathRelFields(v), pathIndexFields(v)), nil
	default:
		return nil, fmt.Errorf("no wire representation for %T", x)
	}
}

// nanosOfDay computes nanoseconds since midnight from t's wall-clock
// components in t's own Location, not from an absolute-time truncation,
// since Truncate(24h) rounds to a UTC day boundary and is off by the
// zone offset for anything but UTC.
func nanosOfDay(t time.Time) int64 {
	return int64(time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond()))
}

func toInterfaceSlice(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func pathNodeFields(p dbtype.Path) []interface{} {
	out := make([]interface{}, len(p.Nodes))
	for i, n := range p.Nodes {
		out[i] = n
	}
	return out
}

func pathRelFields(p dbtype.Path) []interface{} {
	out := make([]interface{}, len(p.RelNodes))
	for i, r := range p.RelNodes {
		out[i] = r
	}
	return out
}

func pathIndexFields(p dbtype.Path) []interface{} {
	out := make([]interface{}, len(p.Indexes))
	for i, n := range p.Indexes {
		out[i] = int64(n)
	}
	return out
}
