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

import "github.com/Maxino22/neo4j-ex/neo4j/db"

// buildSummary turns the terminal SUCCESS's metadata map into a
// db.Summary, reading each optional section independently so a server
// that omits plan/profile/notification metadata still yields a
// usable summary.
func buildSummary(meta map[string]interface{}) db.Summary {
	s := db.Summary{}
	s.QueryType, _ = meta["type"].(string)
	s.Server, _ = meta["server"].(string)
	s.Database, _ = meta["db"].(string)
	if v, ok := meta["t_first"].(int64); ok {
		s.ResultAvailableAfter = v
	}
	if v, ok := meta["t_last"].(int64); ok {
		s.ResultConsumedAfter = v
	}
	if statsRaw, ok := meta["stats"].(map[string]interface{}); ok {
		s.Counters = buildCounters(statsRaw)
	}
	if planRaw, ok := meta["plan"].(map[string]interface{}); ok {
		p := buildPlan(planRaw)
		s.Plan = &p
	}
	if profileRaw, ok := meta["profile"].(map[string]interface{}); ok {
		p := buildProfiledPlan(profileRaw)
		s.Profile = &p
	}
	if notesRaw, ok := meta["notifications"].([]interface{}); ok {
		s.Notifications = buildNotifications(notesRaw)
	}
	return s
}

func statInt(stats map[string]interface{}, key string) int {
	v, _ := stats[key].(int64)
	return int(v)
}

func buildCounters(stats map[string]interface{}) db.Counters {
	return db.Counters{
		NodesCreated:         statInt(stats, "nodes-created"),
		NodesDeleted:         statInt(stats, "nodes-deleted"),
		RelationshipsCreated: statInt(stats, "relationships-created"),
		RelationshipsDeleted: statInt(stats, "relationships-deleted"),
		PropertiesSet:        statInt(stats, "properties-set"),
		LabelsAdded:          statInt(stats, "labels-added"),
		LabelsRemoved:        statInt(stats, "labels-removed"),
		IndexesAdded:         statInt(stats, "indexes-added"),
		IndexesRemoved:       statInt(stats, "indexes-removed"),
		ConstraintsAdded:     statInt(stats, "constraints-added"),
		ConstraintsRemoved:   statInt(stats, "constraints-removed"),
	}
}

func buildPlan(m map[string]interface{}) db.Plan {
	p := db.Plan{}
	p.Operator, _ = m["operatorType"].(string)
	p.Arguments, _ = m["args"].(map[string]interface{})
	if idsRaw, ok := m["identifiers"].([]interface{}); ok {
		p.Identifiers = make([]string, len(idsRaw))
		for i, id := range idsRaw {
			p.Identifiers[i], _ = id.(string)
		}
	}
	if childrenRaw, ok := m["children"].([]interface{}); ok {
		p.Children = make([]db.Plan, 0, len(childrenRaw))
		for _, c := range childrenRaw {
			if cm, ok := c.(map[string]interface{}); ok {
				p.Children = append(p.Children, buildPlan(cm))
			}
		}
	}
	return p
}

func buildProfiledPlan(m map[string]interface{}) db.ProfiledPlan {
	p := db.ProfiledPlan{}
	p.Operator, _ = m["operatorType"].(string)
	p.Arguments, _ = m["args"].(map[string]interface{})
	if idsRaw, ok := m["identifiers"].([]interface{}); ok {
		p.Identifiers = make([]string, len(idsRaw))
		for i, id := range idsRaw {
			p.Identifiers[i], _ = id.(string)
		}
	}
	if v, ok := m["dbHits"].(int64); ok {
		p.DbHits = v
	}
	if v, ok := m["rows"].(int64); ok {
		p.Records = v
	}
	if childrenRaw, ok := m["children"].([]interface{}); ok {
		p.Children = make([]db.ProfiledPlan, 0, len(childrenRaw))
		for _, c := range childrenRaw {
			if cm, ok := c.(map[string]interface{}); ok {
				p.Children = append(p.Children, buildProfiledPlan(cm))
			}
		}
	}
	return p
}

func buildNotifications(raw []interface{}) []db.Notification {
	out := make([]db.Notification, 0, len(raw))
	for _, n := range raw {
		m, ok := n.(map[string]interface{})
		if !ok {
			continue
		}
		note := db.Notification{}
		note.Code, _ = m["code"].(string)
		note.Title, _ = m["title"].(string)
		note.Description, _ = m["description"].(string)
		note.Severity, _ = m["severity"].(string)
		if posRaw, ok := m["position"].(map[string]interface{}); ok {
			pos := db.InputPosition{
				Offset: int(intOrZero(posRaw["offset"])),
				Line:   int(intOrZero(posRaw["line"])),
				Column: int(intOrZero(posRaw["column"])),
			}
			note.Position = &pos
		}
		out = append(out, note)
	}
	return out
}

func intOrZero(x interface{}) int64 {
	v, _ := x.(int64)
	return v
}
